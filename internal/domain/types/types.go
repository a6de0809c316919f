// Package types contains the read shapes shared by the service and the API.
package types

import (
	"github.com/okian/teamforge/internal/domain/drag"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/teamstats"
)

// DragView is the active drag session as seen by clients.
type DragView struct {
	DraggedID      string `json:"dragged_id"`
	Source         string `json:"source"`
	SourceIndex    int    `json:"source_index"`
	OverID         string `json:"over_id,omitempty"`
	OverCollection string `json:"over_collection,omitempty"`
}

// SelectorView is the dropdown state. Stale is set when the selected id no
// longer matches a saved team.
type SelectorView struct {
	Open           bool    `json:"open"`
	SelectedTeamID *string `json:"selected_team_id"`
	Stale          bool    `json:"stale"`
}

// Workspace is a consistent snapshot of the team builder. Metrics and
// Compatibility are null for an empty team.
type Workspace struct {
	Revision      uint64             `json:"revision"`
	Pool          []string           `json:"pool"`
	Team          []string           `json:"team"`
	Metrics       *teamstats.Metrics `json:"metrics"`
	Compatibility *int               `json:"compatibility"`
	SkillGaps     []string           `json:"skill_gaps,omitempty"`
	Drag          *DragView          `json:"drag"`
	Selector      SelectorView       `json:"selector"`

	// LevelMix counts team skill mentions per level.
	LevelMix map[model.SkillLevel]int `json:"level_mix,omitempty"`
}

// GestureResult reports what a committing gesture did.
type GestureResult struct {
	// Duplicate is set when the event id was already applied; nothing else
	// is filled in.
	Duplicate bool
	// Ignored is set in lenient mode when the gesture was an invalid
	// transition.
	Ignored bool
	Result  drag.Result
	Op      drag.Op
	Index   int
	Changed bool
}

// Status names the gesture result for clients.
func (g GestureResult) Status() string {
	switch {
	case g.Duplicate:
		return "duplicate"
	case g.Ignored:
		return "ignored"
	default:
		return g.Result.String()
	}
}
