package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/scoring"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/okian/teamforge/pkg/metrics"
)

// ToggleSelector opens or closes the saved-team dropdown and reports
// whether it is open afterwards.
func (w *Workspace) ToggleSelector(_ context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.selector.Toggle()
	metrics.RecordSelectorTransition("toggle")
	metrics.UpdateOutsideSubscriptions(w.outside.Subscribers())
	return w.selector.IsOpen()
}

// SelectOutside closes an open dropdown. Returns false when it was closed.
func (w *Workspace) SelectOutside(_ context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	closed := w.selector.SelectOutside()
	if closed {
		metrics.RecordSelectorTransition("outside")
		metrics.UpdateOutsideSubscriptions(w.outside.Subscribers())
	}
	return closed
}

// Pointer reports an interaction anywhere on the page to every outside
// subscriber and returns how many were notified.
func (w *Workspace) Pointer(ctx context.Context) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := w.outside.Publish()
	if n > 0 {
		metrics.RecordSelectorTransition("outside")
		w.logger.Debug(ctx, "pointer closed dropdown", logger.Int("subscribers", n))
	}
	metrics.UpdateOutsideSubscriptions(w.outside.Subscribers())
	return n
}

// ChooseTeam selects a saved team, replacing the working team with its
// members. A nil id clears the selection and keeps the working team.
// Returns false when id names no saved team.
func (w *Workspace) ChooseTeam(ctx context.Context, id *string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	applied := w.selector.Choose(id)
	metrics.RecordSelectorTransition("choose")
	metrics.UpdateOutsideSubscriptions(w.outside.Subscribers())
	if !applied && id != nil {
		w.logger.Debug(ctx, "unknown team chosen", logger.String("id", *id))
	}
	return applied
}

// SaveTeam stores the working team as a template. The latest compatibility
// score is used when available, otherwise it is computed in place.
func (w *Workspace) SaveTeam(ctx context.Context, name, targetRole string) (model.Team, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	members := w.catalog.Lookup(ctx, w.store.Team())
	if len(members) == 0 {
		return model.Team{}, ErrEmptyTeam
	}
	team := model.Team{
		Name:       strings.TrimSpace(name),
		TargetRole: strings.TrimSpace(targetRole),
		Members:    make([]model.Member, len(members)),
	}
	for i, c := range members {
		team.Members[i] = model.Member{ID: c.ID, Name: c.Name}
	}
	if w.compatibility != nil {
		team.CompatibilityScore = *w.compatibility
	} else {
		team.CompatibilityScore = scoring.Compatibility(members, w.weights)
	}

	saved, err := w.teams.Save(ctx, team)
	if err != nil {
		return model.Team{}, fmt.Errorf("save team: %w", err)
	}
	w.refreshTeams(ctx)
	w.logger.Info(ctx, "team saved",
		logger.String("id", saved.ID),
		logger.String("name", saved.Name),
		logger.Int("members", len(saved.Members)),
		logger.Int("compatibility", saved.CompatibilityScore),
	)
	return saved, nil
}

// UpdateTeam renames a saved team and changes its target role. Empty fields
// keep their current value; members and score are untouched.
func (w *Workspace) UpdateTeam(ctx context.Context, id, name, targetRole string) (model.Team, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	team, err := w.teams.Get(ctx, id)
	if err != nil {
		return model.Team{}, fmt.Errorf("update team: %w", err)
	}
	if name = strings.TrimSpace(name); name != "" {
		team.Name = name
	}
	if targetRole = strings.TrimSpace(targetRole); targetRole != "" {
		team.TargetRole = targetRole
	}
	saved, err := w.teams.Save(ctx, team)
	if err != nil {
		return model.Team{}, fmt.Errorf("update team: %w", err)
	}
	w.refreshTeams(ctx)
	w.logger.Info(ctx, "team updated",
		logger.String("id", saved.ID),
		logger.String("name", saved.Name),
		logger.String("targetRole", saved.TargetRole),
	)
	return saved, nil
}

// DeleteTeam removes a saved team. A selection pointing at it is kept and
// reported as stale.
func (w *Workspace) DeleteTeam(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.teams.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	w.refreshTeams(ctx)
	return nil
}

// SelectedTeam resolves the current selection. Stale ids are not found.
func (w *Workspace) SelectedTeam(_ context.Context) (model.Team, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selector.Selected()
}

// Team returns one saved team.
func (w *Workspace) Team(ctx context.Context, id string) (model.Team, error) {
	return w.teams.Get(ctx, id)
}

func (w *Workspace) refreshTeams(ctx context.Context) {
	teams := w.teams.List(ctx)
	w.selector.SetTeams(teams)
	metrics.UpdateSavedTeams(len(teams))
}
