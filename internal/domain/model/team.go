package model

// Member is the lightweight projection of a candidate stored in a saved team.
type Member struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Team is a saved team template. The selector copies its member ids into
// the working team; the record itself is never mutated by the engine.
type Team struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	Members            []Member `json:"members" yaml:"members"`
	CompatibilityScore int      `json:"compatibility_score" yaml:"compatibility_score"`
	TargetRole         string   `json:"target_role,omitempty" yaml:"target_role"`
}

// MemberIDs returns the member ids in display order.
func (t Team) MemberIDs() []string {
	ids := make([]string, len(t.Members))
	for i, m := range t.Members {
		ids[i] = m.ID
	}
	return ids
}

// ScoreRequest asks the scoring collaborator to rate one revision of the
// working team.
type ScoreRequest struct {
	Revision uint64
	Members  []Candidate
}
