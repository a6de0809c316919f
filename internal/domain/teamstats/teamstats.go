// Package teamstats derives the visible team statistics from the current
// team members. Everything is recomputed from scratch on every call.
package teamstats

import (
	"math"
	"strings"

	"github.com/okian/teamforge/internal/domain/model"
)

// Metrics are the aggregate statistics of a non-empty team.
type Metrics struct {
	AvgScore    int  `json:"avg_score"`
	TotalSkills int  `json:"total_skills"`
	TeamSize    int  `json:"team_size"`
	Synergy     bool `json:"synergy"`
}

// Compute returns nil for an empty team so callers show "no stats" rather
// than zeros.
func Compute(team []model.Candidate) *Metrics {
	if len(team) == 0 {
		return nil
	}
	sum := 0
	skills := make(map[string]struct{})
	for _, c := range team {
		sum += model.ClampScore(c.TalentFitScore)
		for _, s := range c.Skills {
			skills[s.Name] = struct{}{}
		}
	}
	// math.Round rounds half away from zero.
	avg := int(math.Round(float64(sum) / float64(len(team))))
	return &Metrics{
		AvgScore:    avg,
		TotalSkills: len(skills),
		TeamSize:    len(team),
		Synergy:     len(team) > 1,
	}
}

// SkillGaps lists the required skills no team member has, in the order
// given. Matching is case-insensitive.
func SkillGaps(team []model.Candidate, required []string) []string {
	have := make(map[string]struct{})
	for _, c := range team {
		for _, s := range c.Skills {
			have[strings.ToLower(s.Name)] = struct{}{}
		}
	}
	var gaps []string
	seen := make(map[string]struct{})
	for _, r := range required {
		key := strings.ToLower(strings.TrimSpace(r))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := have[key]; !ok {
			gaps = append(gaps, r)
		}
	}
	return gaps
}

// LevelMix counts skill mentions per normalized level.
func LevelMix(team []model.Candidate) map[model.SkillLevel]int {
	mix := make(map[model.SkillLevel]int, len(model.Levels))
	for _, c := range team {
		for _, s := range c.Skills {
			mix[model.ParseSkillLevel(string(s.Level))]++
		}
	}
	return mix
}
