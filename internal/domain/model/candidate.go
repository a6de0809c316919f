// Package model contains domain models passed between layers.
package model

import "strings"

// Score bounds shared by talent fit and compatibility scores.
const (
	MinScore = 0
	MaxScore = 100
)

// SkillLevel is the self-reported proficiency of a skill.
type SkillLevel string

// Known skill levels. Unrecognized input parses to LevelBeginner.
const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// Levels lists every known skill level.
var Levels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// ParseSkillLevel maps free-form input to a SkillLevel, case-insensitively.
func ParseSkillLevel(s string) SkillLevel {
	switch SkillLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LevelIntermediate:
		return LevelIntermediate
	case LevelAdvanced:
		return LevelAdvanced
	case LevelExpert:
		return LevelExpert
	default:
		return LevelBeginner
	}
}

// Skill is a named skill at a given level.
type Skill struct {
	Name  string     `json:"name" yaml:"name"`
	Level SkillLevel `json:"level" yaml:"level"`
}

// Experience is one prior role of a candidate.
type Experience struct {
	Title    string `json:"title" yaml:"title"`
	Company  string `json:"company" yaml:"company"`
	Duration string `json:"duration,omitempty" yaml:"duration"`
}

// Links holds optional profile links; empty strings mean absent.
type Links struct {
	GitHub    string `json:"github,omitempty" yaml:"github"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin"`
	Portfolio string `json:"portfolio,omitempty" yaml:"portfolio"`
}

// Candidate is a read-only candidate record owned by the catalog.
type Candidate struct {
	ID             string       `json:"id" yaml:"id"`
	Name           string       `json:"name" yaml:"name"`
	Title          string       `json:"title" yaml:"title"`
	Location       string       `json:"location,omitempty" yaml:"location"`
	Experience     []Experience `json:"experience" yaml:"experience"`
	Skills         []Skill      `json:"skills" yaml:"skills"`
	Links          Links        `json:"links" yaml:"links"`
	TalentFitScore int          `json:"talent_fit_score" yaml:"talent_fit_score"`
}

// ClampScore bounds a score to [MinScore, MaxScore].
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Normalize returns a copy with every skill level parsed into a known level.
func (c Candidate) Normalize() Candidate {
	if len(c.Skills) == 0 {
		return c
	}
	skills := make([]Skill, len(c.Skills))
	for i, s := range c.Skills {
		skills[i] = Skill{Name: s.Name, Level: ParseSkillLevel(string(s.Level))}
	}
	c.Skills = skills
	return c
}
