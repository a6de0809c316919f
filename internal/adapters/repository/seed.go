package repository

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/teamforge/internal/domain/model"
)

// Seed is the on-disk shape of the initial catalog and saved teams.
type Seed struct {
	Candidates []model.Candidate `yaml:"candidates"`
	Teams      []model.Team      `yaml:"teams"`
}

// LoadSeed reads a YAML seed file.
func LoadSeed(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %w", ErrLoadSeed, err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(raw []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Seed{}, fmt.Errorf("%w: %w", ErrLoadSeed, err)
	}
	for i, c := range s.Candidates {
		if c.ID == "" {
			return Seed{}, fmt.Errorf("%w: candidate #%d has no id", ErrLoadSeed, i)
		}
	}
	for i, t := range s.Teams {
		if strings.TrimSpace(t.Name) == "" {
			return Seed{}, fmt.Errorf("%w: team #%d has no name", ErrLoadSeed, i)
		}
	}
	return s, nil
}
