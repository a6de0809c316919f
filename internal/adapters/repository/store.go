// Package repository provides the in-memory catalog of candidates and the
// saved-team store the workspace reads from.
package repository

import (
	"context"

	"github.com/okian/teamforge/internal/domain/model"
)

// Catalog provides full candidate records by id.
type Catalog interface {
	// List returns every candidate in catalog order.
	List(ctx context.Context) []model.Candidate
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (model.Candidate, error)
	// Lookup resolves ids in order, skipping unknown ones.
	Lookup(ctx context.Context, ids []string) []model.Candidate
}

// TeamStore persists saved team templates.
type TeamStore interface {
	// List returns teams in creation order.
	List(ctx context.Context) []model.Team
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (model.Team, error)
	// Save stores team, assigning an id when it has none, and returns the
	// stored record.
	Save(ctx context.Context, team model.Team) (model.Team, error)
	// Delete returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
}
