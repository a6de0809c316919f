package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/teamforge/internal/domain/model"
)

// InMemoryCatalog is a read-mostly candidate catalog.
type InMemoryCatalog struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]model.Candidate
}

// NewInMemoryCatalog builds a catalog. Later duplicates replace earlier
// records but keep the first position.
func NewInMemoryCatalog(candidates []model.Candidate) *InMemoryCatalog {
	c := &InMemoryCatalog{byID: make(map[string]model.Candidate, len(candidates))}
	for _, cand := range candidates {
		if cand.ID == "" {
			continue
		}
		if _, ok := c.byID[cand.ID]; !ok {
			c.order = append(c.order, cand.ID)
		}
		c.byID[cand.ID] = cand.Normalize()
	}
	return c
}

func (c *InMemoryCatalog) List(_ context.Context) []model.Candidate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Candidate, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *InMemoryCatalog) Get(_ context.Context, id string) (model.Candidate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cand, ok := c.byID[id]
	if !ok {
		return model.Candidate{}, fmt.Errorf("candidate %q: %w", id, ErrNotFound)
	}
	return cand, nil
}

func (c *InMemoryCatalog) Lookup(_ context.Context, ids []string) []model.Candidate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Candidate, 0, len(ids))
	for _, id := range ids {
		if cand, ok := c.byID[id]; ok {
			out = append(out, cand)
		}
	}
	return out
}

// IDs returns the candidate ids in catalog order.
func (c *InMemoryCatalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}
