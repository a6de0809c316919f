package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/teamforge/internal/domain/model"
)

// InMemoryTeamStore keeps saved teams in creation order.
type InMemoryTeamStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]model.Team
	newID func() string
}

// NewInMemoryTeamStore creates a store seeded with teams. A seeded team that
// fails validation rejects the whole seed.
func NewInMemoryTeamStore(teams []model.Team, opts ...Option) (*InMemoryTeamStore, error) {
	s := &InMemoryTeamStore{
		byID:  make(map[string]model.Team),
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, t := range teams {
		if _, err := s.Save(context.Background(), t); err != nil {
			return nil, fmt.Errorf("seed team #%d %q: %w", i, t.ID, err)
		}
	}
	return s, nil
}

func (s *InMemoryTeamStore) List(_ context.Context) []model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Team, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneTeam(s.byID[id]))
	}
	return out
}

func (s *InMemoryTeamStore) Get(_ context.Context, id string) (model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byID[id]
	if !ok {
		return model.Team{}, fmt.Errorf("team %q: %w", id, ErrNotFound)
	}
	return cloneTeam(t), nil
}

func (s *InMemoryTeamStore) Save(_ context.Context, team model.Team) (model.Team, error) {
	if strings.TrimSpace(team.Name) == "" {
		return model.Team{}, fmt.Errorf("team name is empty: %w", ErrInvalidTeam)
	}
	team = cloneTeam(team)
	team.CompatibilityScore = model.ClampScore(team.CompatibilityScore)

	s.mu.Lock()
	defer s.mu.Unlock()
	if team.ID == "" {
		team.ID = s.newID()
	}
	if _, ok := s.byID[team.ID]; !ok {
		s.order = append(s.order, team.ID)
	}
	s.byID[team.ID] = team
	return cloneTeam(team), nil
}

func (s *InMemoryTeamStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("team %q: %w", id, ErrNotFound)
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneTeam(t model.Team) model.Team {
	t.Members = append([]model.Member(nil), t.Members...)
	return t
}
