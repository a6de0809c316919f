// Package scoring defines the contract for rating how well a set of
// candidates works together, plus an in-memory stand-in for the external
// compatibility service.
package scoring

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/teamforge/internal/domain/model"
)

// Default scoring configuration constants.
const (
	// DefaultScore is reported for teams with fewer than two members.
	DefaultScore = 75

	defaultMinLatency      = 80 * time.Millisecond
	defaultMaxLatency      = 150 * time.Millisecond
	defaultRandomSeed      = 42
	defaultTalentWeight    = 0.4
	defaultDiversityWeight = 0.35
	defaultCoverageWeight  = 0.25
)

// Weights blends the three compatibility components. They are normalised
// by their sum, so only ratios matter.
type Weights struct {
	Talent    float64
	Diversity float64
	Coverage  float64
}

// Option applies a configuration option to the InMemoryScorer.
type Option func(*InMemoryScorer)

// WithLatencyRange sets the simulated latency range. A zero range disables
// the simulated delay.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *InMemoryScorer) {
		if minLatency >= 0 && maxLatency >= minLatency {
			s.minLatency = minLatency
			s.maxLatency = maxLatency
		}
	}
}

// WithWeights overrides the component weights. Non-positive sums are ignored.
func WithWeights(w Weights) Option {
	return func(s *InMemoryScorer) {
		if w.Talent < 0 || w.Diversity < 0 || w.Coverage < 0 {
			return
		}
		if w.Talent+w.Diversity+w.Coverage > 0 {
			s.weights = w
		}
	}
}

// Input is the set of candidates to rate.
type Input struct {
	Revision uint64
	Members  []model.Candidate
}

// Result carries the computed score for one revision.
type Result struct {
	Revision uint64
	Score    int
}

// Scorer computes a compatibility score. Implementations may be remote and
// slow; ctx bounds the call.
type Scorer interface {
	Score(ctx context.Context, in Input) (Result, error)
}

// InMemoryScorer implements Scorer with a deterministic formula and a
// simulated service latency.
type InMemoryScorer struct {
	weights    Weights
	minLatency time.Duration
	maxLatency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewInMemoryScorer creates a scorer with configuration options.
func NewInMemoryScorer(opts ...Option) *InMemoryScorer {
	s := &InMemoryScorer{
		weights: Weights{
			Talent:    defaultTalentWeight,
			Diversity: defaultDiversityWeight,
			Coverage:  defaultCoverageWeight,
		},
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // latency jitter only
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score rates the input after the simulated latency.
func (s *InMemoryScorer) Score(ctx context.Context, in Input) (Result, error) {
	if latency := s.latency(); latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{}, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context cancelled: %w", err)
	}
	return Result{Revision: in.Revision, Score: Compatibility(in.Members, s.weights)}, nil
}

func (s *InMemoryScorer) latency() time.Duration {
	span := s.maxLatency - s.minLatency
	if span <= 0 {
		return s.minLatency
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minLatency + time.Duration(s.rng.Int63n(int64(span)))
}

// Compatibility is the pure scoring formula. Teams with fewer than two
// members get DefaultScore.
func Compatibility(members []model.Candidate, w Weights) int {
	if len(members) < 2 {
		return DefaultScore
	}
	total := w.Talent + w.Diversity + w.Coverage
	if total <= 0 {
		w = Weights{Talent: defaultTalentWeight, Diversity: defaultDiversityWeight, Coverage: defaultCoverageWeight}
		total = w.Talent + w.Diversity + w.Coverage
	}

	talent := 0.0
	mentions := 0
	names := make(map[string]struct{})
	levels := make(map[model.SkillLevel]struct{})
	for _, c := range members {
		talent += float64(model.ClampScore(c.TalentFitScore))
		for _, sk := range c.Skills {
			mentions++
			names[sk.Name] = struct{}{}
			levels[model.ParseSkillLevel(string(sk.Level))] = struct{}{}
		}
	}
	talent /= float64(len(members))

	diversity := 0.0
	if mentions > 0 {
		diversity = float64(len(names)) / float64(mentions) * model.MaxScore
	}
	coverage := float64(len(levels)) / float64(len(model.Levels)) * model.MaxScore

	score := (talent*w.Talent + diversity*w.Diversity + coverage*w.Coverage) / total
	return model.ClampScore(int(math.Round(score)))
}
