package service

import (
	"time"

	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/scoring"
	"github.com/okian/teamforge/internal/domain/teamstats"
	"github.com/okian/teamforge/pkg/logger"
)

// Option applies a configuration option to the Workspace.
type Option func(*Workspace)

// WithWorkerCount sets the number of scoring workers.
func WithWorkerCount(count int) Option {
	return func(w *Workspace) {
		if count > 0 {
			w.workerCount = count
		}
	}
}

// WithQueueSize bounds the scoring request queue.
func WithQueueSize(size int) Option {
	return func(w *Workspace) {
		if size > 0 {
			w.queueSize = size
		}
	}
}

// WithDedupeSize bounds how many gesture ids are remembered.
func WithDedupeSize(size int) Option {
	return func(w *Workspace) {
		if size > 0 {
			w.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithScorer replaces the in-memory compatibility scorer.
func WithScorer(s scoring.Scorer) Option {
	return func(w *Workspace) {
		if s != nil {
			w.scorer = s
		}
	}
}

// WithScoringLatencyRange sets the simulated scoring latency of the
// default scorer.
func WithScoringLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(w *Workspace) {
		if minLatency >= 0 && maxLatency >= minLatency {
			w.scoringMinLatency = minLatency
			w.scoringMaxLatency = maxLatency
		}
	}
}

// WithWeights sets the compatibility blend weights.
func WithWeights(weights scoring.Weights) Option {
	return func(w *Workspace) {
		if weights.Talent+weights.Diversity+weights.Coverage > 0 {
			w.weights = weights
		}
	}
}

// WithStrictTransitions makes invalid drag transitions return
// drag.ErrInvalidTransition instead of being logged and ignored.
func WithStrictTransitions(strict bool) Option {
	return func(w *Workspace) {
		w.strict = strict
	}
}

// WithRequiredSkills sets the skills the skill-gap report checks for.
func WithRequiredSkills(skills []string) Option {
	return func(w *Workspace) {
		w.required = append([]string(nil), skills...)
	}
}

// WithInitialTeam seeds the working team. Ids unknown to the catalog are dropped.
func WithInitialTeam(ids []string) Option {
	return func(w *Workspace) {
		w.initialTeam = append([]string(nil), ids...)
	}
}

// WithOnTeamChanged registers a listener for the new team order.
func WithOnTeamChanged(fn func(team []string)) Option {
	return func(w *Workspace) { w.onTeamChanged = fn }
}

// WithOnTeamSelected registers a listener for selector choices; nil means cleared.
func WithOnTeamSelected(fn func(team *model.Team)) Option {
	return func(w *Workspace) { w.onTeamSelected = fn }
}

// WithOnMetricsChanged registers a listener for recomputed team metrics;
// nil means the team is empty.
func WithOnMetricsChanged(fn func(m *teamstats.Metrics)) Option {
	return func(w *Workspace) { w.onMetricsChanged = fn }
}

// WithOnCompatibilityChanged registers a listener for the compatibility
// score; nil means no score for the current team yet.
func WithOnCompatibilityChanged(fn func(score *int)) Option {
	return func(w *Workspace) { w.onCompatibilityChanged = fn }
}
