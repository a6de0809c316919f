// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New.
// - Errors returned from this package wrap ErrInvalidConfig or ErrLoadConfig.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the scoring request queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds how many gesture event ids are remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// ScoringLatencyMinMS and ScoringLatencyMaxMS simulate the external
	// compatibility service latency.
	ScoringLatencyMinMS int `koanf:"scoring_latency_min_ms"`
	ScoringLatencyMaxMS int `koanf:"scoring_latency_max_ms"`

	// Compatibility blend weights.
	WeightTalent    float64 `koanf:"weight_talent"`
	WeightDiversity float64 `koanf:"weight_diversity"`
	WeightCoverage  float64 `koanf:"weight_coverage"`

	// SeedPath points to a YAML file with candidates and saved teams.
	// Empty uses the sample seed bundled with the server.
	SeedPath string `koanf:"seed_path"`

	// StrictTransitions surfaces invalid drag transitions as errors instead
	// of ignoring them.
	StrictTransitions bool `koanf:"strict_transitions"`

	// RequiredSkills feeds the skill-gap report of the working team.
	RequiredSkills []string `koanf:"required_skills"`
}

// New creates a Config with defaults. The context is reserved for loaders
// that need it.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		QueueSize:           1024,
		WorkerCount:         runtime.NumCPU(),
		DedupeSize:          10_000,
		ScoringLatencyMinMS: 80,
		ScoringLatencyMaxMS: 150,
		WeightTalent:        0.4,
		WeightDiversity:     0.35,
		WeightCoverage:      0.25,
		StrictTransitions:   false,
		RequiredSkills:      []string{},
	}
}
