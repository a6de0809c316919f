package simulate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/teamforge/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run executes a complete simulation: it checks the service, generates and
// submits gestures, closes any dangling drag session and verifies the final
// workspace.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting gesture simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("gestures", config.Gestures),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Bool("verbose", config.Verbose))

	client := NewHTTPClient(config.BaseURL, config.Timeout)

	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	catalog, teams, err := fetchReferences(ctx, client)
	if err != nil {
		return stats, err
	}
	if len(catalog) == 0 {
		return stats, fmt.Errorf("service has no candidates")
	}

	gestures := GenerateGestures(ctx, config.Gestures, catalog, teams, config.Replay)
	stats.GesturesGenerated = len(gestures)

	submitGestures(ctx, config, client, gestures, stats)

	// A worker may have stopped between start and end.
	if _, _, err := client.Post(ctx, "/drag/cancel", nil); err != nil {
		logger.Get().Warn(ctx, "failed to cancel drag", logger.Error(err))
	}
	time.Sleep(SettleDelay)

	if _, err := verifyResults(ctx, client, catalog); err != nil {
		return stats, fmt.Errorf("result verification failed: %w", err)
	}

	if config.OutputFile != "" {
		if err := saveGesturesToFile(ctx, config.OutputFile, gestures); err != nil {
			logger.Get().Warn(ctx, "failed to save gestures to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")
	if err := client.Get(ctx, "/healthz", nil); err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

func fetchReferences(ctx context.Context, client *HTTPClient) ([]string, []string, error) {
	var cands []Candidate
	if err := client.Get(ctx, "/candidates", &cands); err != nil {
		return nil, nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	var saved []Team
	if err := client.Get(ctx, "/teams", &saved); err != nil {
		return nil, nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	catalog := make([]string, len(cands))
	for i, c := range cands {
		catalog[i] = c.ID
	}
	teams := make([]string, len(saved))
	for i, t := range saved {
		teams[i] = t.ID
	}
	return catalog, teams, nil
}

// saveGesturesToFile writes the generated gestures as a JSON array.
func saveGesturesToFile(ctx context.Context, filename string, gestures []Gesture) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	raw, err := json.MarshalIndent(gestures, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal gestures: %w", err)
	}
	if err := os.WriteFile(filename, raw, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	logger.Get().Info(ctx, "gestures saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var committedRate, requestsPerSecond float64
	if stats.RequestsSent > 0 {
		committedRate = float64(stats.Committed) / float64(stats.RequestsSent) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.RequestsSent) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("gesturesGenerated", stats.GesturesGenerated),
		logger.Int("requestsSent", stats.RequestsSent),
		logger.Int("committed", stats.Committed),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("conflicts", stats.Conflicts),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("committedRate", committedRate),
		logger.Float64("requestsPerSecond", requestsPerSecond))
}
