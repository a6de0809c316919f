package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/teamforge/internal/adapters/http/api"
	"github.com/okian/teamforge/internal/adapters/http/swagger"
	repository "github.com/okian/teamforge/internal/adapters/repository"
	service "github.com/okian/teamforge/internal/app"
	"github.com/okian/teamforge/internal/config"
	"github.com/okian/teamforge/internal/domain/scoring"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/okian/teamforge/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

//go:embed seed.yaml
var sampleSeed []byte

func main() {
	// Only the custom registry is exported.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// defaults -> optional file -> env
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel)); err != nil {
		_ = logger.Init(logger.WithFormat(cfg.LogFormat))
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
	}
	defer func() { _ = logger.Sync() }()
	loggerInstance := logger.Get()

	ws, err := newWorkspace(ctx, cfg)
	if err != nil {
		loggerInstance.Error(ctx, "failed to build workspace", logger.Error(err))
		os.Exit(1)
	}
	if err := ws.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start workspace", logger.Error(err))
		os.Exit(1)
	}

	go startSystemMetricsUpdater(ctx, metrics.RefreshInterval())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, ws),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	if err := ws.Stop(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "workspace shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// loadSeed reads the configured seed file, or the bundled sample.
func loadSeed(cfg *config.Config) (repository.Seed, error) {
	if cfg.SeedPath == "" {
		return repository.ParseSeed(sampleSeed)
	}
	return repository.LoadSeed(cfg.SeedPath)
}

// newWorkspace builds the workspace from configuration.
func newWorkspace(ctx context.Context, cfg *config.Config) (*service.Workspace, error) {
	seed, err := loadSeed(cfg)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	logger.Get().Info(ctx, "seed loaded",
		logger.Int("candidates", len(seed.Candidates)),
		logger.Int("teams", len(seed.Teams)),
		logger.String("path", cfg.SeedPath))

	teams, err := repository.NewInMemoryTeamStore(seed.Teams)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}

	return service.New(
		repository.NewInMemoryCatalog(seed.Candidates),
		teams,
		service.WithLogger(logger.Named("workspace")),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.QueueSize),
		service.WithDedupeSize(cfg.DedupeSize),
		service.WithScoringLatencyRange(
			time.Duration(cfg.ScoringLatencyMinMS)*time.Millisecond,
			time.Duration(cfg.ScoringLatencyMaxMS)*time.Millisecond,
		),
		service.WithWeights(scoring.Weights{
			Talent:    cfg.WeightTalent,
			Diversity: cfg.WeightDiversity,
			Coverage:  cfg.WeightCoverage,
		}),
		service.WithStrictTransitions(cfg.StrictTransitions),
		service.WithRequiredSkills(cfg.RequiredSkills),
	), nil
}

// newMux registers the documentation and API routes.
func newMux(ctx context.Context, ws *service.Workspace) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(ws, ws).Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater refreshes runtime metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
