package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/teamforge/internal/simulate"
)

// Default configuration constants.
const (
	defaultGestures    = 2000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultReplay      = 0.1
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		gestures   = flag.Int("gestures", defaultGestures, "Number of gestures to generate")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		replay     = flag.Float64("replay", defaultReplay, "Fraction of event ids submitted twice")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Write generated gestures to this JSON file")
		logFile    = flag.String("log", "", "Log file for run output (default: sim_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := simulate.SetupLogging(*logFile, *verbose); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &simulate.Config{
		BaseURL:    *baseURL,
		Gestures:   *gestures,
		Workers:    *workers,
		Replay:     *replay,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if _, err := simulate.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1) //nolint:gocritic // cancel called above
	}
}
