package simulate

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/teamforge/pkg/logger"
)

// SetupLogging sends JSON logs to stdout and to logFile. If logFile is
// empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) error {
	if logFile == "" {
		logFile = "sim_log_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(
		logger.WithFormat(logger.FormatJSON),
		logger.WithLevel(level),
		logger.WithOutput(io.MultiWriter(os.Stdout, file)),
	); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the simulator.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`teamforge gesture simulator
===========================

Drives random drag, move, selector and save gestures against a running
teamforge service and verifies the final workspace.

Usage:
  go run ./cmd/gesture-sim [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -gestures int
        Number of gestures to generate (default 2000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -replay float
        Fraction of event ids submitted twice (default 0.1)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Write generated gestures to this JSON file
  -log string
        Log file for run output (default: sim_log_TIMESTAMP.log)
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  go run ./cmd/gesture-sim -gestures 10000 -workers 16
  go run ./cmd/gesture-sim -url http://localhost:8080 -replay 0.5 -output gestures.json
`)
}
