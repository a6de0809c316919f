package config

import "errors"

// Sentinel error kinds. Load wraps file and provider failures with
// ErrLoadConfig and decoding or Validate failures with ErrInvalidConfig.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
