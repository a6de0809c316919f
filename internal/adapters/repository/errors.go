package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidTeam = errors.New("invalid team")
	ErrLoadSeed    = errors.New("load seed failed")
)
