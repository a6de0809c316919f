package service

import (
	"fmt"

	repository "github.com/okian/teamforge/internal/adapters/repository"
)

// ErrEmptyTeam is returned when saving a working team with no members.
var ErrEmptyTeam = fmt.Errorf("working team is empty: %w", repository.ErrInvalidTeam)
