package drag

import "errors"

// Sentinel kinds for drag session errors.
var (
	// ErrInvalidTransition signals a caller bug: a start while a session is
	// active, or an over/end without one. The machine state is unchanged.
	ErrInvalidTransition = errors.New("invalid drag transition")
	// ErrUnknownCollection is returned when a session starts from neither
	// the pool nor the team.
	ErrUnknownCollection = errors.New("unknown drag source collection")
)
