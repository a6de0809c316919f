package simulate

import "time"

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	SettleDelay          = 500 * time.Millisecond
	PercentageMultiplier = 100
)

// Outcome labels for a submitted request.
const (
	outcomeCommitted = "committed"
	outcomeDuplicate = "duplicate"
	outcomeConflict  = "conflict"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)
