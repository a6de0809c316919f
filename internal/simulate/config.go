package simulate

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Gestures   int           // Number of gestures to generate
	Workers    int           // Number of concurrent workers
	Replay     float64       // Fraction of event ids submitted twice
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated gestures
	LogFile    string        // Log file for run output
	Verbose    bool          // Enable verbose logging
}

// Kind names a gesture the simulator can submit.
type Kind string

// Gesture kinds.
const (
	KindDrag     Kind = "drag"
	KindAdd      Kind = "add"
	KindMove     Kind = "move"
	KindRemove   Kind = "remove"
	KindToggle   Kind = "toggle"
	KindPointer  Kind = "pointer"
	KindChoose   Kind = "choose"
	KindSaveTeam Kind = "save_team"
)

// Gesture is one generated client interaction. Drag gestures expand into
// start, over and end requests.
type Gesture struct {
	Kind           Kind    `json:"kind"`
	EventID        string  `json:"event_id,omitempty"`
	ID             string  `json:"id,omitempty"`
	Source         string  `json:"source,omitempty"`
	Index          int     `json:"index"`
	OverID         string  `json:"over_id,omitempty"`
	OverCollection string  `json:"over_collection,omitempty"`
	TeamID         *string `json:"team_id,omitempty"`
}

// Snapshot is the subset of GET /workspace the verifier reads.
type Snapshot struct {
	Revision uint64   `json:"revision"`
	Pool     []string `json:"pool"`
	Team     []string `json:"team"`
	Metrics  *Metrics `json:"metrics"`
	Drag     *struct {
		DraggedID string `json:"dragged_id"`
	} `json:"drag"`
	Selector struct {
		Open bool `json:"open"`
	} `json:"selector"`
}

// Metrics mirrors the team metrics in a snapshot.
type Metrics struct {
	AvgScore    int  `json:"avg_score"`
	TotalSkills int  `json:"total_skills"`
	TeamSize    int  `json:"team_size"`
	Synergy     bool `json:"synergy"`
}

// Candidate is the subset of GET /candidates the generator reads.
type Candidate struct {
	ID string `json:"id"`
}

// Team is the subset of GET /teams the generator reads.
type Team struct {
	ID string `json:"id"`
}

// GestureResponse is the body returned by committing gestures.
type GestureResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
	Changed   bool   `json:"changed"`
}

// Stats holds run statistics.
type Stats struct {
	GesturesGenerated int
	RequestsSent      int
	Committed         int
	Duplicates        int
	Conflicts         int
	Rejected          int
	Failed            int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
