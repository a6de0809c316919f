// Package drag implements the pointer-drag session state machine.
//
// A session is opened on drag-start, tracks the hover target on every
// drag-over and applies exactly one store mutation on drag-end. Nothing is
// written to the store before the commit, so cancelling always leaves the
// collections as they were before the drag.
package drag

import (
	"fmt"

	"github.com/okian/teamforge/internal/domain/collection"
)

// Container sentinels stand for a drop on the empty area of a collection
// rather than on a card.
const (
	TeamContainer = "team-container"
	PoolContainer = "pool-container"
)

// State of the machine. Committed and Cancelled are reported through
// Outcome; the machine itself returns to Idle immediately.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Result is the terminal state a session resolved to.
type Result int

const (
	Committed Result = iota + 1
	Cancelled
)

func (r Result) String() string {
	switch r {
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Op names the store operation applied on commit.
type Op int

const (
	OpNone Op = iota
	OpMoveToTeam
	OpMoveWithinTeam
	OpRemoveFromTeam
)

func (o Op) String() string {
	switch o {
	case OpMoveToTeam:
		return "move_to_team"
	case OpMoveWithinTeam:
		return "move_within_team"
	case OpRemoveFromTeam:
		return "remove_from_team"
	default:
		return "none"
	}
}

// Session is the ephemeral state between drag-start and its resolution.
// OverID is empty and OverCollection is collection.None while nothing is
// hovered.
type Session struct {
	DraggedID      string
	Source         collection.Kind
	SourceIndex    int
	OverID         string
	OverCollection collection.Kind
}

// Outcome describes how a session ended.
type Outcome struct {
	Result  Result
	Op      Op
	Index   int
	Changed bool
	Session Session
}

// Mutator is the subset of the collection store a commit needs.
type Mutator interface {
	MoveToTeam(id string, atIndex int) bool
	MoveWithinTeam(id string, toIndex int) bool
	RemoveFromTeam(id string) bool
	TeamIndex(id string) int
	TeamLen() int
}

// Machine holds at most one active session.
type Machine struct {
	session *Session
}

// New returns an idle machine.
func New() *Machine {
	return &Machine{}
}

// State reports whether a session is active.
func (m *Machine) State() State {
	if m.session == nil {
		return Idle
	}
	return Active
}

// Session returns a copy of the active session.
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Start opens a session. Starting while another session is active is
// rejected and leaves the active session untouched.
func (m *Machine) Start(id string, source collection.Kind, sourceIndex int) error {
	if m.session != nil {
		return fmt.Errorf("start %q while %q is active: %w", id, m.session.DraggedID, ErrInvalidTransition)
	}
	if source != collection.Pool && source != collection.Team {
		return fmt.Errorf("start %q from %s: %w", id, source, ErrUnknownCollection)
	}
	m.session = &Session{
		DraggedID:   id,
		Source:      source,
		SourceIndex: sourceIndex,
	}
	return nil
}

// Over records the current hover target. An empty overID clears it.
func (m *Machine) Over(overID string, over collection.Kind) error {
	if m.session == nil {
		return fmt.Errorf("over %q with no session: %w", overID, ErrInvalidTransition)
	}
	if overID == "" || over == collection.None {
		m.session.OverID = ""
		m.session.OverCollection = collection.None
		return nil
	}
	m.session.OverID = overID
	m.session.OverCollection = over
	return nil
}

// Cancel discards the active session without touching any store.
func (m *Machine) Cancel() (Outcome, error) {
	if m.session == nil {
		return Outcome{}, fmt.Errorf("cancel with no session: %w", ErrInvalidTransition)
	}
	s := *m.session
	m.session = nil
	return Outcome{Result: Cancelled, Op: OpNone, Index: -1, Session: s}, nil
}

// End resolves the session. Without a hover target it cancels; otherwise it
// applies a single mutation to store and commits.
func (m *Machine) End(store Mutator) (Outcome, error) {
	if m.session == nil {
		return Outcome{}, fmt.Errorf("end with no session: %w", ErrInvalidTransition)
	}
	s := *m.session
	m.session = nil

	if s.OverID == "" || s.OverCollection == collection.None {
		return Outcome{Result: Cancelled, Op: OpNone, Index: -1, Session: s}, nil
	}

	out := Outcome{Result: Committed, Op: OpNone, Index: -1, Session: s}
	switch s.OverCollection {
	case collection.Team:
		idx := resolveTeamIndex(store, s.OverID)
		out.Index = idx
		switch {
		case s.Source == collection.Pool:
			out.Op = OpMoveToTeam
			out.Changed = store.MoveToTeam(s.DraggedID, idx)
		case s.SourceIndex != idx:
			out.Op = OpMoveWithinTeam
			out.Changed = store.MoveWithinTeam(s.DraggedID, idx)
		}
	case collection.Pool:
		if s.Source == collection.Team {
			out.Op = OpRemoveFromTeam
			out.Changed = store.RemoveFromTeam(s.DraggedID)
		}
	}
	return out, nil
}

// resolveTeamIndex maps the hovered id to an insertion index. The container
// sentinel and ids no longer on the team resolve to the end of the list.
func resolveTeamIndex(store Mutator, overID string) int {
	if overID == TeamContainer {
		return store.TeamLen()
	}
	if idx := store.TeamIndex(overID); idx >= 0 {
		return idx
	}
	return store.TeamLen()
}
