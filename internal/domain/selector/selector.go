// Package selector implements the single-choice saved-team dropdown.
//
// The dropdown is Closed or Open. While Open it holds a subscription to an
// OutsideSource so that an interaction elsewhere closes it; the
// subscription is released on every path back to Closed and on Destroy.
package selector

import "github.com/okian/teamforge/internal/domain/model"

// Listener is told about every applied choice; nil means cleared.
type Listener func(team *model.Team)

// Machine is the selector state. It is not safe for concurrent use.
type Machine struct {
	teams    []model.Team
	selected *string
	open     bool

	source   OutsideSource
	release  func()
	listener Listener
}

// New returns a closed selector with no selection. source may be nil, in
// which case outside interactions are only reported via SelectOutside.
func New(source OutsideSource, opts ...Option) *Machine {
	m := &Machine{source: source}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsOpen reports whether the dropdown is open.
func (m *Machine) IsOpen() bool { return m.open }

// Toggle flips between Closed and Open.
func (m *Machine) Toggle() {
	if m.open {
		m.close()
		return
	}
	m.openDropdown()
}

// SelectOutside closes an open dropdown. It is a no-op when closed.
func (m *Machine) SelectOutside() bool {
	if !m.open {
		return false
	}
	m.close()
	return true
}

// Choose sets the selection and closes the dropdown. A nil id clears the
// selection. An id that is not in the teams list only closes the dropdown
// and returns false.
func (m *Machine) Choose(id *string) bool {
	m.close()
	if id == nil {
		m.selected = nil
		if m.listener != nil {
			m.listener(nil)
		}
		return true
	}
	team, ok := m.find(*id)
	if !ok {
		return false
	}
	v := *id
	m.selected = &v
	if m.listener != nil {
		m.listener(&team)
	}
	return true
}

// SetTeams replaces the list of saved teams. The selection is kept even if
// it no longer matches any team.
func (m *Machine) SetTeams(teams []model.Team) {
	m.teams = append([]model.Team(nil), teams...)
}

// Teams returns the current list of saved teams.
func (m *Machine) Teams() []model.Team {
	return append([]model.Team(nil), m.teams...)
}

// SelectedID returns the raw selected id, which may be stale.
func (m *Machine) SelectedID() (string, bool) {
	if m.selected == nil {
		return "", false
	}
	return *m.selected, true
}

// Selected resolves the selection against the teams list. A stale id is
// reported as not found.
func (m *Machine) Selected() (model.Team, bool) {
	if m.selected == nil {
		return model.Team{}, false
	}
	return m.find(*m.selected)
}

// Destroy releases any outstanding subscription and closes the dropdown.
func (m *Machine) Destroy() {
	m.close()
}

func (m *Machine) openDropdown() {
	m.open = true
	if m.source != nil && m.release == nil {
		m.release = m.source.Subscribe(func() { m.SelectOutside() })
	}
}

func (m *Machine) close() {
	m.open = false
	if m.release != nil {
		release := m.release
		m.release = nil
		release()
	}
}

func (m *Machine) find(id string) (model.Team, bool) {
	for _, t := range m.teams {
		if t.ID == id {
			return t, true
		}
	}
	return model.Team{}, false
}
