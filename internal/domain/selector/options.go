package selector

import "github.com/okian/teamforge/internal/domain/model"

// Option applies a configuration option to the Machine.
type Option func(*Machine)

// WithListener registers the selection listener.
func WithListener(l Listener) Option {
	return func(m *Machine) {
		m.listener = l
	}
}

// WithTeams seeds the list of saved teams.
func WithTeams(teams []model.Team) Option {
	return func(m *Machine) {
		m.teams = append([]model.Team(nil), teams...)
	}
}
