package repository

// Option applies a configuration option to the InMemoryTeamStore.
type Option func(*InMemoryTeamStore)

// WithIDGenerator replaces the uuid generator used for new teams.
func WithIDGenerator(gen func() string) Option {
	return func(s *InMemoryTeamStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}
