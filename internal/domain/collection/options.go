package collection

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithListener registers the change listener.
func WithListener(l Listener) Option {
	return func(s *Store) {
		s.listener = l
	}
}
