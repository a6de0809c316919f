package selector

import "sync"

// OutsideSource delivers "interaction outside the control" notifications.
// Subscribe returns the function that releases the subscription.
type OutsideSource interface {
	Subscribe(fn func()) (unsubscribe func())
}

// Broadcaster is an in-process OutsideSource. Publish fans out to every
// current subscriber.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// NewBroadcaster returns a broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func())}
}

// Subscribe registers fn. The returned func is safe to call more than once.
func (b *Broadcaster) Subscribe(fn func()) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish notifies all subscribers. Subscribers may unsubscribe from inside
// their callback.
func (b *Broadcaster) Publish() int {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Subscribers returns the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
