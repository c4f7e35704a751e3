// Package bus broadcasts "collection changed" signals to every open view.
//
// A notification carries only the collection key. Subscribers re-read the
// collections they care about; bursts of writes coalesce, so a subscriber
// is only guaranteed to observe the latest value.
package bus

import (
	"context"
	"sort"
	"sync"
)

// Notifier is raised by the record store after every successful write.
type Notifier interface {
	Notify(ctx context.Context, key string)
}

type Bus struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

func New() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Notify signals every subscription interested in key. It never blocks.
func (b *Bus) Notify(_ context.Context, key string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.subs {
		s.deliver(key)
	}
}

// Subscribe registers a view. With no keys the subscription observes every
// collection. The subscription is released when ctx is done or Close is
// called, whichever comes first.
func (b *Bus) Subscribe(ctx context.Context, keys ...string) *Subscription {
	s := &Subscription{
		bus:     b,
		signal:  make(chan struct{}, 1),
		pending: make(map[string]struct{}),
		done:    make(chan struct{}),
	}
	if len(keys) > 0 {
		s.keys = make(map[string]struct{}, len(keys))
		for _, key := range keys {
			s.keys[key] = struct{}{}
		}
	}

	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				s.Close()
			case <-s.done:
			}
		}()
	}

	return s
}

// Watch calls fn with the changed keys after every notification until ctx
// is done. It blocks.
func (b *Bus) Watch(ctx context.Context, fn func(changed []string), keys ...string) {
	sub := b.Subscribe(ctx, keys...)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.C():
			changed := sub.Changed()
			if len(changed) > 0 {
				fn(changed)
			}
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) remove(s *Subscription) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
}

type Subscription struct {
	bus    *Bus
	keys   map[string]struct{} // nil = all keys
	signal chan struct{}

	mu      sync.Mutex
	pending map[string]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// C receives a value when at least one watched collection changed since
// the last call to Changed.
func (s *Subscription) C() <-chan struct{} {
	return s.signal
}

// Done is closed once the subscription has been released.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Changed drains and returns the keys written since the previous call.
func (s *Subscription) Changed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.pending))
	for key := range s.pending {
		keys = append(keys, key)
	}
	clear(s.pending)
	sort.Strings(keys)
	return keys
}

// Close unsubscribes. Safe to call more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.remove(s)
		close(s.done)
	})
}

func (s *Subscription) deliver(key string) {
	if s.keys != nil {
		_, ok := s.keys[key]
		if !ok {
			return
		}
	}

	s.mu.Lock()
	s.pending[key] = struct{}{}
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default: // a signal is already pending
	}
}
