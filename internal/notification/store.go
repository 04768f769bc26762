package notification

import "sync"

// Store holds the unread notification count shown on the badge. Set is the
// only way the count changes; subscribers hear about every change.
type Store struct {
	// deliver is held from the update through the fan-out, so subscribers
	// see changes in the order they were applied.
	deliver sync.Mutex
	mu      sync.Mutex
	count   int
	nextID  int
	subs    map[int]func(int)
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(int))}
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Set updates the count and notifies subscribers when it differs from the
// current value. Negative values are clamped to zero. Subscribers must not
// call Set.
func (s *Store) Set(n int) {
	if n < 0 {
		n = 0
	}
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	if n == s.count {
		s.mu.Unlock()
		return
	}
	s.count = n
	subs := make([]func(int), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Subscribe registers fn for count changes. The returned function removes it.
func (s *Store) Subscribe(fn func(int)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
