package session

import "sync"

// Subject is an explicit observable holding the current sign-in state.
// Listeners are registered once per page and removed deterministically on
// teardown, so no registration leaks across reloads in a long-lived client.
type Subject struct {
	mu        sync.RWMutex
	current   *User
	listeners map[int]func(*User)
	nextID    int
}

// NewSubject creates a Subject seeded with the given user (nil for signed-out).
func NewSubject(u *User) *Subject {
	return &Subject{
		current:   u,
		listeners: make(map[int]func(*User)),
	}
}

// Current returns the user the subject last observed, or nil.
func (s *Subject) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers a listener and returns its unsubscribe function.
// The listener is NOT invoked with the current state at registration time;
// it only fires on subsequent changes, mirroring the identity provider's
// listener contract.
func (s *Subject) Subscribe(listener func(*User)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Set replaces the current user and synchronously notifies every listener.
func (s *Subject) Set(u *User) {
	s.mu.Lock()
	s.current = u
	notify := make([]func(*User), 0, len(s.listeners))
	for _, l := range s.listeners {
		notify = append(notify, l)
	}
	s.mu.Unlock()

	for _, l := range notify {
		l(u)
	}
}
