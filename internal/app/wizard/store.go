package wizard

import (
	"context"
	"sync"
)

// Store is the scratch storage the draft lives in between page loads. It is
// read-merge-write: callers always load the whole draft, merge their step's
// fields, and save the whole draft back. There is no partial patching.
type Store interface {
	// Load returns the draft for the scratch key and whether one exists.
	Load(ctx context.Context, key string) (Draft, bool, error)

	// Save writes the whole draft under the scratch key, creating it on
	// first write.
	Save(ctx context.Context, key string, d Draft) error

	// Clear removes the draft. Clearing an absent draft is a no-op.
	Clear(ctx context.Context, key string) error
}

// MemoryStore is an in-process Store used by tests and by development setups
// that run without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]Draft)}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, key string) (Draft, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[key]
	return d, ok, nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, key string, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[key] = d
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, key)
	return nil
}
