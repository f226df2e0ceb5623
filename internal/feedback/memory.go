package feedback

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends an entry.
func (s *MemoryStore) Add(ctx context.Context, text string) (Entry, error) {
	if text == "" {
		return Entry{}, ErrEmpty
	}
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := Entry{ID: int64(len(s.entries) + 1), Text: text, CreatedAt: now()}
	s.entries = append(s.entries, e)
	return e, nil
}

// List returns a copy of all entries.
func (s *MemoryStore) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
