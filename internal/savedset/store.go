// Package savedset owns the user's local bookmark set. It holds book ids
// only, never book records, so catalog deletions need no synchronous
// invalidation here.
package savedset

import (
	"log/slog"
	"sort"
	"sync"
)

// Cache persists the id set between sessions.
type Cache interface {
	SaveSavedIDs(ids []string) error
	LoadSavedIDs() ([]string, bool, error)
}

// Store is the authoritative saved-id set for the session. Every mutation
// is written through to the cache; persistence failures are logged and do
// not fail the mutation.
type Store struct {
	mu    sync.Mutex
	ids   map[string]struct{}
	cache Cache
	log   *slog.Logger
}

// NewStore loads the persisted set once and returns the store. A missing
// or unreadable cache entry yields an empty set plus a diagnostic.
func NewStore(cache Cache, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		ids:   make(map[string]struct{}),
		cache: cache,
		log:   logger,
	}
	ids, ok, err := cache.LoadSavedIDs()
	if err != nil {
		logger.Warn("saved set cache unreadable, starting empty", "error", err)
		return s
	}
	if ok {
		for _, id := range ids {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Add inserts an id. Adding an id twice is a no-op.
func (s *Store) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.persistLocked()
}

// Remove deletes an id if present.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	s.persistLocked()
}

// Toggle flips the saved state of an id and returns the new state.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		s.persistLocked()
		return false
	}
	s.ids[id] = struct{}{}
	s.persistLocked()
	return true
}

// Has reports whether an id is saved.
func (s *Store) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Clear empties the set.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
	s.persistLocked()
}

// IDs returns the saved ids in stable order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of saved ids.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Store) persistLocked() {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if err := s.cache.SaveSavedIDs(ids); err != nil {
		s.log.Warn("saved set persist failed", "error", err)
	}
}
