// Package catalog owns the authoritative in-memory book collection for
// the session, mediates mutations against the remote record store, and
// mirrors the collection to a local durable cache for fast reload.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookcatalog/internal/book"
)

// State is the lifecycle of the store.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateMutating
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateMutating:
		return "mutating"
	default:
		return "uninitialized"
	}
}

// Store holds the book collection. Readers always see a complete
// collection: mutations build a fresh slice and swap it in whole.
// Mutations are serialized by a store-wide lock, which also resolves the
// concurrent same-id mutation race.
type Store struct {
	mu    sync.RWMutex // guards books, state, dirty
	books []book.Book
	state State
	dirty map[string]struct{} // ids whose remote write failed

	mutate sync.Mutex // serializes Create/Update/Delete
	bg     sync.WaitGroup

	repo  Repository
	cache Cache
	log   *slog.Logger
}

// NewStore creates an uninitialized store.
func NewStore(repo Repository, cache Cache, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state: StateUninitialized,
		dirty: make(map[string]struct{}),
		repo:  repo,
		cache: cache,
		log:   logger,
	}
}

// Initialize brings the store to ready. When the local mirror holds a
// last-known-good collection the store becomes ready immediately and the
// canonical list is fetched in the background; otherwise the remote fetch
// happens synchronously. The remote result fully replaces both memory and
// mirror: a refresh, never a merge, so deleted records cannot resurrect.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return fmt.Errorf("initialize called in state %s", s.state)
	}
	s.state = StateLoading
	s.mu.Unlock()

	cached, ok, err := s.cache.LoadBooks()
	if err != nil {
		s.log.Warn("catalog mirror unreadable, falling back to remote", "error", err)
		ok = false
	}

	if ok {
		s.mu.Lock()
		s.books = cached
		s.state = StateReady
		s.mu.Unlock()

		s.bg.Add(1)
		go func() {
			defer s.bg.Done()
			if err := s.Refresh(context.WithoutCancel(ctx)); err != nil {
				s.log.Warn("background catalog refresh failed, serving cached data", "error", err)
			}
		}()
		return nil
	}

	if err := s.refresh(ctx); err != nil {
		s.mu.Lock()
		s.books = nil
		s.state = StateReady
		s.mu.Unlock()
		return fmt.Errorf("initial catalog fetch: %w", err)
	}
	return nil
}

// Refresh fetches the canonical collection from the remote store and
// replaces memory and mirror with it.
func (s *Store) Refresh(ctx context.Context) error {
	return s.refresh(ctx)
}

func (s *Store) refresh(ctx context.Context) error {
	remote, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if n := len(s.dirty); n > 0 {
		s.log.Warn("discarding unsynced local records on refresh", "count", n)
		s.dirty = make(map[string]struct{})
	}
	s.books = remote
	s.state = StateReady
	s.mu.Unlock()

	s.writeMirror(remote)
	return nil
}

// Close waits for background work to finish.
func (s *Store) Close() {
	s.bg.Wait()
}

// State reports the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Books returns a snapshot of the collection. Callers must not mutate the
// underlying records; the returned slice itself is a fresh copy.
func (s *Store) Books() []book.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]book.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return book.Book{}, book.ErrNotFound
}

// Unsynced lists ids whose latest local mutation has not reached the
// remote store.
func (s *Store) Unsynced() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.dirty))
	for id := range s.dirty {
		out = append(out, id)
	}
	return out
}

// Create assigns an id and timestamps, applies the record locally and to
// the mirror, then writes it to the remote store. A remote failure leaves
// the local state in place, marks the record unsynced, and is returned.
func (s *Store) Create(ctx context.Context, b *book.Book) error {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	s.mu.Lock()
	s.state = StateMutating
	next := make([]book.Book, 0, len(s.books)+1)
	next = append(next, *b)
	next = append(next, s.books...)
	s.books = next
	s.mu.Unlock()

	s.writeMirror(next)

	if err := s.repo.Insert(ctx, b); err != nil {
		s.finishMutation(b.ID, false)
		return fmt.Errorf("remote create: %w", err)
	}
	s.finishMutation(b.ID, true)
	return nil
}

// Update replaces the record with the same id, preserving id and
// creation time and refreshing the update time.
func (s *Store) Update(ctx context.Context, b *book.Book) error {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	s.mu.Lock()
	idx := -1
	for i := range s.books {
		if s.books[i].ID == b.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return book.ErrNotFound
	}
	s.state = StateMutating
	b.CreatedAt = s.books[idx].CreatedAt
	b.UpdatedAt = time.Now().UTC()

	next := make([]book.Book, len(s.books))
	copy(next, s.books)
	next[idx] = *b
	s.books = next
	s.mu.Unlock()

	s.writeMirror(next)

	if err := s.repo.Update(ctx, b); err != nil {
		s.finishMutation(b.ID, false)
		return fmt.Errorf("remote update: %w", err)
	}
	s.finishMutation(b.ID, true)
	return nil
}

// Delete removes the record with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	s.mu.Lock()
	next := make([]book.Book, 0, len(s.books))
	found := false
	for _, b := range s.books {
		if b.ID == id {
			found = true
			continue
		}
		next = append(next, b)
	}
	if !found {
		s.mu.Unlock()
		return book.ErrNotFound
	}
	s.state = StateMutating
	s.books = next
	s.mu.Unlock()

	s.writeMirror(next)

	if err := s.repo.Delete(ctx, id); err != nil {
		s.finishMutation(id, false)
		return fmt.Errorf("remote delete: %w", err)
	}
	s.finishMutation(id, true)
	return nil
}

func (s *Store) finishMutation(id string, synced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if synced {
		delete(s.dirty, id)
	} else {
		s.dirty[id] = struct{}{}
		s.log.Warn("remote write failed, local record unsynced", "id", id)
	}
	s.state = StateReady
}

func (s *Store) writeMirror(books []book.Book) {
	if err := s.cache.SaveBooks(books); err != nil {
		s.log.Warn("catalog mirror write failed", "error", err)
	}
}
