// Package cache persists a best-effort local mirror of the catalog and
// the saved-id set in BadgerDB, so the app can come up with last-known-good
// data before the remote store answers.
package cache

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"bookcatalog/internal/book"
)

// Keys for BadgerDB storage. Each value is overwritten wholesale on every
// change.
const (
	booksKey    = "catalog:books"
	savedIDsKey = "savedset:ids"
)

// Open opens (or creates) the local mirror database at dir.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	return badger.Open(opts)
}

// Store is a BadgerDB-backed key/value mirror.
type Store struct {
	db *badger.DB
}

// NewStore creates a new BadgerDB-backed store.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// SaveBooks replaces the mirrored book collection.
func (s *Store) SaveBooks(books []book.Book) error {
	return s.setJSON(booksKey, books)
}

// LoadBooks reads the mirrored book collection. The second return value
// is false when no mirror has been written yet.
func (s *Store) LoadBooks() ([]book.Book, bool, error) {
	var books []book.Book
	ok, err := s.getJSON(booksKey, &books)
	return books, ok, err
}

// SaveSavedIDs replaces the persisted saved-id set.
func (s *Store) SaveSavedIDs(ids []string) error {
	return s.setJSON(savedIDsKey, ids)
}

// LoadSavedIDs reads the persisted saved-id set.
func (s *Store) LoadSavedIDs() ([]string, bool, error) {
	var ids []string
	ok, err := s.getJSON(savedIDsKey, &ids)
	return ids, ok, err
}

func (s *Store) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *Store) getJSON(key string, v any) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	return true, nil
}
