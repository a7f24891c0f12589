package catalog

import (
	"context"

	"bookcatalog/internal/book"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=catalog

// Repository is the remote record store. List returns the canonical
// collection ordered by creation time, newest first.
type Repository interface {
	List(ctx context.Context) ([]book.Book, error)
	Insert(ctx context.Context, b *book.Book) error
	Update(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id string) error
}

// Cache is the local durable mirror of the collection.
type Cache interface {
	SaveBooks(books []book.Book) error
	LoadBooks() ([]book.Book, bool, error)
}
