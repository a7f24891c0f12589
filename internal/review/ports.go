package review

import (
	"context"
)

// Repository defines the contract for review storage.
type Repository interface {
	ListByBook(ctx context.Context, bookID string) ([]Review, error)
	Insert(ctx context.Context, rev *Review) error
}
