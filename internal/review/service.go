package review

import (
	"context"
)

// Service provides review-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new review service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit records a review for a book. Submission requires an identity;
// the service only distinguishes present from absent.
func (s *Service) Submit(ctx context.Context, userID string, rev *Review) error {
	if userID == "" {
		return ErrNotSignedIn
	}
	if rev.Rating < 1 || rev.Rating > 5 {
		return ErrInvalidRating
	}
	rev.UserID = userID
	return s.repo.Insert(ctx, rev)
}

// ListByBook returns the review entries for a book.
func (s *Service) ListByBook(ctx context.Context, bookID string) ([]Review, error) {
	return s.repo.ListByBook(ctx, bookID)
}

// SummaryForBook recomputes the rating aggregate from the live review list.
func (s *Service) SummaryForBook(ctx context.Context, bookID string) (Summary, error) {
	entries, err := s.repo.ListByBook(ctx, bookID)
	if err != nil {
		return Summary{}, err
	}
	return Aggregate(entries), nil
}
