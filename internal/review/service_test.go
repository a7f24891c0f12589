package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	entries []Review
}

func (f *fakeRepo) ListByBook(ctx context.Context, bookID string) ([]Review, error) {
	var out []Review
	for _, e := range f.entries {
		if e.BookID == bookID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) Insert(ctx context.Context, rev *Review) error {
	f.entries = append(f.entries, *rev)
	return nil
}

func TestServiceSubmit(t *testing.T) {
	t.Run("requires identity", func(t *testing.T) {
		svc := NewService(&fakeRepo{})
		err := svc.Submit(context.Background(), "", &Review{BookID: "b1", Rating: 4})
		assert.ErrorIs(t, err, ErrNotSignedIn)
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		svc := NewService(&fakeRepo{})
		err := svc.Submit(context.Background(), "u1", &Review{BookID: "b1", Rating: 6})
		assert.ErrorIs(t, err, ErrInvalidRating)
		err = svc.Submit(context.Background(), "u1", &Review{BookID: "b1", Rating: 0})
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("stores submitter", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo)
		err := svc.Submit(context.Background(), "u1", &Review{BookID: "b1", Rating: 4})
		require.NoError(t, err)
		require.Len(t, repo.entries, 1)
		assert.Equal(t, "u1", repo.entries[0].UserID)
	})
}

func TestServiceSummaryForBook(t *testing.T) {
	repo := &fakeRepo{entries: []Review{
		{BookID: "b1", Rating: 4},
		{BookID: "b1", Rating: 2},
		{BookID: "b2", Rating: 5},
	}}
	svc := NewService(repo)

	summary, err := svc.SummaryForBook(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, Summary{Count: 2, Mean: 3.0}, summary)

	summary, err = svc.SummaryForBook(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}
