package review

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrInvalidRating is returned when a rating is outside [1,5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrNotSignedIn is returned when review submission is attempted
	// without an identity.
	ErrNotSignedIn = errors.New("sign in required to submit a review")
)

// Review is a single per-user rating entry for a book.
type Review struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	UserID    string    `json:"user_id,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is the derived aggregate for a book's reviews. It is always
// recomputed from the live review list, never stored.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// Aggregate reduces a list of reviews to a count and mean rating.
// Mean is rounded to one decimal and is 0 for an empty list.
func Aggregate(entries []Review) Summary {
	if len(entries) == 0 {
		return Summary{}
	}
	sum := 0
	for _, e := range entries {
		sum += e.Rating
	}
	mean := math.Round(float64(sum)/float64(len(entries))*10) / 10
	return Summary{Count: len(entries), Mean: mean}
}
