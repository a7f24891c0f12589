package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a book record in the catalog. Asset URLs are each
// independently optional and independently replaceable; ID never changes
// once assigned.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description"`
	Details     string    `json:"details,omitempty"`
	Grade       string    `json:"grade,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Year        int       `json:"year,omitempty"`
	ISBN        string    `json:"isbn,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	PDFURL      string    `json:"pdf_url,omitempty"`
	AudioURL    string    `json:"audio_url,omitempty"`
	TrailerID   string    `json:"trailer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Categories is the default category list offered by the admin form.
// Category remains an open string; records from other sources may carry
// values outside this list.
var Categories = []string{
	"Fiction",
	"Non-fiction",
	"History",
	"Biography",
	"Science Fiction",
	"Mystery",
	"Adventure",
	"Poetry",
	"Children",
	"Textbook",
	"Encyclopedia",
	"Psychology",
	"Philosophy",
	"Religion",
	"Art",
}
