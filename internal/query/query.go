// Package query derives read-only views (search, category filter,
// pagination, sort) over a catalog snapshot without mutating it.
package query

import (
	"sort"
	"strings"

	"bookcatalog/internal/book"
)

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 20

// Page is one page of a derived view.
type Page struct {
	Items       []book.Book `json:"items"`
	TotalPages  int         `json:"total_pages"`
	CurrentPage int         `json:"current_page"`
	TotalCount  int         `json:"total_count"`
}

// Search returns the books whose title, author, or category contains the
// term, case-insensitively. A blank term returns the input unchanged.
func Search(books []book.Book, term string) []book.Book {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return books
	}
	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), term) ||
			strings.Contains(strings.ToLower(b.Author), term) ||
			strings.Contains(strings.ToLower(b.Category), term) {
			out = append(out, b)
		}
	}
	return out
}

// FilterByCategories keeps books whose category is in the selected set.
// An empty selection means "no filter" and returns the input unchanged.
func FilterByCategories(books []book.Book, selected []string) []book.Book {
	if len(selected) == 0 {
		return books
	}
	want := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		want[c] = struct{}{}
	}
	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if _, ok := want[b.Category]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Paginate slices books into one page. TotalPages is at least 1 even for
// an empty collection; a page beyond the end yields empty items without
// error. perPage must be positive; page clamping is the caller's concern.
func Paginate(books []book.Book, page, perPage int) Page {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	total := len(books)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	var items []book.Book
	if start >= 0 && start < total {
		if end > total {
			end = total
		}
		items = books[start:end]
	} else {
		items = []book.Book{}
	}

	return Page{
		Items:       items,
		TotalPages:  totalPages,
		CurrentPage: page,
		TotalCount:  total,
	}
}

// SortBooks returns a sorted copy ordered by the given field. Supported
// fields: title, author, year, created_at; anything else falls back to title.
func SortBooks(books []book.Book, field string, desc bool) []book.Book {
	out := make([]book.Book, len(books))
	copy(out, books)

	less := func(a, b book.Book) bool {
		switch field {
		case "author":
			return strings.ToLower(a.Author) < strings.ToLower(b.Author)
		case "year":
			return a.Year < b.Year
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// CountByCategory tallies books per category.
func CountByCategory(books []book.Book) map[string]int {
	counts := make(map[string]int)
	for _, b := range books {
		counts[b.Category]++
	}
	return counts
}
