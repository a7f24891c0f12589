package query

import "bookcatalog/internal/book"

// View holds the browsing intent (search term, selected categories,
// current page) and resolves it against a catalog snapshot. Changing the
// term or the category selection resets the page to 1, so a narrower
// result set can never leave the viewer stranded on an out-of-range page.
type View struct {
	term       string
	categories []string
	page       int
	perPage    int
}

// NewView returns a view on page 1 with the given page size.
func NewView(perPage int) *View {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return &View{page: 1, perPage: perPage}
}

func (v *View) Term() string { return v.term }

func (v *View) Page() int { return v.page }

// SetTerm updates the search term. A changed term resets the page.
func (v *View) SetTerm(term string) {
	if term == v.term {
		return
	}
	v.term = term
	v.page = 1
}

// SetCategories replaces the category selection. A changed selection
// resets the page.
func (v *View) SetCategories(categories []string) {
	if equalStrings(categories, v.categories) {
		return
	}
	v.categories = append([]string(nil), categories...)
	v.page = 1
}

// SetPage moves to the given page. Values below 1 are clamped to 1.
func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

// Resolve applies search, then category filter, then pagination to the
// snapshot. The composition order matters: pagination must operate on the
// already-narrowed result set.
func (v *View) Resolve(books []book.Book) Page {
	narrowed := Search(books, v.term)
	narrowed = FilterByCategories(narrowed, v.categories)
	return Paginate(narrowed, v.page, v.perPage)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
