package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewResolveOrder(t *testing.T) {
	books := sampleBooks()
	v := NewView(1)
	v.SetTerm("go")
	v.SetCategories([]string{"Textbook"})

	page := v.Resolve(books)
	assert.Equal(t, 2, page.TotalCount) // narrowed before pagination
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.TotalPages)
}

func TestViewTermChangeResetsPage(t *testing.T) {
	books := sampleBooks()
	v := NewView(2)
	v.SetPage(3)
	assert.Equal(t, 3, v.Page())

	v.SetTerm("dune")
	assert.Equal(t, 1, v.Page())

	page := v.Resolve(books)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Items, 1)
}

func TestViewSameTermKeepsPage(t *testing.T) {
	v := NewView(2)
	v.SetTerm("dune")
	v.SetPage(2)
	v.SetTerm("dune")
	assert.Equal(t, 2, v.Page())
}

func TestViewCategoryChangeResetsPage(t *testing.T) {
	v := NewView(2)
	v.SetPage(3)
	v.SetCategories([]string{"Textbook"})
	assert.Equal(t, 1, v.Page())

	// same selection again does not reset
	v.SetPage(2)
	v.SetCategories([]string{"Textbook"})
	assert.Equal(t, 2, v.Page())
}

func TestViewSetPageClamps(t *testing.T) {
	v := NewView(2)
	v.SetPage(0)
	assert.Equal(t, 1, v.Page())
	v.SetPage(-5)
	assert.Equal(t, 1, v.Page())
}
