package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/query"
)

type HTTPHandler struct {
	store *Store
}

func NewHTTPHandler(store *Store) *HTTPHandler {
	return &HTTPHandler{store: store}
}

// List handles GET /books. Search, category filter, and pagination are
// derived views over the store snapshot; the store itself is never
// touched by a read.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	perPage, _ := strconv.Atoi(params.Get("per_page"))
	if perPage <= 0 || perPage > 100 {
		perPage = query.DefaultPerPage
	}

	view := query.NewView(perPage)
	view.SetTerm(params.Get("q"))
	if cats, ok := params["category"]; ok {
		view.SetCategories(cats)
	}
	if page, err := strconv.Atoi(params.Get("page")); err == nil {
		view.SetPage(page)
	}

	books := h.store.Books()
	if sortField := params.Get("sort"); sortField != "" {
		books = query.SortBooks(books, sortField, params.Get("order") == "desc")
	}
	page := view.Resolve(books)

	httpx.JSONSuccess(w, page.Items, map[string]any{
		"page":        page.CurrentPage,
		"per_page":    perPage,
		"total":       page.TotalCount,
		"total_pages": page.TotalPages,
	})
}

// GetByID handles GET /books/{id}.
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	httpx.JSONSuccess(w, b, nil)
}

// Categories handles GET /categories: the known category list plus live
// per-category counts.
func (h *HTTPHandler) Categories(w http.ResponseWriter, r *http.Request) {
	counts := query.CountByCategory(h.store.Books())
	httpx.JSONSuccess(w, book.Categories, map[string]any{"counts": counts})
}
