package savedset

import (
	"net/http"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	store *Store
}

func NewHTTPHandler(store *Store) *HTTPHandler {
	return &HTTPHandler{store: store}
}

// List handles GET /saved.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	ids := h.store.IDs()
	httpx.JSONSuccess(w, ids, map[string]any{"count": len(ids)})
}

// Toggle handles POST /saved/{id}. The response reports whether the id
// is saved after the call.
func (h *HTTPHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Missing book id", nil)
		return
	}

	saved := h.store.Toggle(id)
	httpx.JSONSuccess(w, map[string]any{"id": id, "saved": saved}, nil)
}

// Remove handles DELETE /saved/{id}.
func (h *HTTPHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Missing book id", nil)
		return
	}

	h.store.Remove(id)
	httpx.JSONSuccessNoContent(w)
}

// Clear handles DELETE /saved.
func (h *HTTPHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	httpx.JSONSuccessNoContent(w)
}
