package review

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// ListByBook handles GET /books/{id}/reviews. The response carries the
// entries plus the aggregate recomputed from them.
func (h *HTTPHandler) ListByBook(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("id")
	entries, err := h.svc.ListByBook(r.Context(), bookID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	summary := Aggregate(entries)
	httpx.JSONSuccess(w, entries, map[string]any{
		"count": summary.Count,
		"mean":  summary.Mean,
	})
}

type submitRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Submit handles POST /books/{id}/reviews. Requires a signed-in user.
func (h *HTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body", nil)
		return
	}

	rev := &Review{
		BookID:  r.PathValue("id"),
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	err := h.svc.Submit(r.Context(), httpx.UserIDFrom(r), rev)
	switch {
	case errors.Is(err, ErrNotSignedIn):
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
	case errors.Is(err, ErrInvalidRating):
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_RATING", err.Error(), nil)
	case err != nil:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	default:
		httpx.JSONSuccessCreated(w, rev)
	}
}
