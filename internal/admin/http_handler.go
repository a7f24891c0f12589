package admin

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"bookcatalog/internal/asset"
	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
)

// maxFormMemory bounds the in-memory portion of a multipart parse.
const maxFormMemory = 32 << 20

type HTTPHandler struct {
	wf *Workflow
}

func NewHTTPHandler(wf *Workflow) *HTTPHandler {
	return &HTTPHandler{wf: wf}
}

// Create handles POST /admin/books (multipart form).
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := parseInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_FORM", err.Error(), nil)
		return
	}
	h.save(w, r, in, http.StatusCreated)
}

// Update handles PUT /admin/books/{id} (multipart form).
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := parseInput(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_FORM", err.Error(), nil)
		return
	}
	in.ID = r.PathValue("id")
	h.save(w, r, in, http.StatusOK)
}

// Delete handles DELETE /admin/books/{id}.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.wf.Delete(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, book.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case err != nil:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	default:
		httpx.JSONSuccessNoContent(w)
	}
}

func (h *HTTPHandler) save(w http.ResponseWriter, r *http.Request, in Input, okStatus int) {
	saved, err := h.wf.Save(r.Context(), in)

	var validationErr *ValidationError
	var partial *PartialFailure
	switch {
	case errors.As(err, &validationErr):
		details := make([]httpx.ErrorDetail, 0, len(validationErr.Fields))
		for field, msg := range validationErr.Fields {
			details = append(details, httpx.ErrorDetail{Field: field, Message: msg})
		}
		httpx.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "Validation failed", details)
	case errors.As(err, &partial):
		// the record is saved; report which uploads failed so the client
		// can offer a retry without re-entering the form
		httpx.JSONSuccessStatus(w, okStatus, saved, map[string]any{"upload_errors": partial.Failed})
	case errors.Is(err, book.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case err != nil:
		httpx.JSONError(w, http.StatusBadGateway, "REMOTE_WRITE_FAILED", err.Error(), nil)
	default:
		if okStatus == http.StatusCreated {
			httpx.JSONSuccessCreated(w, saved)
		} else {
			httpx.JSONSuccess(w, saved, nil)
		}
	}
}

func parseInput(r *http.Request) (Input, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return Input{}, err
	}

	year, _ := strconv.Atoi(r.FormValue("year"))
	in := Input{
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Details:     r.FormValue("details"),
		Grade:       r.FormValue("grade"),
		Subject:     r.FormValue("subject"),
		Year:        year,
		ISBN:        r.FormValue("isbn"),
		TrailerURL:  r.FormValue("trailer_url"),
		Files:       make(map[asset.Slot]asset.File),
	}

	for field, slot := range map[string]asset.Slot{
		"cover": asset.SlotCover,
		"pdf":   asset.SlotPDF,
		"audio": asset.SlotAudio,
	} {
		f, err := readFile(r, field)
		if err != nil {
			return Input{}, err
		}
		if f != nil {
			in.Files[slot] = *f
		}
	}
	return in, nil
}

func readFile(r *http.Request, field string) (*asset.File, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &asset.File{
		Name:        header.Filename,
		ContentType: contentTypeOf(header),
		Data:        data,
	}, nil
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
