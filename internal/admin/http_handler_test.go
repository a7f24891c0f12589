package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/book"
)

type formFile struct {
	field, name, contentType string
	data                     []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		hdr := make(map[string][]string)
		hdr["Content-Disposition"] = []string{`form-data; name="` + f.field + `"; filename="` + f.name + `"`}
		hdr["Content-Type"] = []string{f.contentType}
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"title":       "Algebra Foundations",
		"author":      "Nora Quinn",
		"category":    "Mathematics",
		"description": "An introduction to algebraic thinking.",
		"year":        "2021",
	}
}

func TestHandlerCreate(t *testing.T) {
	catalog := newFakeCatalog()
	h := NewHTTPHandler(NewWorkflow(&slotUploader{}, catalog, nil))

	body, contentType := multipartBody(t, validFields(),
		formFile{field: "cover", name: "cover.jpg", contentType: "image/jpeg", data: []byte("img")})
	req := httptest.NewRequest(http.MethodPost, "/admin/books", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool      `json:"success"`
		Data    book.Book `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Algebra Foundations", resp.Data.Title)
	assert.Equal(t, "https://media.example/covers/cover.jpg", resp.Data.CoverURL)
	require.Len(t, catalog.created, 1)
}

func TestHandlerCreateValidationFailed(t *testing.T) {
	h := NewHTTPHandler(NewWorkflow(&slotUploader{}, newFakeCatalog(), nil))

	fields := validFields()
	delete(fields, "title")
	body, contentType := multipartBody(t, fields)
	req := httptest.NewRequest(http.MethodPost, "/admin/books", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Details []struct {
				Field string `json:"field"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "title", resp.Error.Details[0].Field)
}

func TestHandlerUpdatePartialFailure(t *testing.T) {
	prev := book.Book{
		ID:          "b1",
		Title:       "Old Title",
		Author:      "Old Author",
		Description: "Old description.",
		PDFURL:      "https://media.example/pdfs/old.pdf",
	}
	catalog := newFakeCatalog(prev)
	h := NewHTTPHandler(NewWorkflow(&slotUploader{failFolders: map[string]bool{"pdfs": true}}, catalog, nil))

	body, contentType := multipartBody(t, validFields(),
		formFile{field: "pdf", name: "new.pdf", contentType: "application/pdf", data: []byte("pdf")})
	req := httptest.NewRequest(http.MethodPut, "/admin/books/b1", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", "b1")
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool      `json:"success"`
		Data    book.Book `json:"data"`
		Meta    struct {
			UploadErrors map[string]string `json:"upload_errors"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "https://media.example/pdfs/old.pdf", resp.Data.PDFURL)
	assert.Contains(t, resp.Meta.UploadErrors, "pdf")
}

func TestHandlerUpdateNotFound(t *testing.T) {
	h := NewHTTPHandler(NewWorkflow(&slotUploader{}, newFakeCatalog(), nil))

	body, contentType := multipartBody(t, validFields())
	req := httptest.NewRequest(http.MethodPut, "/admin/books/missing", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerDelete(t *testing.T) {
	catalog := newFakeCatalog(book.Book{ID: "b1"})
	h := NewHTTPHandler(NewWorkflow(&slotUploader{}, catalog, nil))

	req := httptest.NewRequest(http.MethodDelete, "/admin/books/b1", nil)
	req.SetPathValue("id", "b1")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/admin/books/b1", nil)
	req.SetPathValue("id", "b1")
	rec = httptest.NewRecorder()

	h.Delete(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
