// Package admin orchestrates the create/edit lifecycle of a book record:
// field validation, concurrent asset uploads, trailer resolution, record
// assembly, and submission to the catalog.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"bookcatalog/internal/asset"
	"bookcatalog/internal/book"
	"bookcatalog/internal/trailer"
)

// Catalog is the slice of the catalog store the workflow needs.
type Catalog interface {
	Get(id string) (book.Book, error)
	Create(ctx context.Context, b *book.Book) error
	Update(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id string) error
}

// Input is one submission of the book form. Files holds only the assets
// the user selected for replacement; absent slots keep their previous
// URLs.
type Input struct {
	ID          string
	Title       string `validate:"required"`
	Author      string `validate:"required"`
	Category    string
	Description string `validate:"required"`
	Details     string
	Grade       string
	Subject     string
	Year        int    `validate:"omitempty,min=1000,max=2100"`
	ISBN        string `validate:"omitempty,isbn"`
	TrailerURL  string
	Files       map[asset.Slot]asset.File
}

// PartialFailure reports that the record was saved but one or more asset
// uploads failed. The failed slots kept their previous URLs.
type PartialFailure struct {
	Failed map[asset.Slot]string
}

func (e *PartialFailure) Error() string {
	slots := make([]string, 0, len(e.Failed))
	for slot := range e.Failed {
		slots = append(slots, string(slot))
	}
	sort.Strings(slots)
	return fmt.Sprintf("record saved, but uploads failed: %s", strings.Join(slots, ", "))
}

// Workflow composes the uploader and the catalog store for admin
// mutations.
type Workflow struct {
	uploader asset.Uploader
	catalog  Catalog
	log      *slog.Logger
}

func NewWorkflow(uploader asset.Uploader, catalog Catalog, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{uploader: uploader, catalog: catalog, log: logger}
}

// Save runs the full create/edit lifecycle. Validation failures surface
// as *ValidationError before any network activity. Uploads run
// concurrently and fail independently; a slot that fails keeps its
// previous URL. When the record itself is saved but some uploads failed,
// Save returns the saved record together with a *PartialFailure so the
// caller can report partial success without discarding form state.
func (w *Workflow) Save(ctx context.Context, in Input) (book.Book, error) {
	if err := ValidateInput(in); err != nil {
		return book.Book{}, err
	}

	var prev book.Book
	if in.ID != "" {
		var err error
		prev, err = w.catalog.Get(in.ID)
		if err != nil {
			return book.Book{}, err
		}
	}

	results := asset.UploadAll(ctx, w.uploader, in.Files)

	b := assemble(prev, in, results)

	var err error
	if in.ID == "" {
		err = w.catalog.Create(ctx, &b)
	} else {
		err = w.catalog.Update(ctx, &b)
	}
	if err != nil {
		return book.Book{}, err
	}

	failed := make(map[asset.Slot]string)
	for slot, res := range results {
		if res.Err != nil {
			w.log.Warn("asset upload failed", "slot", string(slot), "error", res.Err)
			failed[slot] = res.Err.Error()
		}
	}
	if len(failed) > 0 {
		return b, &PartialFailure{Failed: failed}
	}
	return b, nil
}

// Delete removes a record from the catalog.
func (w *Workflow) Delete(ctx context.Context, id string) error {
	return w.catalog.Delete(ctx, id)
}

// assemble builds the complete record: form fields from the input, asset
// URLs from successful uploads, and previous URLs wherever no new file
// was selected or its upload failed. A failed upload never nulls out a
// previously working asset.
func assemble(prev book.Book, in Input, results map[asset.Slot]asset.Result) book.Book {
	b := book.Book{
		ID:          in.ID,
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		Description: in.Description,
		Details:     in.Details,
		Grade:       in.Grade,
		Subject:     in.Subject,
		Year:        in.Year,
		ISBN:        in.ISBN,
		CoverURL:    pickURL(prev.CoverURL, results, asset.SlotCover),
		PDFURL:      pickURL(prev.PDFURL, results, asset.SlotPDF),
		AudioURL:    pickURL(prev.AudioURL, results, asset.SlotAudio),
		TrailerID:   trailer.ExtractID(in.TrailerURL),
		CreatedAt:   prev.CreatedAt,
	}
	return b
}

func pickURL(previous string, results map[asset.Slot]asset.Result, slot asset.Slot) string {
	res, ok := results[slot]
	if !ok || res.Err != nil {
		return previous
	}
	return res.URL
}
