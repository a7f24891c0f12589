package asset

import (
	"context"
	"sync"
)

// Slot identifies which asset of a book record a file replaces.
type Slot string

const (
	SlotCover Slot = "cover"
	SlotPDF   Slot = "pdf"
	SlotAudio Slot = "audio"
)

// FolderFor is the destination folder per slot on the media host.
func FolderFor(slot Slot) string {
	switch slot {
	case SlotCover:
		return "covers"
	case SlotPDF:
		return "pdfs"
	case SlotAudio:
		return "audio"
	default:
		return "misc"
	}
}

// Uploader sends one file and returns a durable URL.
type Uploader interface {
	Upload(ctx context.Context, f File, folder string) (string, error)
}

// Result is the transient outcome of one upload: a URL or a failure.
type Result struct {
	URL string
	Err error
}

// UploadAll runs every staged upload concurrently and waits for all of
// them to settle. Each slot succeeds or fails independently; one failure
// never blocks the others.
func UploadAll(ctx context.Context, up Uploader, files map[Slot]File) map[Slot]Result {
	results := make(map[Slot]Result, len(files))
	if len(files) == 0 {
		return results
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for slot, f := range files {
		wg.Add(1)
		go func(slot Slot, f File) {
			defer wg.Done()
			url, err := up.Upload(ctx, f, FolderFor(slot))
			mu.Lock()
			results[slot] = Result{URL: url, Err: err}
			mu.Unlock()
		}(slot, f)
	}
	wg.Wait()
	return results
}
