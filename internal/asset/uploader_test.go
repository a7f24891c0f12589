package asset

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	inFlight int32
	maxSeen  int32
	fail     map[string]bool
}

func (f *fakeUploader) Upload(ctx context.Context, file File, folder string) (string, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	for {
		max := atomic.LoadInt32(&f.maxSeen)
		if n <= max || atomic.CompareAndSwapInt32(&f.maxSeen, max, n) {
			break
		}
	}
	defer atomic.AddInt32(&f.inFlight, -1)

	if f.fail[folder] {
		return "", &UploadError{Reason: "host rejected " + folder}
	}
	return "https://cdn.example/" + folder + "/" + file.Name, nil
}

func TestUploadAll(t *testing.T) {
	up := &fakeUploader{}
	files := map[Slot]File{
		SlotCover: {Name: "c.png", ContentType: "image/png"},
		SlotPDF:   {Name: "b.pdf", ContentType: "application/pdf"},
		SlotAudio: {Name: "a.mp3", ContentType: "audio/mpeg"},
	}

	results := UploadAll(context.Background(), up, files)

	require.Len(t, results, 3)
	assert.NoError(t, results[SlotCover].Err)
	assert.Equal(t, "https://cdn.example/covers/c.png", results[SlotCover].URL)
	assert.Equal(t, "https://cdn.example/pdfs/b.pdf", results[SlotPDF].URL)
	assert.Equal(t, "https://cdn.example/audio/a.mp3", results[SlotAudio].URL)
}

func TestUploadAllPartialFailure(t *testing.T) {
	up := &fakeUploader{fail: map[string]bool{"pdfs": true}}
	files := map[Slot]File{
		SlotCover: {Name: "c.png", ContentType: "image/png"},
		SlotPDF:   {Name: "b.pdf", ContentType: "application/pdf"},
		SlotAudio: {Name: "a.mp3", ContentType: "audio/mpeg"},
	}

	results := UploadAll(context.Background(), up, files)

	require.Len(t, results, 3)
	assert.NoError(t, results[SlotCover].Err)
	assert.NoError(t, results[SlotAudio].Err)

	var uploadErr *UploadError
	require.Error(t, results[SlotPDF].Err)
	assert.True(t, errors.As(results[SlotPDF].Err, &uploadErr))
	assert.Empty(t, results[SlotPDF].URL)
}

func TestUploadAllEmpty(t *testing.T) {
	results := UploadAll(context.Background(), &fakeUploader{}, nil)
	assert.Empty(t, results)
}

func TestFolderFor(t *testing.T) {
	assert.Equal(t, "covers", FolderFor(SlotCover))
	assert.Equal(t, "pdfs", FolderFor(SlotPDF))
	assert.Equal(t, "audio", FolderFor(SlotAudio))
	assert.Equal(t, "misc", FolderFor(Slot("other")))
}
