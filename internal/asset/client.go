// Package asset uploads binary files to the external media host and
// returns durable public URLs.
package asset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// File is one binary asset staged for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadError is the normalized failure for any upload: network failure,
// host rejection, malformed payload. Reason is human-readable.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string {
	return "upload failed: " + e.Reason
}

// Client talks to the media host. No state is retained between calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	preset     string
	limiter    *rate.Limiter
	maxRetries int
}

// NewClient creates a media host client. preset is the host-side upload
// preset name sent with every request. Non-positive rps is clamped to 1.
func NewClient(baseURL, preset string, rps, maxRetries int) *Client {
	if rps < 1 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		preset:     preset,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends one file to the host under the given destination folder
// and returns the durable URL. All failures come back as *UploadError.
func (c *Client) Upload(ctx context.Context, f File, folder string) (string, error) {
	kind := KindFor(f.ContentType)
	url := fmt.Sprintf("%s/%s/upload", c.baseURL, kind.Segment())

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", &UploadError{Reason: ctx.Err().Error()}
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return "", &UploadError{Reason: err.Error()}
		}

		target, retryable, err := c.attempt(ctx, url, f, folder)
		if err == nil {
			return target, nil
		}
		if !retryable {
			return "", &UploadError{Reason: err.Error()}
		}
		lastErr = err
	}
	return "", &UploadError{Reason: fmt.Sprintf("after %d retries: %v", c.maxRetries, lastErr)}
}

func (c *Client) attempt(ctx context.Context, url string, f File, folder string) (string, bool, error) {
	body, contentType, err := c.buildForm(f, folder)
	if err != nil {
		return "", false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, err
	}

	if resp.StatusCode != http.StatusOK {
		var parsed uploadResponse
		reason := fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error.Message != "" {
			reason = parsed.Error.Message
		}
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retryable, fmt.Errorf("%s", reason)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, fmt.Errorf("malformed host response: %v", err)
	}
	if parsed.SecureURL == "" {
		return "", false, fmt.Errorf("host response missing secure_url")
	}
	return parsed.SecureURL, false, nil
}

func (c *Client) buildForm(f File, folder string) (*bytes.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
	header.Set("Content-Type", f.ContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("upload_preset", c.preset); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("folder", folder); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return bytes.NewReader(buf.Bytes()), w.FormDataContentType(), nil
}
