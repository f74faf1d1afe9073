package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// errorSnippetLen bounds how much of a malformed response body is surfaced
// to the user.
const errorSnippetLen = 300

// ProgressFunc is called with (bytesRead, totalBytes) during upload.
type ProgressFunc func(bytesRead, totalBytes int64)

// progressReader wraps an io.Reader and reports progress.
type progressReader struct {
	reader   io.Reader
	total    int64
	read     int64
	callback ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.read += int64(n)
	if pr.callback != nil {
		pr.callback(pr.read, pr.total)
	}
	return n, err
}

// ServiceError is a failure the transcription service reported itself in an
// otherwise well-formed response. It carries the service's own message.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Client talks to the transcription endpoint. A single Client may serve a
// whole batch of uploads; the rate limiter paces requests across
// goroutines.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
}

// New builds a client for the given endpoint. ratePerMin <= 0 disables
// pacing.
func New(endpoint string, timeout time.Duration, ratePerMin int) *Client {
	var limiter *rate.Limiter
	if ratePerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(ratePerMin)/60.0), 1)
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		limiter:  limiter,
	}
}

// mimeFromExt returns the MIME type for common audio extensions.
func mimeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".mp3":
		return "audio/mp3"
	case ".m4a":
		return "audio/m4a"
	case ".wav":
		return "audio/wav"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	case ".aac":
		return "audio/aac"
	default:
		return "application/octet-stream"
	}
}

// Transcribe uploads an audio file as multipart form data and returns the
// decoded response payload once the service reports success. The payload
// keeps its duck-typed shape; normalization happens downstream. Once
// submitted, the request runs to completion or failure; no timeout beyond
// the transport one is enforced here.
func (c *Client) Transcribe(ctx context.Context, filePath string, progress ProgressFunc) (map[string]any, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	fileSize := stat.Size()

	// Stream the multipart body through a pipe so large files never sit in
	// memory.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		defer pw.Close()
		defer mw.Close()

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(filePath)))
		h.Set("Content-Type", mimeFromExt(filepath.Ext(filePath)))
		part, err := mw.CreatePart(h)
		if err != nil {
			errCh <- err
			return
		}

		if _, err := io.Copy(part, f); err != nil {
			errCh <- err
			return
		}

		errCh <- nil
	}()

	// Estimate total size: file size + ~1KB form overhead.
	body := &progressReader{
		reader:   pr,
		total:    fileSize + 1024,
		callback: progress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if writeErr := <-errCh; writeErr != nil {
		return nil, fmt.Errorf("multipart write error: %w", writeErr)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// The service reports failures as JSON with ok:false, including on
	// non-2xx statuses, so the body is parsed before the status matters.
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API returned status %d with non-JSON body: %s", resp.StatusCode, truncate(raw))
		}
		return nil, fmt.Errorf("API response is not JSON: %s", truncate(raw))
	}

	if ok, _ := payload["ok"].(bool); !ok {
		msg := "transcription failed"
		if s, ok := payload["error"].(string); ok && s != "" {
			msg = s
		}
		return nil, &ServiceError{Message: msg}
	}

	return payload, nil
}

func truncate(raw []byte) string {
	s := string(raw)
	if len(s) > errorSnippetLen {
		s = s[:errorSnippetLen]
	}
	return s
}
