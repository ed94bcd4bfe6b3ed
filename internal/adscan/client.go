package adscan

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Poster defines how the engine ships an archive to the scan service.
type Poster interface {
	Post(ctx context.Context, filename string, file io.Reader) (body io.ReadCloser, statusCode int, err error)
}

// limitedReadCloser reads from a LimitReader but closes the original body.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}

// HTTPClient implements Poster against a running scan service.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

const userAgent = "AdZipReport/1.0"

// fileField is the multipart field the scan service reads the archive from.
const fileField = "file"

// NewHTTPClient returns a Poster submitting archives to the scan
// service at baseURL. No request timeout is set: a scan runs the
// creative in a real browser and legitimately takes minutes, so the
// call lives exactly as long as the caller's context.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: &http.Transport{
				MaxConnsPerHost:     10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Post uploads the archive as a multipart form and returns the raw
// response body with its status code.
func (c *HTTPClient) Post(ctx context.Context, filename string, file io.Reader) (io.ReadCloser, int, error) {
	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	part, err := mw.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, 0, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, 0, err
	}
	if err := mw.Close(); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &form)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req) //nolint:bodyclose // body is returned to caller via limitedReadCloser
	if err != nil {
		return nil, 0, err
	}

	// Documents carry base64 thumbnails, so allow a generous body
	// before cutting off a runaway response.
	const maxResponseBody = 64 << 20
	limited := &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, maxResponseBody),
		Closer: resp.Body,
	}

	return limited, resp.StatusCode, nil
}
