package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxImageSize caps a single downloaded product image.
const maxImageSize = 20 << 20

// HTTPMediaFetcher downloads product images from their source URLs.
type HTTPMediaFetcher struct {
	client *http.Client
}

// NewHTTPMediaFetcher creates a fetcher with the given timeout.
func NewHTTPMediaFetcher(timeout time.Duration) *HTTPMediaFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPMediaFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the resource and returns its body and content type. The
// caller owns closing the body.
func (f *HTTPMediaFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, "", fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}
	return &limitedBody{
		Reader: io.LimitReader(resp.Body, maxImageSize),
		closer: resp.Body,
	}, resp.Header.Get("Content-Type"), nil
}

type limitedBody struct {
	io.Reader
	closer io.Closer
}

func (b *limitedBody) Close() error { return b.closer.Close() }
