package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxRemoteBytes caps the size of a downloaded spreadsheet. A larger body
// fails the fetch rather than being truncated.
var maxRemoteBytes int64 = 64 << 20

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// fetch downloads url once. There is no retry: a failed download is a failed load.
func fetch(ctx context.Context, c HTTPClient, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("non-2xx: %d body=%s", resp.StatusCode, string(b))
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > maxRemoteBytes {
		return nil, fmt.Errorf("body exceeds %d bytes", maxRemoteBytes)
	}
	return b, nil
}
