package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// OpenRange opens a bounded byte-range read against a stream URL.
// The returned reader delivers exactly the [start, end] window (inclusive)
// when the host honors the range; the caller owns closing it. Cancelling
// ctx aborts the transfer and releases the connection.
func (c *Client) OpenRange(ctx context.Context, streamURL string, start, end int64) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end))

	// Range transfers run as long as the client keeps reading; the
	// metadata timeout must not apply here.
	client := &http.Client{Transport: c.httpClient.Transport}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("range fetch failed: %w", err)
	}

	if resp.StatusCode != http.StatusPartialContent && resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("range fetch failed: status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
