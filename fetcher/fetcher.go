package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"sportsdigest/config"
)

const userAgent = "sportsdigest/1.0 (+https://github.com/sportsdigest/sportsdigest)"

// Fetcher retrieves raw feed documents over HTTP. One attempt per source, no
// retries; a failed source simply contributes zero items to the run.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher whose requests are bounded by the given timeout.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the raw body of a feed source. Any network error, timeout
// or non-2xx status is returned to the caller to be reported and skipped.
func (f *Fetcher) Fetch(ctx context.Context, feed config.Feed) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", feed.URL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", feed.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, feed.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", feed.URL, err)
	}
	return body, nil
}
