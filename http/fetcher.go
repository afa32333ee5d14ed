// Package http provides the HTTP transport implementations: a retrying
// page fetcher, a best-effort asset downloader, and a sitemap URL source.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/webclip"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for page fetches.
const DefaultFetchTimeout = 10 * time.Second

// defaultUserAgent mirrors a current desktop Chrome so hosts that block
// obvious bots still serve the page.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/120.0.0.0 Safari/537.36"

// DefaultRetryDelays returns the backoff delays between fetch attempts:
// 600ms, 1.2s, 2.4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{600 * time.Millisecond, 1200 * time.Millisecond, 2400 * time.Millisecond}
}

// retryableStatus is the set of response codes worth retrying for
// idempotent requests.
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Ensure Fetcher implements webclip.Fetcher at compile time.
var _ webclip.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages over HTTP with bounded retries and
// exponential backoff. Responses are decoded to UTF-8 based on
// Content-Type and in-page charset hints.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	retryDelays []time.Duration
	userAgent   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for each fetch attempt.
// Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetryDelays sets the delays between fetch attempts. An empty slice
// disables retries. Defaults to DefaultRetryDelays().
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP page fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		retryDelays: DefaultRetryDelays(),
		userAgent:   defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch downloads the page at url and returns its HTML decoded to UTF-8.
// Transient network errors and retryable status codes (429, 500, 502, 503,
// 504) are retried with backoff; other non-2xx responses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.retryDelays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, retryable, err := f.fetchOnce(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.retryDelays[attempt]):
		}
	}

	return "", lastErr
}

// fetchOnce performs a single fetch attempt. The second return value
// reports whether the failure is worth retrying.
func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		// Connection and timeout failures are transient.
		return "", true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", retryableStatus[resp.StatusCode], fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", false, fmt.Errorf("detecting charset for %s: %w", url, err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", true, err
	}

	return string(body), false, nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}

// Close releases transport resources.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
