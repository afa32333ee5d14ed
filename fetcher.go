package webclip

import "context"

// Fetcher retrieves HTML from URLs over plain HTTP.
// Implementations own retry policy, timeouts, and character-set handling.
type Fetcher interface {
	// Fetch downloads the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	Close() error
}

// DomainLimiter throttles outbound requests per domain so that batch
// runs do not hammer a single host.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, domain string) error
}

// Renderer retrieves HTML through a full browser render. It is an optional
// capability used for JavaScript-heavy or anti-bot pages; absence degrades
// extraction to textual-only stages.
type Renderer interface {
	// Render navigates a headless browser to the URL, waits for the page
	// to load, and returns the rendered DOM as HTML.
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}
