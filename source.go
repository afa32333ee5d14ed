package webclip

import "context"

// URLSource discovers article URLs for batch extraction.
// Implementations hide where the list comes from (sitemaps, files, flags).
type URLSource interface {
	Discover(ctx context.Context, sourceURL string) ([]string, error)
}

// BatchProgress reports progress during a batch run.
type BatchProgress struct {
	URL       string
	Completed int
	Total     int
	Err       error
}

// BatchProgressFunc is called as batch URLs finish, in completion order.
type BatchProgressFunc func(BatchProgress)
