package webclip

import "context"

// Downloader persists assets referenced by article content. Both methods
// are best-effort: a single asset that fails to download or validate is
// skipped, never reported. Only context cancellation and directory setup
// failures surface as errors.
//
// URLs are fetched with a Referer header set to the article's page URL,
// since many hosts reject image requests without one.
type Downloader interface {
	// DownloadImages fetches each image URL into dir and returns a
	// descriptor per successfully stored image, in input order.
	DownloadImages(ctx context.Context, urls []string, pageURL, dir string) ([]Asset, error)

	// DownloadFiles fetches each document/archive URL into dir and
	// returns a descriptor per successfully stored file, in input order.
	DownloadFiles(ctx context.Context, urls []string, pageURL, dir string) ([]Asset, error)
}
