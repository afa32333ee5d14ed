package mock

import (
	"context"

	"github.com/fwojciec/webclip"
)

var _ webclip.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of webclip.Downloader.
type Downloader struct {
	DownloadImagesFn func(ctx context.Context, urls []string, pageURL, dir string) ([]webclip.Asset, error)
	DownloadFilesFn  func(ctx context.Context, urls []string, pageURL, dir string) ([]webclip.Asset, error)
}

func (d *Downloader) DownloadImages(ctx context.Context, urls []string, pageURL, dir string) ([]webclip.Asset, error) {
	return d.DownloadImagesFn(ctx, urls, pageURL, dir)
}

func (d *Downloader) DownloadFiles(ctx context.Context, urls []string, pageURL, dir string) ([]webclip.Asset, error) {
	return d.DownloadFilesFn(ctx, urls, pageURL, dir)
}
