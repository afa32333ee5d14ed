package pipeline

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/bloom"
	"github.com/fwojciec/webclip/fs"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the worker count for batch runs.
const DefaultConcurrency = 5

// Batch extracts many pages concurrently and writes the results to an
// output directory.
//
// Extractions is optional: when set, completed extractions are recorded
// in the history index and, with SkipIndexed, previously extracted URLs
// are skipped.
type Batch struct {
	Extractor   *Extractor
	Writer      webclip.ArticleWriter
	Extractions webclip.ExtractionService
	Concurrency int
	SkipIndexed bool
}

// Run extracts every URL using base as the per-page request template and
// writes each article to outputDir. Duplicate input URLs are dropped.
// Results come back in completion order, one per unique URL; a page that
// fails is reported in its Result, never as an error from Run. The
// progress callback, if provided, is invoked as URLs finish.
func (b *Batch) Run(ctx context.Context, urls []string, base webclip.Request, outputDir string, progress webclip.BatchProgressFunc) ([]webclip.Result, error) {
	seen := bloom.NewFilter(uint(len(urls))+1, 0.01)
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || seen.TestAndAdd(u) {
			continue
		}
		unique = append(unique, u)
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(unique)
	resultCh := make(chan webclip.Result, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, u := range unique {
			g.Go(func() error {
				resultCh <- b.processURL(gctx, u, base, outputDir)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]webclip.Result, 0, total)
	completed := 0
	for result := range resultCh {
		completed++
		results = append(results, result)
		if progress != nil {
			progress(webclip.BatchProgress{
				URL:       result.URL,
				Completed: completed,
				Total:     total,
				Err:       result.Err,
			})
		}
	}

	return results, nil
}

// processURL runs the full extract-write-record sequence for one URL.
func (b *Batch) processURL(ctx context.Context, url string, base webclip.Request, outputDir string) webclip.Result {
	result := webclip.Result{URL: url}

	if b.SkipIndexed && b.Extractions != nil {
		if prior, err := b.Extractions.FindExtractionBySourceURL(ctx, url); err == nil {
			result.Err = webclip.Errorf(webclip.ECONFLICT, "already extracted to %s", prior.FilePath)
			return result
		}
	}

	req := base
	req.URL = url
	if req.DownloadImages {
		req.ImagesDir = fs.AssetDir(outputDir, "images", url)
	}
	if req.DownloadFiles {
		req.FilesDir = fs.AssetDir(outputDir, "files", url)
	}

	article, err := b.Extractor.Extract(ctx, req)
	if err != nil {
		result.Err = err
		return result
	}

	path, err := b.Writer.WriteArticle(article, outputDir)
	if err != nil {
		result.Err = err
		return result
	}

	// Best effort: a failed history insert does not fail the extraction.
	if b.Extractions != nil {
		_ = b.Extractions.CreateExtraction(ctx, &webclip.Extraction{
			SourceURL:   url,
			Title:       article.Title,
			FilePath:    path,
			ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(article.Content)),
		})
	}

	result.Article = article
	result.SavedTo = path
	return result
}
