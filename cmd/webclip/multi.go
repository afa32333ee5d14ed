package main

import (
	"fmt"

	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/pipeline"
	"github.com/fwojciec/webclip/sqlite"
)

// Run executes the multi command.
func (c *MultiCmd) Run(deps *Dependencies) error {
	return c.BatchOptions.run(deps, c.URLs)
}

// run executes a batch over the given URLs with the shared batch flags.
func (o *BatchOptions) run(deps *Dependencies, urls []string) error {
	if len(urls) == 0 {
		return webclip.Errorf(webclip.EINVALID, "no URLs to extract")
	}

	if o.RPS > 0 {
		deps.Extractor.Limiter = pipeline.NewDomainLimiter(o.RPS)
	}

	var extractions webclip.ExtractionService
	if o.Index != "" {
		db := sqlite.NewDB(o.Index)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open index at %q: %w", o.Index, err)
		}
		defer db.Close()
		extractions = sqlite.NewExtractionService(db)
	} else if o.SkipIndexed {
		return webclip.Errorf(webclip.EINVALID, "--skip-indexed requires --index")
	}

	batch := &pipeline.Batch{
		Extractor:   deps.Extractor,
		Writer:      deps.Writer,
		Extractions: extractions,
		Concurrency: o.Concurrency,
		SkipIndexed: o.SkipIndexed,
	}

	base := webclip.Request{
		Format:          webclip.Format(o.Format),
		IncludeComments: o.IncludeComments,
		IncludeImages:   o.Images,
		DownloadImages:  o.DownloadImages,
		DownloadFiles:   o.DownloadFiles,
	}

	progress := func(p webclip.BatchProgress) {
		switch {
		case p.Err != nil && webclip.ErrorCode(p.Err) == webclip.ECONFLICT:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] skip %s (already extracted)\n", p.Completed, p.Total, truncateURL(p.URL))
		case p.Err != nil:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] fail %s: %s\n", p.Completed, p.Total, truncateURL(p.URL), webclip.ErrorMessage(p.Err))
		default:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] ok   %s\n", p.Completed, p.Total, truncateURL(p.URL))
		}
	}

	results, err := batch.Run(deps.Ctx, urls, base, o.OutputDir, progress)
	if err != nil {
		return err
	}

	var saved, failed, skipped int
	for _, r := range results {
		switch {
		case r.Err != nil && webclip.ErrorCode(r.Err) == webclip.ECONFLICT:
			skipped++
		case r.Err != nil:
			failed++
		default:
			saved++
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d of %d (%d failed, %d skipped)\n", saved, len(results), failed, skipped)
	return nil
}

// truncateURL shortens long URLs for progress lines.
func truncateURL(url string) string {
	const max = 60
	if len(url) <= max {
		return url
	}
	return url[:max-3] + "..."
}
