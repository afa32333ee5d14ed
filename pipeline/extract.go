// Package pipeline orchestrates article extraction: fetching, content
// location, sanitization, asset downloads, and output formatting.
package pipeline

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/webclip"
	"github.com/fwojciec/webclip/goquery"
)

// minContentLength is the minimum visible text length, in runes, for a
// content candidate to count as a real article body. Candidates below it
// fall through to the next location strategy.
const minContentLength = 120

// Extractor runs the extraction pipeline for a single page.
//
// Renderer, Summarizer, Downloader, and Limiter are optional. A missing
// Renderer skips the browser fallback, a missing Summarizer skips the
// heuristic oracle, a missing Downloader disables asset downloads, and a
// missing Limiter disables rate limiting.
type Extractor struct {
	Fetcher    webclip.Fetcher
	Renderer   webclip.Renderer
	Summarizer webclip.Summarizer
	Markdown   webclip.Converter
	Text       webclip.Converter
	Downloader webclip.Downloader
	Limiter    webclip.DomainLimiter
}

// Extract fetches the page and returns the extracted article.
//
// Content location tries strategies in order until one yields a candidate
// with enough visible text: the heuristic oracle, known container
// selectors, the page's AMP variant, and finally a full browser render.
// Returns ENOTFOUND when every strategy comes up short.
func (e *Extractor) Extract(ctx context.Context, req webclip.Request) (*webclip.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Format == "" {
		req.Format = webclip.FormatMarkdown
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = webclip.DefaultTimeout
	}

	if e.Limiter != nil {
		u, err := url.Parse(req.URL)
		if err != nil {
			return nil, webclip.Errorf(webclip.EINVALID, "invalid URL %q: %v", req.URL, err)
		}
		if err := e.Limiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	html, err := e.Fetcher.Fetch(fetchCtx, req.URL)
	cancel()
	if err != nil {
		return nil, err
	}

	// Anti-bot interstitials carry no content; go straight to the browser.
	rendered := false
	if e.Renderer != nil && looksLikeChallenge(html) {
		if rhtml, rerr := e.Renderer.Render(ctx, req.URL); rerr == nil {
			html = rhtml
			rendered = true
		}
	}

	doc, err := goquery.ParseDocument(html)
	if err != nil {
		return nil, err
	}
	meta := goquery.ExtractMetadata(doc)

	content, title := e.locate(ctx, req, html, doc)

	// Last resort: render the page and rerun the textual strategies on
	// the browser DOM. JavaScript-assembled pages only have their
	// content there.
	if content == "" && !rendered && e.Renderer != nil {
		if rhtml, rerr := e.Renderer.Render(ctx, req.URL); rerr == nil {
			if rdoc, perr := goquery.ParseDocument(rhtml); perr == nil {
				rmeta := goquery.ExtractMetadata(rdoc)
				if rmeta.Title != "" {
					meta.Title = rmeta.Title
				}
				if meta.Author == "" {
					meta.Author = rmeta.Author
				}
				if meta.Date == "" {
					meta.Date = rmeta.Date
				}
				doc = rdoc
				content, title = e.locate(ctx, req, rhtml, rdoc)
			}
		}
	}

	if content == "" {
		return nil, webclip.Errorf(webclip.ENOTFOUND, "failed to extract article content")
	}

	if title == "" {
		title = meta.Title
	}
	if title == "" {
		title = goquery.FallbackTitle(doc)
	}

	clean, err := goquery.Sanitize(content, goquery.CleanOptions{
		BaseURL:         req.URL,
		IncludeComments: req.IncludeComments,
		IncludeImages:   req.IncludeImages,
	})
	if err != nil {
		return nil, err
	}

	article := &webclip.Article{
		Title:     title,
		Author:    meta.Author,
		Date:      meta.Date,
		SourceURL: req.URL,
		Images:    []webclip.Asset{},
		Files:     []webclip.Asset{},
	}

	if req.DownloadImages && e.Downloader != nil {
		assets, err := e.Downloader.DownloadImages(ctx, clean.ImageURLs, req.URL, req.ImagesDir)
		if err != nil {
			return nil, err
		}
		article.Images = assets
	}
	if req.DownloadFiles && e.Downloader != nil {
		assets, err := e.Downloader.DownloadFiles(ctx, clean.FileURLs, req.URL, req.FilesDir)
		if err != nil {
			return nil, err
		}
		article.Files = assets
	}

	output, err := e.render(req.Format, clean.HTML)
	if err != nil {
		return nil, err
	}

	// Point asset references at the downloaded copies. Text output has
	// no URLs to rewrite.
	if req.Format != webclip.FormatText {
		for _, asset := range article.Images {
			output = strings.ReplaceAll(output, asset.OriginalURL, asset.LocalPath)
		}
		for _, asset := range article.Files {
			output = strings.ReplaceAll(output, asset.OriginalURL, asset.LocalPath)
		}
	}

	article.Content = output
	return article, nil
}

// locate tries the textual content-location strategies in order and
// returns the first candidate with enough visible text. The second return
// value is the candidate's own title, when the strategy produced one.
func (e *Extractor) locate(ctx context.Context, req webclip.Request, html string, doc *goquery.Document) (string, string) {
	if e.Summarizer != nil {
		if sum, err := e.Summarizer.Summarize(html); err == nil && goquery.TextLength(sum.ContentHTML) >= minContentLength {
			return sum.ContentHTML, sum.Title
		}
	}

	if c := goquery.FindContentBySelectors(doc); goquery.TextLength(c) >= minContentLength {
		return c, ""
	}

	// AMP variants are server-rendered, so a JavaScript-heavy page often
	// has its full content there.
	if ampURL := goquery.AMPURL(doc, req.URL); ampURL != "" {
		if ahtml, err := e.Fetcher.Fetch(ctx, ampURL); err == nil {
			if e.Summarizer != nil {
				if sum, serr := e.Summarizer.Summarize(ahtml); serr == nil && goquery.TextLength(sum.ContentHTML) >= minContentLength {
					return sum.ContentHTML, sum.Title
				}
			}
			if adoc, perr := goquery.ParseDocument(ahtml); perr == nil {
				if c := goquery.FindContentBySelectors(adoc); goquery.TextLength(c) >= minContentLength {
					return c, ""
				}
			}
		}
	}

	return "", ""
}

// render serializes sanitized HTML into the requested output format.
func (e *Extractor) render(format webclip.Format, cleanHTML string) (string, error) {
	switch format {
	case webclip.FormatHTML:
		return cleanHTML, nil
	case webclip.FormatText:
		return e.Text.Convert(cleanHTML)
	default:
		return e.Markdown.Convert(cleanHTML)
	}
}
