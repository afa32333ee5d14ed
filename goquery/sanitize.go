package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// noiseTags are structural elements that never carry article content.
var noiseTags = "script, style, nav, aside, footer, iframe, noscript, header, form"

// commentKeywords mark comment sections. Matched as case-insensitive
// substrings of an element's class/id/role/aria-label signature.
var commentKeywords = []string{
	"comment", "comments", "disqus", "remark", "reply", "replies",
}

// noiseKeywords mark non-content page furniture. Matched as
// case-insensitive substrings of an element's class/id signature;
// substring matching is intentionally broad so variant class names
// (e.g. "ad-container", "sidebar-right") are caught too.
var noiseKeywords = []string{
	"sidebar", "related", "share", "social", "advert", "ad-", "ads",
	"promo", "newsletter", "subscribe", "paywall", "modal", "popup",
	"cookie",
}

// lazySrcAttributes are lazy-load attributes checked after src, in
// priority order, when choosing an image's real source.
var lazySrcAttributes = []string{
	"src",
	"data-src",
	"data-original",
	"data-url",
	"data-actualsrc",
	"data-lazy-src",
	"data-srcset",
	"data-original-src",
}

// CleanOptions controls sanitization of a content fragment.
type CleanOptions struct {
	// BaseURL resolves relative links and image sources.
	BaseURL string

	// IncludeComments keeps comment sections in the output.
	IncludeComments bool

	// IncludeImages keeps <img> and <picture> elements in the output.
	// Image URLs are collected either way.
	IncludeImages bool
}

// CleanResult is the outcome of sanitizing a content fragment.
type CleanResult struct {
	// HTML is the sanitized fragment.
	HTML string

	// ImageURLs and FileURLs list the absolute asset URLs found in the
	// fragment, deduplicated in first-seen order.
	ImageURLs []string
	FileURLs  []string
}

// Sanitize strips non-content elements from an HTML fragment, resolves
// every link and image source against the base URL, and collects the
// asset URLs referenced by the content.
func Sanitize(contentHTML string, opts CleanOptions) (*CleanResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return nil, webclip.Errorf(webclip.EINVALID, "failed to parse content HTML: %v", err)
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, webclip.Errorf(webclip.EINVALID, "invalid base URL: %v", err)
	}

	body := doc.Find("body")

	body.Find(noiseTags).Remove()

	if !opts.IncludeComments {
		removeBySignature(body, commentKeywords, true)
	}
	removeBySignature(body, noiseKeywords, false)

	fileURLs := normalizeAnchors(body, base)
	imageURLs := normalizeImages(body, base)

	if !opts.IncludeImages {
		body.Find("img").Remove()
		body.Find("picture").Remove()
	}

	html, err := body.Html()
	if err != nil {
		return nil, webclip.Errorf(webclip.EINTERNAL, "failed to serialize content: %v", err)
	}

	return &CleanResult{
		HTML:      html,
		ImageURLs: imageURLs,
		FileURLs:  fileURLs,
	}, nil
}

// removeBySignature removes every element whose attribute signature
// contains one of the keywords. The signature concatenates class and id;
// withRoles additionally folds in role and aria-label, which comment
// widgets commonly use.
func removeBySignature(root *goquery.Selection, keywords []string, withRoles bool) {
	root.Find("*").Each(func(_ int, sel *goquery.Selection) {
		parts := []string{
			sel.AttrOr("class", ""),
			sel.AttrOr("id", ""),
		}
		if withRoles {
			parts = append(parts, sel.AttrOr("role", ""), sel.AttrOr("aria-label", ""))
		}
		signature := strings.ToLower(strings.Join(parts, " "))

		for _, keyword := range keywords {
			if strings.Contains(signature, keyword) {
				sel.Remove()
				return
			}
		}
	})
}

// normalizeAnchors rewrites every anchor's href to an absolute URL and
// collects links that look like downloadable files, deduplicated in
// first-seen order. Fragment-only and javascript:/mailto:/tel: links are
// left untouched.
func normalizeAnchors(root *goquery.Selection, base *url.URL) []string {
	var fileURLs []string
	seen := make(map[string]bool)

	root.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		absolute := base.ResolveReference(ref).String()
		sel.SetAttr("href", absolute)

		_, isDownload := sel.Attr("download")
		if !isDownload && !webclip.IsFileURL(absolute) {
			return
		}
		if !seen[absolute] {
			seen[absolute] = true
			fileURLs = append(fileURLs, absolute)
		}
	})

	return fileURLs
}

// normalizeImages resolves each image's best source candidate to an
// absolute URL, rewrites the src attribute, and collects the URLs,
// deduplicated in first-seen order. Inline data: URLs are never collected.
func normalizeImages(root *goquery.Selection, base *url.URL) []string {
	var imageURLs []string
	seen := make(map[string]bool)

	root.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src := bestImageSrc(sel)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}

		ref, err := url.Parse(src)
		if err != nil {
			return
		}
		absolute := base.ResolveReference(ref).String()
		sel.SetAttr("src", absolute)

		if !seen[absolute] {
			seen[absolute] = true
			imageURLs = append(imageURLs, absolute)
		}
	})

	return imageURLs
}

// bestImageSrc picks an image's real source: the first non-placeholder
// candidate among src and the lazy-load attributes, with a plain srcset
// as the last resort. A candidate that is itself a srcset list is reduced
// to its best entry.
func bestImageSrc(sel *goquery.Selection) string {
	for _, attr := range lazySrcAttributes {
		candidate := strings.TrimSpace(sel.AttrOr(attr, ""))
		if candidate == "" || webclip.IsPlaceholderImageURL(candidate) {
			continue
		}
		return pickFromSrcset(candidate)
	}

	if srcset := strings.TrimSpace(sel.AttrOr("srcset", "")); srcset != "" {
		return pickFromSrcset(srcset)
	}

	return ""
}

// pickFromSrcset reduces a srcset list to the entry with the highest
// descriptor score. Width descriptors ("Nw") score N; density descriptors
// ("Nx") score N×1000 so density hints beat widths when a list mixes both
// scales. Entries without a parseable descriptor score 0; the first entry
// wins ties. Values without a comma are returned unchanged.
func pickFromSrcset(value string) string {
	if !strings.Contains(value, ",") {
		return value
	}

	var bestURL string
	bestScore := -1.0

	for _, part := range strings.Split(value, ",") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) == 0 {
			continue
		}

		score := 0.0
		if len(fields) >= 2 {
			score = descriptorScore(strings.ToLower(fields[1]))
		}
		if score > bestScore {
			bestScore = score
			bestURL = fields[0]
		}
	}

	if bestURL == "" {
		fields := strings.Fields(strings.TrimSpace(strings.Split(value, ",")[0]))
		if len(fields) > 0 {
			return fields[0]
		}
		return value
	}
	return bestURL
}

// descriptorScore converts a srcset descriptor to a comparable score.
func descriptorScore(descriptor string) float64 {
	if n, ok := strings.CutSuffix(descriptor, "w"); ok {
		if v, err := strconv.ParseFloat(n, 64); err == nil {
			return v
		}
		return 0
	}
	if n, ok := strings.CutSuffix(descriptor, "x"); ok {
		if v, err := strconv.ParseFloat(n, 64); err == nil {
			return v * 1000
		}
	}
	return 0
}

// isNonHTTPLink reports whether a href uses a scheme that should never be
// rewritten or collected.
func isNonHTTPLink(href string) bool {
	lowered := strings.ToLower(href)
	return strings.HasPrefix(lowered, "javascript:") ||
		strings.HasPrefix(lowered, "mailto:") ||
		strings.HasPrefix(lowered, "tel:")
}
