package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/webclip"
)

// Ensure SitemapSource implements webclip.URLSource at compile time.
var _ webclip.URLSource = (*SitemapSource)(nil)

// SitemapSource discovers article URLs from a site's sitemaps for batch
// extraction. Sitemaps are found through robots.txt Sitemap directives
// with /sitemap.xml as a fallback; sitemap indexes are followed
// recursively.
type SitemapSource struct {
	client *http.Client
}

// NewSitemapSource creates a new SitemapSource with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSource(client *http.Client) *SitemapSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSource{client: client}
}

// Discover returns the page URLs listed in the site's sitemaps,
// deduplicated in sitemap order. When sourceURL has a non-root path, only
// URLs under that path are returned. Returns an empty slice (not nil)
// when no sitemap exists.
func (s *SitemapSource) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, webclip.Errorf(webclip.EINVALID, "invalid source URL: %v", err)
	}

	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	root := *base
	root.Path = ""
	root.RawQuery = ""
	root.Fragment = ""

	sitemapURLs, err := s.findSitemaps(ctx, &root)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	urls := []string{}

	for _, sitemapURL := range sitemapURLs {
		pageURLs, err := s.walkSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range pageURLs {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			if pathPrefix == "" || underPath(u, pathPrefix) {
				urls = append(urls, u)
			}
		}
	}

	return urls, nil
}

// findSitemaps locates sitemap URLs from robots.txt Sitemap directives,
// falling back to <root>/sitemap.xml.
func (s *SitemapSource) findSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.fetch(ctx, robotsURL); err == nil {
		sitemaps := parseRobotsSitemaps(body)
		body.Close()
		if len(sitemaps) > 0 {
			return sitemaps, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	body, err := s.fetch(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	body.Close()
	return []string{fallback}, nil
}

// parseRobotsSitemaps extracts Sitemap: directive values from robots.txt.
func parseRobotsSitemaps(body io.Reader) []string {
	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			continue
		}
		if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	return sitemaps
}

// walkSitemap parses one sitemap document, following sitemapindex entries
// recursively. Each sitemap URL is processed at most once.
func (s *SitemapSource) walkSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range root.SelectElements("sitemap") {
			loc := child.SelectElement("loc")
			if loc == nil {
				continue
			}
			childURL := strings.TrimSpace(loc.Text())
			if childURL == "" {
				continue
			}
			childURLs, err := s.walkSitemap(ctx, childURL, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, childURLs...)
		}
		return urls, nil
	}

	var urls []string
	for _, entry := range root.SelectElements("url") {
		loc := entry.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// fetch retrieves a URL and returns its body. Non-2xx responses are errors.
func (s *SitemapSource) fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

// underPath reports whether the URL's path sits under the given prefix,
// respecting path-segment boundaries.
func underPath(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix) || parsed.Path+"/" == prefix
}
