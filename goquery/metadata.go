package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// ExtractMetadata pulls title, author, and date from a page. JSON-LD
// structured data wins; any field it does not supply falls back to a fixed
// per-field meta-tag search order. The returned Title comes from JSON-LD
// only; title fallbacks for pages without structured data are handled by
// FallbackTitle so the content locator's title keeps precedence.
func ExtractMetadata(doc *goquery.Document) webclip.Metadata {
	meta := extractJSONLD(doc)

	if meta.Author == "" {
		meta.Author = metaAuthor(doc)
	}
	if meta.Date == "" {
		meta.Date = metaDate(doc)
	}

	return meta
}

// extractJSONLD scans every ld+json script block on the page. Blocks are
// parsed independently so one malformed block does not abort the others.
// The first non-empty value wins per field; iteration stops once all three
// fields are set.
func extractJSONLD(doc *goquery.Document) webclip.Metadata {
	var meta webclip.Metadata

	doc.Find("script[type]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		typ, _ := sel.Attr("type")
		if !strings.Contains(strings.ToLower(typ), "ld+json") {
			return true
		}

		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return true
		}

		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return true
		}

		for _, item := range flattenJSONLD(data) {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}

			if meta.Title == "" {
				meta.Title = firstString(obj, "headline", "name")
			}
			if meta.Date == "" {
				meta.Date = firstString(obj, "datePublished", "dateCreated", "dateModified")
			}
			if meta.Author == "" {
				meta.Author = authorName(obj["author"])
			}
		}

		return meta.Title == "" || meta.Author == "" || meta.Date == ""
	})

	return meta
}

// flattenJSONLD normalizes a parsed JSON-LD document into a flat sequence
// of candidate objects. A document may be a single object, a list of
// objects, or an object carrying a @graph list.
func flattenJSONLD(data any) []any {
	switch v := data.(type) {
	case []any:
		var items []any
		for _, item := range v {
			items = append(items, flattenJSONLD(item)...)
		}
		return items
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			return graph
		}
		return []any{v}
	}
	return nil
}

// authorName extracts an author name from the shapes schema.org allows:
// an object with a name, a list of objects or strings, or a plain string.
func authorName(author any) string {
	switch v := author.(type) {
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	case []any:
		if len(v) == 0 {
			return ""
		}
		switch first := v[0].(type) {
		case map[string]any:
			if name, ok := first["name"].(string); ok {
				return strings.TrimSpace(name)
			}
		case string:
			return strings.TrimSpace(first)
		}
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

// firstString returns the first non-empty string value among the given
// keys of obj.
func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// metaAuthor searches the fixed author fallback chain:
// meta[name=author], meta[property=article:author], meta[name=dc.creator],
// meta[property=og:author], then an <a rel=author> element's text.
func metaAuthor(doc *goquery.Document) string {
	selectors := []string{
		`meta[name="author"]`,
		`meta[property="article:author"]`,
		`meta[name="dc.creator"]`,
		`meta[property="og:author"]`,
	}
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && content != "" {
			return content
		}
	}

	if link := doc.Find(`a[rel="author"]`).First(); link.Length() > 0 {
		return strings.TrimSpace(link.Text())
	}

	return ""
}

// metaDate searches the fixed date fallback chain:
// meta[property=article:published_time], meta[name=date], meta[name=dc.date],
// meta[property=og:published_time], then a <time> element's datetime or
// content attribute.
func metaDate(doc *goquery.Document) string {
	selectors := []string{
		`meta[property="article:published_time"]`,
		`meta[name="date"]`,
		`meta[name="dc.date"]`,
		`meta[property="og:published_time"]`,
	}
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && content != "" {
			return content
		}
	}

	if el := doc.Find("time").First(); el.Length() > 0 {
		if datetime, ok := el.Attr("datetime"); ok && datetime != "" {
			return datetime
		}
		if content, ok := el.Attr("content"); ok && content != "" {
			return content
		}
	}

	return ""
}

// FallbackTitle resolves a title for pages where neither the content
// locator nor JSON-LD produced one: first <h1> text, then og:title, then
// the <title> element.
func FallbackTitle(doc *goquery.Document) string {
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		if title := strings.TrimSpace(h1.Text()); title != "" {
			return title
		}
	}

	if content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && content != "" {
		return content
	}

	if el := doc.Find("title").First(); el.Length() > 0 {
		return strings.TrimSpace(el.Text())
	}

	return ""
}
