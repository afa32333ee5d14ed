// Package goquery implements the DOM-level heuristics of the extraction
// pipeline: metadata extraction, selector-based content location, AMP link
// discovery, HTML sanitization, and visible-text measurement.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// Document is a parsed HTML page. Alias so callers outside this package
// can hold one without importing the underlying library.
type Document = goquery.Document

// ParseDocument parses an HTML page into a queryable document.
func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webclip.Errorf(webclip.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// VisibleText extracts the visible text of an HTML fragment with runs of
// whitespace collapsed to single spaces and the result trimmed.
func VisibleText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// TextLength returns the number of characters of visible text in an HTML
// fragment. This is the quality gate shared by all content-location
// strategies.
func TextLength(html string) int {
	return utf8.RuneCountInString(VisibleText(html))
}
