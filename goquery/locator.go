package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentClasses are common article-container class names, checked in
// priority order. First match wins.
var contentClasses = []string{
	"post-content",
	"entry-content",
	"article-content",
	"content-area",
	"main-content",
	"article-body",
	"post-body",
}

// bylineClasses are author-card and navigation fragments stripped from a
// selector-located container before it is measured. The full sanitizer
// runs later; this pass only keeps obvious furniture from inflating the
// candidate's text length.
var bylineClasses = []string{
	"author-desktop",
	"author-block",
	"author-meta",
	"author-avatar",
	"author-name",
	"author-desc",
	"sidebar",
	"related-posts",
	"share-buttons",
	"comments",
	"navigation",
	"post-navigation",
	"meta-wrap",
	"social-share",
	"ad",
	"advertisement",
}

// FindContentBySelectors locates an article container by selector
// heuristics: a div with a known content class, an <article> element, an
// element with role="article", then a <main> element. Returns the
// container's HTML with obvious furniture removed, or "" when no
// candidate matches.
func FindContentBySelectors(doc *goquery.Document) string {
	var container *goquery.Selection

	for _, class := range contentClasses {
		if sel := doc.Find("div." + class).First(); sel.Length() > 0 {
			container = sel
			break
		}
	}
	if container == nil {
		if sel := doc.Find("article").First(); sel.Length() > 0 {
			container = sel
		}
	}
	if container == nil {
		if sel := doc.Find(`[role="article"]`).First(); sel.Length() > 0 {
			container = sel
		}
	}
	if container == nil {
		if sel := doc.Find("main").First(); sel.Length() > 0 {
			container = sel
		}
	}
	if container == nil {
		return ""
	}

	clone := container.Clone()
	clone.Find("script, style, nav, aside, footer, iframe, noscript, header").Remove()
	for _, class := range bylineClasses {
		clone.Find("." + class).Remove()
	}

	html, err := goquery.OuterHtml(clone)
	if err != nil {
		return ""
	}
	return html
}

// AMPURL returns the absolute URL of the page's AMP variant, discovered
// from a <link rel=amphtml> element, or "" when the page has none.
func AMPURL(doc *goquery.Document, baseURL string) string {
	var href string

	doc.Find("link[rel]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		rel, _ := sel.Attr("rel")
		if !strings.Contains(strings.ToLower(rel), "amphtml") {
			return true
		}
		href, _ = sel.Attr("href")
		return href == ""
	})

	if href == "" {
		return ""
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
