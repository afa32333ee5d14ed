package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webclip"
)

// Ensure TextConverter implements webclip.Converter at compile time.
var _ webclip.Converter = (*TextConverter)(nil)

// TextConverter renders sanitized HTML as plain text. Links and images are
// dropped entirely: plain-text output favors readability over link
// preservation.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// blockSelector lists the elements rendered as separate paragraphs.
var blockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre, figcaption"

// Convert transforms sanitized HTML into plain text, one paragraph per
// block-level element separated by blank lines.
func (c *TextConverter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", webclip.Errorf(webclip.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", webclip.Errorf(webclip.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("img, picture").Remove()

	var paragraphs []string
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		// Skip containers whose text is fully covered by nested blocks.
		if sel.Find(blockSelector).Length() > 0 {
			return
		}
		if text := strings.Join(strings.Fields(sel.Text()), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		if text := strings.Join(strings.Fields(doc.Text()), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.Join(paragraphs, "\n\n"), nil
}
