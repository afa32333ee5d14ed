package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/webclip"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Summarizer implements webclip.Summarizer at compile time.
var _ webclip.Summarizer = (*Summarizer)(nil)

// Summarizer wraps go-trafilatura to pull the main article content out of a
// full HTML page.
type Summarizer struct{}

// NewSummarizer creates a new Summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize processes raw HTML and returns the main content.
func (s *Summarizer) Summarize(rawHTML string) (*webclip.Summary, error) {
	if rawHTML == "" {
		return nil, webclip.Errorf(webclip.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &webclip.Summary{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
