package readability

import (
	"strings"

	"github.com/fwojciec/webclip"
	"github.com/go-shiori/go-readability"
)

// Ensure Summarizer implements webclip.Summarizer at compile time.
var _ webclip.Summarizer = (*Summarizer)(nil)

// Summarizer wraps go-readability to pull the main article content out of a
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &webclip.Summary{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
