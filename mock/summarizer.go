package mock

import "github.com/fwojciec/webclip"

var _ webclip.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of webclip.Summarizer.
type Summarizer struct {
	SummarizeFn func(html string) (*webclip.Summary, error)
}

func (s *Summarizer) Summarize(html string) (*webclip.Summary, error) {
	return s.SummarizeFn(html)
}
