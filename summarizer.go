package webclip

// Summary holds the outcome of a boilerplate-removal pass over a page.
// Either field may be empty when the underlying heuristic found nothing.
type Summary struct {
	// Title is the article title as detected by the heuristic.
	Title string

	// ContentHTML is the main content as an HTML fragment with page
	// furniture (navigation, sidebars, ads) removed.
	ContentHTML string
}

// Summarizer isolates the main article content from an HTML document.
// It is an opaque heuristic oracle: callers treat failure as an empty
// result and fall through to other content-location strategies.
type Summarizer interface {
	Summarize(html string) (*Summary, error)
}
