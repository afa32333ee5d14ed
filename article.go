package webclip

// Metadata holds page metadata pulled from JSON-LD structured data with
// meta-tag fallbacks. Fields are empty when nothing was found; dates are
// reported in whatever format the page used.
type Metadata struct {
	Title  string
	Author string
	Date   string
}

// Article is the success payload of an extraction.
type Article struct {
	Title     string
	Author    string
	Date      string
	SourceURL string

	// Content is the rendered output in the requested format, with asset
	// links rewritten to local paths when downloads were requested.
	Content string

	// Images and Files list downloaded assets in first-seen order.
	// Empty unless downloads were requested.
	Images []Asset
	Files  []Asset
}

// Result is the per-URL outcome of a batch run. Exactly one of Article or
// Err is set; a result is never a partial success.
type Result struct {
	URL     string
	Article *Article

	// SavedTo is the path of the written output file, when the batch run
	// saves articles to disk.
	SavedTo string

	Err error
}
