package webclip

import "time"

// Format identifies the output representation of extracted content.
type Format string

// Supported output formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
)

// Valid reports whether f is a supported output format.
func (f Format) Valid() bool {
	switch f {
	case FormatMarkdown, FormatHTML, FormatText:
		return true
	}
	return false
}

// DefaultTimeout is the default per-page fetch timeout.
const DefaultTimeout = 10 * time.Second

// Request describes a single extraction. It is immutable input: the
// pipeline reads it but never modifies it.
type Request struct {
	// URL is the page to extract.
	URL string

	// Format selects the output representation. Defaults to FormatMarkdown.
	Format Format

	// IncludeComments keeps comment sections in the output.
	IncludeComments bool

	// IncludeImages keeps inline image elements in the output. Asset URL
	// collection happens regardless, so downloads still work when this
	// is false.
	IncludeImages bool

	// DownloadImages persists images referenced by the content to
	// ImagesDir and rewrites their links to local paths.
	DownloadImages bool

	// DownloadFiles persists document/archive links to FilesDir and
	// rewrites their links to local paths.
	DownloadFiles bool

	// ImagesDir is the directory for downloaded images. Required when
	// DownloadImages is set.
	ImagesDir string

	// FilesDir is the directory for downloaded files. Required when
	// DownloadFiles is set.
	FilesDir string

	// Timeout bounds the primary page fetch. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Validate returns an error if the request cannot be executed.
func (r *Request) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "request URL required")
	}
	if r.Format != "" && !r.Format.Valid() {
		return Errorf(EINVALID, "unsupported output format %q", r.Format)
	}
	if r.DownloadImages && r.ImagesDir == "" {
		return Errorf(EINVALID, "images directory required to download images")
	}
	if r.DownloadFiles && r.FilesDir == "" {
		return Errorf(EINVALID, "files directory required to download files")
	}
	return nil
}
