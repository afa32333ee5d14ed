package webclip

import (
	"net/url"
	"path"
	"strings"
)

// Asset records a downloaded image or file. LocalPath is relative to the
// parent of the download directory (e.g., "images_a1b2c3d4/image_1.jpg")
// so it can be substituted directly into rendered output.
type Asset struct {
	OriginalURL string
	LocalPath   string
	Filename    string
}

// fileExtensions is the set of path extensions treated as downloadable
// document/archive links.
var fileExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".ppt": true, ".pptx": true,
	".xls": true, ".xlsx": true, ".csv": true, ".tsv": true,
	".zip": true, ".rar": true, ".7z": true, ".tar": true, ".gz": true,
	".bz2": true, ".xz": true, ".tgz": true, ".apk": true, ".dmg": true,
	".exe": true, ".msi": true, ".epub": true, ".mobi": true,
	".txt": true, ".md": true, ".rtf": true, ".json": true, ".xml": true,
}

// imageExtensions is the set of path extensions treated as images.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".svg": true,
}

// placeholderPatterns mark lazy-load stand-in images that should never be
// treated as real content.
var placeholderPatterns = []string{
	"lazy_placeholder",
	"placeholder.gif",
	"pixel.gif",
	"1x1.gif",
	"blank.gif",
	"data:image/gif",
}

// IsFileURL reports whether the URL points at a downloadable document or
// archive. Image extensions are excluded so photo links are not collected
// as files.
func IsFileURL(rawURL string) bool {
	ext := urlExtension(rawURL)
	if imageExtensions[ext] {
		return false
	}
	return fileExtensions[ext]
}

// IsImageURL reports whether the URL's path extension is a known image type.
func IsImageURL(rawURL string) bool {
	return imageExtensions[urlExtension(rawURL)]
}

// ImageExtensionFromURL returns the image extension of the URL's path, with
// ".jpeg" normalized to ".jpg". Returns "" for non-image extensions.
func ImageExtensionFromURL(rawURL string) string {
	ext := urlExtension(rawURL)
	if !imageExtensions[ext] {
		return ""
	}
	if ext == ".jpeg" {
		return ".jpg"
	}
	return ext
}

// IsPlaceholderImageURL reports whether the URL looks like a lazy-load
// placeholder rather than real image content.
func IsPlaceholderImageURL(rawURL string) bool {
	lowered := strings.ToLower(rawURL)
	for _, p := range placeholderPatterns {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

// urlExtension returns the lowercased path extension of a URL, ignoring
// query strings and fragments.
func urlExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.ToLower(path.Ext(rawURL))
	}
	return strings.ToLower(path.Ext(u.Path))
}
