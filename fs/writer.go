// Package fs provides file-based storage for extracted articles.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webclip"
)

const maxTitleLen = 50

var unsafeTitleRe = regexp.MustCompile(`[\\/*?:"<>|]`)

// SafeTitle converts an article title into a filesystem-safe file name stem.
// Characters that are invalid on common filesystems become underscores and
// the result is capped at 50 characters.
func SafeTitle(title string) string {
	s := unsafeTitleRe.ReplaceAllString(title, "_")
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxTitleLen {
		s = strings.TrimSpace(string(runes[:maxTitleLen]))
	}
	if s == "" {
		return "untitled"
	}
	return s
}

// AssetDir returns the per-article asset directory for the given kind
// ("images" or "files"), namespaced by a hash of the article URL so that
// assets from different articles in the same output directory never collide.
func AssetDir(outputDir, kind, articleURL string) string {
	h := xxhash.Sum64String(articleURL)
	return filepath.Join(outputDir, fmt.Sprintf("%s_%08x", kind, uint32(h)))
}

// FormatArticle renders an article as a Markdown document with a metadata
// header. Empty metadata fields are omitted.
func FormatArticle(article *webclip.Article) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(article.Title)
	b.WriteString("\n\n")
	if article.Author != "" {
		b.WriteString("**Author**: ")
		b.WriteString(article.Author)
		b.WriteString("\n")
	}
	if article.Date != "" {
		b.WriteString("**Date**: ")
		b.WriteString(article.Date)
		b.WriteString("\n")
	}
	b.WriteString("**Source**: ")
	b.WriteString(article.SourceURL)
	b.WriteString("\n\n---\n\n")
	b.WriteString(article.Content)
	if !strings.HasSuffix(article.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// Ensure Writer implements webclip.ArticleWriter at compile time.
var _ webclip.ArticleWriter = (*Writer)(nil)

// Writer writes articles as markdown files named after their titles.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteArticle writes the article to outputDir and returns the saved path.
// The output directory is created if it does not exist.
func (w *Writer) WriteArticle(article *webclip.Article, outputDir string) (string, error) {
	if article == nil {
		return "", webclip.Errorf(webclip.EINVALID, "article required")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(outputDir, SafeTitle(article.Title)+".md")
	if err := os.WriteFile(fullPath, []byte(FormatArticle(article)), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
