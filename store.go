package webclip

import (
	"context"
	"time"
)

// ArticleWriter persists extracted articles to local storage.
type ArticleWriter interface {
	// WriteArticle saves the article under outputDir and returns the
	// path of the written file.
	WriteArticle(article *Article, outputDir string) (string, error)
}

// Extraction records a completed extraction in the history index.
type Extraction struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	FilePath    string    `json:"filePath"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.SourceURL == "" {
		return Errorf(EINVALID, "extraction source URL required")
	}
	return nil
}

// ExtractionService manages the extraction history index. Batch runs use
// it to skip URLs that were already extracted.
type ExtractionService interface {
	// CreateExtraction records a completed extraction.
	CreateExtraction(ctx context.Context, extraction *Extraction) error

	// FindExtractionBySourceURL retrieves the most recent extraction for
	// a URL. Returns ENOTFOUND if the URL has not been extracted.
	FindExtractionBySourceURL(ctx context.Context, sourceURL string) (*Extraction, error)
}
