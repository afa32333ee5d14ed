package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webclip"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webclip.ExtractionService = (*ExtractionService)(nil)

// ExtractionService implements webclip.ExtractionService using SQLite.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// HashContent computes xxHash of content and returns a hex string.
func HashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// CreateExtraction records a completed extraction. The ID and FetchedAt
// fields are assigned here.
func (s *ExtractionService) CreateExtraction(ctx context.Context, extraction *webclip.Extraction) error {
	if err := extraction.Validate(); err != nil {
		return err
	}

	extraction.ID = uuid.New().String()
	extraction.FetchedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, source_url, title, file_path, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, extraction.ID, extraction.SourceURL, extraction.Title, extraction.FilePath,
		extraction.ContentHash, extraction.FetchedAt.Format(time.RFC3339))

	return err
}

// FindExtractionBySourceURL retrieves the most recent extraction for a URL.
func (s *ExtractionService) FindExtractionBySourceURL(ctx context.Context, sourceURL string) (*webclip.Extraction, error) {
	var e webclip.Extraction
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, file_path, content_hash, fetched_at
		FROM extractions
		WHERE source_url = ?
		ORDER BY fetched_at DESC
		LIMIT 1
	`, sourceURL).Scan(&e.ID, &e.SourceURL, &e.Title, &e.FilePath, &e.ContentHash, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, webclip.Errorf(webclip.ENOTFOUND, "extraction not found")
	}
	if err != nil {
		return nil, err
	}

	var parseErr error
	e.FetchedAt, parseErr = time.Parse(time.RFC3339, fetchedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", parseErr)
	}

	return &e, nil
}
