package mock

import (
	"context"

	"github.com/fwojciec/webclip"
)

var _ webclip.ExtractionService = (*ExtractionService)(nil)

// ExtractionService is a mock implementation of webclip.ExtractionService.
type ExtractionService struct {
	CreateExtractionFn          func(ctx context.Context, extraction *webclip.Extraction) error
	FindExtractionBySourceURLFn func(ctx context.Context, sourceURL string) (*webclip.Extraction, error)
}

func (s *ExtractionService) CreateExtraction(ctx context.Context, extraction *webclip.Extraction) error {
	return s.CreateExtractionFn(ctx, extraction)
}

func (s *ExtractionService) FindExtractionBySourceURL(ctx context.Context, sourceURL string) (*webclip.Extraction, error) {
	return s.FindExtractionBySourceURLFn(ctx, sourceURL)
}
