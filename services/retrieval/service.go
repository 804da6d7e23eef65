// Package retrieval finds the legal text passages most relevant to a query.
// Failures anywhere in the embed/search path degrade to an empty passage
// list: callers must treat "no context" as a valid, non-error outcome.
package retrieval

import (
	"context"

	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/models"
)

// Searcher performs a top-k similarity search for a query string.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]models.RetrievedPassage, error)
}

// StatsProvider reports vector index statistics.
type StatsProvider interface {
	Stats(ctx context.Context) (*IndexStats, error)
}

// IndexStats summarizes the state of the vector index.
type IndexStats struct {
	Dimension        uint32            `json:"dimension"`
	TotalVectorCount uint32            `json:"total_vector_count"`
	Namespaces       map[string]uint32 `json:"namespaces"`
}

// Service retrieves passage texts for the chat flow.
type Service struct {
	searcher Searcher
	stats    StatsProvider
	topK     int
	logger   *zap.Logger
}

// NewService creates a retrieval service. defaultTopK bounds result counts
// when callers pass a non-positive value.
func NewService(searcher Searcher, stats StatsProvider, defaultTopK int, logger *zap.Logger) *Service {
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	return &Service{
		searcher: searcher,
		stats:    stats,
		topK:     defaultTopK,
		logger:   logger,
	}
}

// Retrieve returns up to topK passage texts, most-relevant first. Provider
// errors are logged and swallowed; the result is then empty.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) []models.RetrievedPassage {
	if topK <= 0 {
		topK = s.topK
	}

	passages, err := s.searcher.Search(ctx, query, topK)
	if err != nil {
		s.logger.Error("vector search failed, degrading to empty context",
			zap.Int("top_k", topK),
			zap.Error(err))
		return nil
	}

	s.logger.Debug("retrieved passages", zap.Int("count", len(passages)))
	return passages
}

// Stats reports dimension, vector count and namespaces of the index.
// Implements StatsProvider so the service can back the status endpoint.
func (s *Service) Stats(ctx context.Context) (*IndexStats, error) {
	return s.stats.Stats(ctx)
}

// Texts extracts the passage texts in ranked order.
func Texts(passages []models.RetrievedPassage) []string {
	texts := make([]string, 0, len(passages))
	for _, p := range passages {
		texts = append(texts, p.Text)
	}
	return texts
}
