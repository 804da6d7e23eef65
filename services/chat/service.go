// Package chat orchestrates the retrieval-augmented chat flow.
package chat

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/models"
	"github.com/lawmate-ai/backend/services/history"
)

// Validation errors mapped to client errors at the handler boundary.
var (
	ErrInvalidService = errors.New("invalid service category")
	ErrEmptyQuery     = errors.New("query is required")
)

// Retriever returns ranked context passages for a query. Retrieval never
// fails from the chat flow's point of view; degraded results are empty.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) []models.RetrievedPassage
}

// Generator produces an answer from the query, its context and the service
// category.
type Generator interface {
	Generate(ctx context.Context, query string, passages []models.RetrievedPassage, service string) (string, error)
}

// Service runs the chat pipeline: validate, retrieve, generate, record.
type Service struct {
	retriever Retriever
	generator Generator
	store     *history.Store
	logger    *zap.Logger
}

// NewService creates a chat service.
func NewService(retriever Retriever, generator Generator, store *history.Store, logger *zap.Logger) *Service {
	return &Service{
		retriever: retriever,
		generator: generator,
		store:     store,
		logger:    logger,
	}
}

// Ask answers a query for (service, userID) and appends both turns to the
// history. Steps run strictly in order with no retries: validate the
// category, require a query, retrieve context, generate, record.
func (s *Service) Ask(ctx context.Context, service, userID, query string) (string, error) {
	if !models.IsValidServiceCategory(service) {
		return "", ErrInvalidService
	}
	if query == "" {
		return "", ErrEmptyQuery
	}

	passages := s.retriever.Retrieve(ctx, query, 0)

	s.logger.Info("handling chat query",
		zap.String("service", service),
		zap.String("user_id", userID),
		zap.Int("context_passages", len(passages)))

	answer, err := s.generator.Generate(ctx, query, passages, service)
	if err != nil {
		return "", err
	}

	s.store.Append(service, userID,
		models.ConversationTurn{Role: models.RoleUser, Content: query},
		models.ConversationTurn{Role: models.RoleAssistant, Content: answer},
	)

	return answer, nil
}

// History returns the recorded turns for (service, userID). Unknown
// categories are rejected the same way Ask rejects them.
func (s *Service) History(service, userID string) ([]models.ConversationTurn, error) {
	if !models.IsValidServiceCategory(service) {
		return nil, ErrInvalidService
	}
	return s.store.Get(service, userID), nil
}
