// Package generation builds the completion prompt and calls the hosted
// model. Groq's API is OpenAI-compatible, so the client is go-openai pointed
// at the Groq base URL.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/config"
	"github.com/lawmate-ai/backend/models"
)

// ErrProviderFailure marks completion-provider errors so handlers can map
// them to a 502 with a safe message. The raw provider error is logged
// server-side only, never returned to clients.
var ErrProviderFailure = errors.New("completion provider failure")

// completionClient is the slice of the go-openai client the service needs.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service generates answers from a query and its retrieved context.
type Service struct {
	client      completionClient
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewService creates a generation service from the Groq configuration.
func NewService(cfg config.GroqConfig, logger *zap.Logger) *Service {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	return NewServiceWithClient(openai.NewClientWithConfig(clientCfg), cfg, logger)
}

// NewServiceWithClient creates a generation service with an injected
// completion client, for tests.
func NewServiceWithClient(client completionClient, cfg config.GroqConfig, logger *zap.Logger) *Service {
	return &Service{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

// Generate builds the prompt and requests a single-turn completion.
// Returns the trimmed text of the first choice.
func (s *Service) Generate(ctx context.Context, query string, passages []models.RetrievedPassage, service string) (string, error) {
	prompt := BuildPrompt(query, passages, service)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		s.logger.Error("chat completion failed",
			zap.String("model", s.model),
			zap.Error(err))
		return "", fmt.Errorf("%w: %s", ErrProviderFailure, s.model)
	}
	if len(resp.Choices) == 0 {
		s.logger.Error("chat completion returned no choices", zap.String("model", s.model))
		return "", fmt.Errorf("%w: empty response", ErrProviderFailure)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
