package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/middleware"
	"github.com/lawmate-ai/backend/models"
	"github.com/lawmate-ai/backend/services/chat"
	"github.com/lawmate-ai/backend/services/generation"
	"github.com/lawmate-ai/backend/utils"
)

// ChatService is the chat-flow surface the handler depends on
type ChatService interface {
	Ask(ctx context.Context, service, userID, query string) (string, error)
	History(service, userID string) ([]models.ConversationTurn, error)
}

// ChatRequest is the request body for POST /{service}/chat
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse is the response body for POST /{service}/chat
type ChatResponse struct {
	Response string `json:"response"`
}

// HistoryResponse is the response body for GET /{service}/history
type HistoryResponse struct {
	History []models.ConversationTurn `json:"history"`
}

// ChatHandler handles chat and history HTTP requests
type ChatHandler struct {
	chat   ChatService
	logger *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chatService,
		logger: logger,
	}
}

// HandleChat handles POST /{service}/chat
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	service := chi.URLParam(r, "service")
	userID := middleware.GetUserIDFromContext(r.Context())

	// Category validation comes before body parsing
	if !models.IsValidServiceCategory(service) {
		h.writeChatError(w, service, chat.ErrInvalidService)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Request body must be JSON", nil)
		return
	}
	req.Query = strings.TrimSpace(req.Query)

	answer, err := h.chat.Ask(r.Context(), service, userID, req.Query)
	if err != nil {
		h.writeChatError(w, service, err)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, ChatResponse{Response: answer})
}

// HandleHistory handles GET /{service}/history
func (h *ChatHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	service := chi.URLParam(r, "service")
	userID := middleware.GetUserIDFromContext(r.Context())

	turns, err := h.chat.History(service, userID)
	if err != nil {
		h.writeChatError(w, service, err)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, HistoryResponse{History: turns})
}

// writeChatError maps chat-flow errors to HTTP responses. Provider failures
// become a 502 with a safe message; the detail stays in the server log.
func (h *ChatHandler) writeChatError(w http.ResponseWriter, service string, err error) {
	switch {
	case errors.Is(err, chat.ErrInvalidService):
		_ = utils.WriteBadRequest(w, "Invalid service", map[string]interface{}{
			"service": service,
			"allowed": models.ServiceCategories(),
		})
	case errors.Is(err, chat.ErrEmptyQuery):
		_ = utils.WriteBadRequest(w, "Query missing", nil)
	case errors.Is(err, generation.ErrProviderFailure):
		h.logger.Error("chat generation failed",
			zap.String("service", service),
			zap.Error(err))
		_ = utils.WriteBadGateway(w, "The assistant is temporarily unavailable")
	default:
		h.logger.Error("chat request failed",
			zap.String("service", service),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
	}
}
