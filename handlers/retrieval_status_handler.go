package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/services/retrieval"
	"github.com/lawmate-ai/backend/utils"
)

// RetrievalStatusHandler reports vector index statistics. Useful for
// confirming the index is populated before pointing a front end at the chat
// endpoints.
type RetrievalStatusHandler struct {
	stats  retrieval.StatsProvider
	logger *zap.Logger
}

// NewRetrievalStatusHandler creates a new RetrievalStatusHandler
func NewRetrievalStatusHandler(stats retrieval.StatsProvider, logger *zap.Logger) *RetrievalStatusHandler {
	return &RetrievalStatusHandler{
		stats:  stats,
		logger: logger,
	}
}

// HandleStatus handles GET /retrieval/status
func (h *RetrievalStatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		h.logger.Error("index stats lookup failed", zap.Error(err))
		_ = utils.WriteBadGateway(w, "Vector index unavailable")
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, stats)
}
