package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/models"
	"github.com/lawmate-ai/backend/repositories"
	"github.com/lawmate-ai/backend/utils"
)

// ProfessionalsHandler handles legal professional lookups
type ProfessionalsHandler struct {
	professionals repositories.ProfessionalRepository
	logger        *zap.Logger
}

// NewProfessionalsHandler creates a new ProfessionalsHandler
func NewProfessionalsHandler(professionals repositories.ProfessionalRepository, logger *zap.Logger) *ProfessionalsHandler {
	return &ProfessionalsHandler{
		professionals: professionals,
		logger:        logger,
	}
}

// HandleList handles GET /legal_professionals?service=<required>&city=<optional>
func (h *ProfessionalsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	service := r.URL.Query().Get("service")
	city := r.URL.Query().Get("city")

	if service == "" {
		_ = utils.WriteBadRequest(w, "service is required", nil)
		return
	}

	rows, err := h.professionals.List(r.Context(), service, city)
	if err != nil {
		h.logger.Error("professional lookup failed",
			zap.String("service", service),
			zap.String("city", city),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Failed to list professionals")
		return
	}

	// Empty result is a JSON array, not null
	if rows == nil {
		rows = []*models.LegalProfessional{}
	}
	_ = utils.WriteJSON(w, http.StatusOK, rows)
}
