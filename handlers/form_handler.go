package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/models"
	"github.com/lawmate-ai/backend/repositories"
	"github.com/lawmate-ai/backend/utils"
)

// SubmitFormRequest is the request body for POST /submit-form. All five
// fields are required and non-empty; no further schema validation is done
// before the row is inserted verbatim.
type SubmitFormRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// FormHandler handles contact/inquiry form submissions
type FormHandler struct {
	forms  repositories.FormRepository
	logger *zap.Logger
}

// NewFormHandler creates a new FormHandler
func NewFormHandler(forms repositories.FormRepository, logger *zap.Logger) *FormHandler {
	return &FormHandler{
		forms:  forms,
		logger: logger,
	}
}

// HandleSubmit handles POST /submit-form
func (h *FormHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Request body must be JSON", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		details := map[string]interface{}{}
		for field, msg := range utils.GetValidationFields(err) {
			details[field] = msg
		}
		_ = utils.WriteBadRequest(w, "Missing or empty required fields", details)
		return
	}

	form := models.NewUserForm(req.FirstName, req.LastName, req.Email, req.Subject, req.Message)

	if err := h.forms.Insert(r.Context(), form); err != nil {
		h.logger.Error("form insert failed",
			zap.String("form_id", form.ID.String()),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Failed to store form submission")
		return
	}

	h.logger.Info("form submitted", zap.String("form_id", form.ID.String()))
	_ = utils.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Form submitted successfully!",
	})
}
