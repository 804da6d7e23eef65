package repositories

import (
	"context"

	"github.com/lawmate-ai/backend/models"
)

// FormRepository persists contact/inquiry form submissions.
type FormRepository interface {
	// Insert stores one submission row verbatim.
	Insert(ctx context.Context, form *models.UserForm) error
}

// ProfessionalRepository reads legal professional listings.
type ProfessionalRepository interface {
	// List returns professionals for a service category, optionally
	// filtered by city. No pagination or sort contract.
	List(ctx context.Context, serviceCategory, city string) ([]*models.LegalProfessional, error)
}

// Repositories aggregates all repository instances
type Repositories struct {
	Forms         FormRepository
	Professionals ProfessionalRepository
}
