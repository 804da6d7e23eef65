package models

import (
	"time"

	"github.com/google/uuid"
)

// LegalProfessional is a row from the legal_professionals table. Rows are
// read-only from this service's point of view and returned to clients
// without transformation.
type LegalProfessional struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Specialization  string    `json:"specialization" db:"specialization"`
	ExperienceYears int       `json:"experience_years" db:"experience_years"`
	City            string    `json:"city" db:"city"`
	ServiceCategory string    `json:"service_category" db:"service_category"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the LegalProfessional model
func (LegalProfessional) TableName() string {
	return "legal_professionals"
}
