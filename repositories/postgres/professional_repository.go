package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/models"
	"github.com/lawmate-ai/backend/repositories"
)

// ProfessionalRepository implements the repositories.ProfessionalRepository interface
type ProfessionalRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewProfessionalRepository creates a new professional repository
func NewProfessionalRepository(db *DB, logger *zap.Logger) repositories.ProfessionalRepository {
	return &ProfessionalRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves professionals matching a service category and, when city is
// non-empty, an exact city. Rows come back in storage order.
func (r *ProfessionalRepository) List(ctx context.Context, serviceCategory, city string) ([]*models.LegalProfessional, error) {
	query := `
		SELECT id, name, specialization, experience_years, city, service_category, created_at
		FROM legal_professionals
		WHERE service_category = $1
	`
	args := []interface{}{serviceCategory}

	if city != "" {
		query += ` AND city = $2`
		args = append(args, city)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}
	defer rows.Close()

	var professionals []*models.LegalProfessional
	for rows.Next() {
		p := &models.LegalProfessional{}
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Specialization,
			&p.ExperienceYears,
			&p.City,
			&p.ServiceCategory,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan professional: %w", err)
		}
		professionals = append(professionals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate professionals: %w", err)
	}

	r.logger.Debug("professionals listed",
		zap.String("service_category", serviceCategory),
		zap.String("city", city),
		zap.Int("count", len(professionals)))
	return professionals, nil
}
