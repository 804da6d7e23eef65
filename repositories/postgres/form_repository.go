package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lawmate-ai/backend/models"
	"github.com/lawmate-ai/backend/repositories"
)

// FormRepository implements the repositories.FormRepository interface
type FormRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewFormRepository creates a new form repository
func NewFormRepository(db *DB, logger *zap.Logger) repositories.FormRepository {
	return &FormRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores one form submission row
func (r *FormRepository) Insert(ctx context.Context, form *models.UserForm) error {
	query := `
		INSERT INTO user_forms (id, first_name, last_name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		form.ID,
		form.FirstName,
		form.LastName,
		form.Email,
		form.Subject,
		form.Message,
		form.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert form: %w", err)
	}

	r.logger.Debug("form submission stored", zap.String("id", form.ID.String()))
	return nil
}
