package models

import (
	"time"

	"github.com/google/uuid"
)

// UserForm is a contact/inquiry form submission. The five tagged fields are
// required and non-empty; the row is inserted verbatim with no further
// schema enforcement here.
type UserForm struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"firstName" db:"first_name" validate:"required"`
	LastName  string    `json:"lastName" db:"last_name" validate:"required"`
	Email     string    `json:"email" db:"email" validate:"required"`
	Subject   string    `json:"subject" db:"subject" validate:"required"`
	Message   string    `json:"message" db:"message" validate:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the UserForm model
func (UserForm) TableName() string {
	return "user_forms"
}

// NewUserForm stamps a submission with an ID and creation time.
func NewUserForm(firstName, lastName, email, subject, message string) *UserForm {
	return &UserForm{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Subject:   subject,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
