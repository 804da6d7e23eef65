package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestServiceCategories(t *testing.T) {
	t.Run("fixed set is valid", func(t *testing.T) {
		for _, slug := range ServiceCategories() {
			assert.True(t, IsValidServiceCategory(slug), slug)
		}
		assert.Len(t, ServiceCategories(), 3)
	})

	t.Run("anything else is invalid", func(t *testing.T) {
		for _, slug := range []string{"", "tax-law", "Consultation", "personal-and-family"} {
			assert.False(t, IsValidServiceCategory(slug), slug)
		}
	})

	t.Run("label replaces dashes", func(t *testing.T) {
		assert.Equal(t, "personal and family legal assistance", ServiceLabel(ServicePersonalFamily))
		assert.Equal(t, "consultation", ServiceLabel(ServiceConsultation))
	})
}

func TestNewUserForm(t *testing.T) {
	form := NewUserForm("Asha", "Verma", "asha@example.com", "Property dispute", "Need advice on a tenancy matter")

	assert.NotEqual(t, uuid.Nil, form.ID)
	assert.Equal(t, "Asha", form.FirstName)
	assert.Equal(t, "Verma", form.LastName)
	assert.Equal(t, "asha@example.com", form.Email)
	assert.Equal(t, "Property dispute", form.Subject)
	assert.Equal(t, "Need advice on a tenancy matter", form.Message)
	assert.False(t, form.CreatedAt.IsZero())
	assert.Equal(t, "user_forms", form.TableName())
}
