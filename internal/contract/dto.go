package contract

import "github.com/google/uuid"

// CreateRequest creates a template.
type CreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Content     string `json:"content" validate:"required"`
	Description string `json:"description" validate:"max=1000"`
}

// UpdateRequest replaces a template's details.
type UpdateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Content     string `json:"content" validate:"required"`
	Description string `json:"description" validate:"max=1000"`
}

// GenerateRequest produces a contract document for a tenancy.
type GenerateRequest struct {
	TenancyID  uuid.UUID `json:"tenancy_id" validate:"required"`
	TemplateID uuid.UUID `json:"template_id" validate:"required"`
}
