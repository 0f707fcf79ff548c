package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Template is a reusable contract body with {{placeholder}} markers that
// get filled from a tenancy's data when a document is generated. Templates
// belong to the landlord who created them.
type Template struct {
	ID          uuid.UUID `json:"id"`
	LandlordID  uuid.UUID `json:"landlord_id"`
	Name        string    `json:"name"`
	Content     string    `json:"content"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTemplate creates an active template.
func NewTemplate(landlordID uuid.UUID, name, content, description string) (*Template, error) {
	now := time.Now().UTC()
	t := &Template{
		ID:          uuid.New(),
		LandlordID:  landlordID,
		Name:        strings.TrimSpace(name),
		Content:     content,
		Description: strings.TrimSpace(description),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateDetails replaces name, content and description.
func (t *Template) UpdateDetails(name, content, description string) error {
	prev := *t
	t.Name = strings.TrimSpace(name)
	t.Content = content
	t.Description = strings.TrimSpace(description)
	if err := t.validate(); err != nil {
		*t = prev
		return err
	}
	t.touch()
	return nil
}

// Activate marks the template usable. Already active is an error.
func (t *Template) Activate() error {
	if t.Active {
		return fmt.Errorf("%w: template is already active", shared.ErrIllegalTransition)
	}
	t.Active = true
	t.touch()
	return nil
}

// Deactivate retires the template. Already inactive is an error.
func (t *Template) Deactivate() error {
	if !t.Active {
		return fmt.Errorf("%w: template is already inactive", shared.ErrIllegalTransition)
	}
	t.Active = false
	t.touch()
	return nil
}

func (t *Template) touch() {
	t.UpdatedAt = time.Now().UTC()
}

func (t *Template) validate() error {
	if t.LandlordID == uuid.Nil {
		return fmt.Errorf("%w: landlord id is required", shared.ErrValidation)
	}
	if n := len(t.Name); n < 2 || n > 200 {
		return fmt.Errorf("%w: template name must be between 2 and 200 characters", shared.ErrValidation)
	}
	if strings.TrimSpace(t.Content) == "" {
		return fmt.Errorf("%w: template content is required", shared.ErrValidation)
	}
	return nil
}
