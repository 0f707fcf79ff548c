package landlord

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Landlord is a property owner and the authorization root of the system:
// every property, unit, tenancy and payment chains back to exactly one
// landlord, and all API access is scoped to the acting landlord.
type Landlord struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	NationalID   string    `json:"national_id,omitempty"`
	TaxID        string    `json:"tax_id,omitempty"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// New creates an active landlord. National id and tax id arrive later
// through UpdateIdentity.
func New(firstName, lastName, email, phone, passwordHash string) (*Landlord, error) {
	now := time.Now().UTC()
	l := &Landlord{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Phone:        strings.TrimSpace(phone),
		PasswordHash: passwordHash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// FullName renders the display name.
func (l *Landlord) FullName() string {
	return l.FirstName + " " + l.LastName
}

// UpdatePersonalInfo replaces the landlord's name.
func (l *Landlord) UpdatePersonalInfo(firstName, lastName string) error {
	prev := *l
	l.FirstName = strings.TrimSpace(firstName)
	l.LastName = strings.TrimSpace(lastName)
	if err := l.validate(); err != nil {
		*l = prev
		return err
	}
	l.touch()
	return nil
}

// UpdateContactInfo replaces email and phone.
func (l *Landlord) UpdateContactInfo(email, phone string) error {
	prev := *l
	l.Email = strings.ToLower(strings.TrimSpace(email))
	l.Phone = strings.TrimSpace(phone)
	if err := l.validate(); err != nil {
		*l = prev
		return err
	}
	l.touch()
	return nil
}

// UpdateIdentity records national id and tax id.
func (l *Landlord) UpdateIdentity(nationalID, taxID string) {
	l.NationalID = strings.TrimSpace(nationalID)
	l.TaxID = strings.TrimSpace(taxID)
	l.touch()
}

// Deactivate marks the landlord inactive. Already inactive is an error.
func (l *Landlord) Deactivate() error {
	if !l.Active {
		return fmt.Errorf("%w: landlord is already inactive", shared.ErrIllegalTransition)
	}
	l.Active = false
	l.touch()
	return nil
}

// Activate marks the landlord active. Already active is an error.
func (l *Landlord) Activate() error {
	if l.Active {
		return fmt.Errorf("%w: landlord is already active", shared.ErrIllegalTransition)
	}
	l.Active = true
	l.touch()
	return nil
}

func (l *Landlord) touch() {
	l.UpdatedAt = time.Now().UTC()
}

func (l *Landlord) validate() error {
	if n := len(l.FirstName); n < 2 || n > 100 {
		return fmt.Errorf("%w: first name must be between 2 and 100 characters", shared.ErrValidation)
	}
	if n := len(l.LastName); n < 2 || n > 100 {
		return fmt.Errorf("%w: last name must be between 2 and 100 characters", shared.ErrValidation)
	}
	if !strings.Contains(l.Email, "@") {
		return fmt.Errorf("%w: invalid email address", shared.ErrValidation)
	}
	if !shared.ValidPhone(l.Phone) {
		return fmt.Errorf("%w: phone must match +255XXXXXXXXX", shared.ErrValidation)
	}
	return nil
}
