package tenant

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Tenant is a renter identity. Unlike properties, tenants are not owned by
// a single landlord: visibility is established transitively through
// tenancies, so a tenant who moves between properties is legitimately
// visible to each landlord along the way.
type Tenant struct {
	ID                    uuid.UUID `json:"id"`
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	NationalID            string    `json:"national_id"`
	EmergencyContactName  string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string    `json:"emergency_contact_phone,omitempty"`
	Active                bool      `json:"active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// New creates an active tenant.
func New(firstName, lastName, email, phone, nationalID string) (*Tenant, error) {
	now := time.Now().UTC()
	t := &Tenant{
		ID:         uuid.New(),
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Phone:      strings.TrimSpace(phone),
		NationalID: strings.TrimSpace(nationalID),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// FullName renders the display name.
func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}

// UpdateDetails replaces name and contact fields.
func (t *Tenant) UpdateDetails(firstName, lastName, email, phone string) error {
	prev := *t
	t.FirstName = strings.TrimSpace(firstName)
	t.LastName = strings.TrimSpace(lastName)
	t.Email = strings.ToLower(strings.TrimSpace(email))
	t.Phone = strings.TrimSpace(phone)
	if err := t.validate(); err != nil {
		*t = prev
		return err
	}
	t.touch()
	return nil
}

// AddEmergencyContact records an emergency contact.
func (t *Tenant) AddEmergencyContact(name, phone string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return fmt.Errorf("%w: emergency contact name is required", shared.ErrValidation)
	}
	if !shared.ValidPhone(phone) {
		return fmt.Errorf("%w: emergency contact phone must match +255XXXXXXXXX", shared.ErrValidation)
	}
	t.EmergencyContactName = name
	t.EmergencyContactPhone = phone
	t.touch()
	return nil
}

// Deactivate marks the tenant inactive. Already inactive is an error.
func (t *Tenant) Deactivate() error {
	if !t.Active {
		return fmt.Errorf("%w: tenant is already inactive", shared.ErrIllegalTransition)
	}
	t.Active = false
	t.touch()
	return nil
}

// Activate marks the tenant active. Already active is an error.
func (t *Tenant) Activate() error {
	if t.Active {
		return fmt.Errorf("%w: tenant is already active", shared.ErrIllegalTransition)
	}
	t.Active = true
	t.touch()
	return nil
}

func (t *Tenant) touch() {
	t.UpdatedAt = time.Now().UTC()
}

func (t *Tenant) validate() error {
	if t.FirstName == "" {
		return fmt.Errorf("%w: first name is required", shared.ErrValidation)
	}
	if t.LastName == "" {
		return fmt.Errorf("%w: last name is required", shared.ErrValidation)
	}
	if t.NationalID == "" {
		return fmt.Errorf("%w: national id is required", shared.ErrValidation)
	}
	if !strings.Contains(t.Email, "@") {
		return fmt.Errorf("%w: invalid email address", shared.ErrValidation)
	}
	if !shared.ValidPhone(t.Phone) {
		return fmt.Errorf("%w: phone must match +255XXXXXXXXX", shared.ErrValidation)
	}
	return nil
}
