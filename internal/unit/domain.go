package unit

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Status is the unit occupancy state. OCCUPIED is derived truth shared with
// the tenancy aggregate: only the tenancy service flips a unit in or out of
// OCCUPIED, inside the same transaction that creates or ends the tenancy.
type Status string

const (
	StatusVacant           Status = "VACANT"
	StatusOccupied         Status = "OCCUPIED"
	StatusUnderMaintenance Status = "UNDER_MAINTENANCE"
	StatusReserved         Status = "RESERVED"
)

// Valid reports whether s names a known unit status.
func (s Status) Valid() bool {
	switch s {
	case StatusVacant, StatusOccupied, StatusUnderMaintenance, StatusReserved:
		return true
	}
	return false
}

// Unit is an individually rentable space within a property.
type Unit struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"property_id"`
	Number      string    `json:"number"`
	Description string    `json:"description,omitempty"`
	MonthlyRent float64   `json:"monthly_rent"`
	Size        string    `json:"size,omitempty"`
	ImageURLs   []string  `json:"image_urls,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates a unit. Units always start VACANT.
func New(propertyID uuid.UUID, number string, monthlyRent float64, description string) (*Unit, error) {
	now := time.Now().UTC()
	u := &Unit{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		Number:      strings.TrimSpace(number),
		Description: strings.TrimSpace(description),
		MonthlyRent: monthlyRent,
		Status:      StatusVacant,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Reconstruct rebuilds a unit from persisted fields, timestamps included.
func Reconstruct(id, propertyID uuid.UUID, number, description string, monthlyRent float64,
	size string, imageURLs []string, status Status, createdAt, updatedAt time.Time) (*Unit, error) {
	u := &Unit{
		ID:          id,
		PropertyID:  propertyID,
		Number:      number,
		Description: description,
		MonthlyRent: monthlyRent,
		Size:        size,
		ImageURLs:   imageURLs,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateDetails replaces number, rent, description and size.
func (u *Unit) UpdateDetails(number string, monthlyRent float64, description, size string) error {
	prev := *u
	u.Number = strings.TrimSpace(number)
	u.MonthlyRent = monthlyRent
	u.Description = strings.TrimSpace(description)
	u.Size = strings.TrimSpace(size)
	if err := u.validate(); err != nil {
		*u = prev
		return err
	}
	u.touch()
	return nil
}

// AddImageURL appends an image reference.
func (u *Unit) AddImageURL(url string) {
	u.ImageURLs = append(u.ImageURLs, url)
	u.touch()
}

// ChangeStatus moves the unit to a new status. Re-applying the current
// status is an error, and OCCUPIED cannot be set here at all; occupancy
// exists only while an open tenancy does and is written by that workflow.
func (u *Unit) ChangeStatus(newStatus Status) error {
	if !newStatus.Valid() {
		return fmt.Errorf("%w: invalid unit status %q", shared.ErrValidation, newStatus)
	}
	if newStatus == StatusOccupied {
		return fmt.Errorf("%w: occupancy is set by the tenancy workflow", shared.ErrIllegalTransition)
	}
	if u.Status == newStatus {
		return fmt.Errorf("%w: unit is already %s", shared.ErrIllegalTransition, newStatus)
	}
	u.Status = newStatus
	u.touch()
	return nil
}

func (u *Unit) touch() {
	u.UpdatedAt = time.Now().UTC()
}

func (u *Unit) validate() error {
	if u.PropertyID == uuid.Nil {
		return fmt.Errorf("%w: property id is required", shared.ErrValidation)
	}
	if u.Number == "" {
		return fmt.Errorf("%w: unit number is required", shared.ErrValidation)
	}
	if u.MonthlyRent < 0 {
		return fmt.Errorf("%w: monthly rent must be non-negative", shared.ErrValidation)
	}
	if !u.Status.Valid() {
		return fmt.Errorf("%w: invalid unit status %q", shared.ErrValidation, u.Status)
	}
	return nil
}
