package property

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Type classifies a property.
type Type string

const (
	TypeApartment  Type = "APARTMENT"
	TypeStandalone Type = "STANDALONE"
	TypeComplex    Type = "COMPLEX"
)

// Status is the property lifecycle state.
type Status string

const (
	StatusActive      Status = "ACTIVE"
	StatusMaintenance Status = "MAINTENANCE"
	StatusVacant      Status = "VACANT"
)

// Address is the postal address value for a property.
type Address struct {
	Street     string `json:"street"`
	Ward       string `json:"ward,omitempty"`
	District   string `json:"district"`
	Region     string `json:"region"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code,omitempty"`
}

// NewAddress validates and normalises an address value.
func NewAddress(street, ward, district, region, country, postalCode string) (Address, error) {
	a := Address{
		Street:     strings.TrimSpace(street),
		Ward:       strings.TrimSpace(ward),
		District:   strings.TrimSpace(district),
		Region:     strings.TrimSpace(region),
		Country:    strings.TrimSpace(country),
		PostalCode: strings.TrimSpace(postalCode),
	}
	if a.Country == "" {
		a.Country = shared.DefaultCountry
	}
	if a.Street == "" {
		return Address{}, fmt.Errorf("%w: street address is required", shared.ErrValidation)
	}
	if a.District == "" {
		return Address{}, fmt.Errorf("%w: district is required", shared.ErrValidation)
	}
	if a.Region == "" {
		return Address{}, fmt.Errorf("%w: region is required", shared.ErrValidation)
	}
	if !shared.ValidRegion(a.Region) {
		return Address{}, fmt.Errorf("%w: unknown region %q", shared.ErrValidation, a.Region)
	}
	return a, nil
}

// Full renders the address as a single display line.
func (a Address) Full() string {
	parts := []string{a.Street}
	if a.Ward != "" {
		parts = append(parts, a.Ward)
	}
	parts = append(parts, a.District, a.Region, a.Country)
	return strings.Join(parts, ", ")
}

// Property is a building or compound owned by a landlord, subdivided into units.
// LandlordID is fixed at creation; ownership never transfers through mutation.
type Property struct {
	ID                   uuid.UUID `json:"id"`
	Code                 string    `json:"code"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	Type                 Type      `json:"type"`
	LandlordID           uuid.UUID `json:"landlord_id"`
	Address              Address   `json:"address"`
	TotalFloors          int       `json:"total_floors"`
	YearBuilt            *int      `json:"year_built,omitempty"`
	HasParking           bool      `json:"has_parking"`
	HasSecurity          bool      `json:"has_security"`
	MonthlyCommonCharges float64   `json:"monthly_common_charges"`
	Status               Status    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// New creates a property with defaults: ACTIVE, one floor, zero common charges.
func New(code, name string, typ Type, landlordID uuid.UUID, addr Address) (*Property, error) {
	now := time.Now().UTC()
	p := &Property{
		ID:          uuid.New(),
		Code:        strings.TrimSpace(code),
		Name:        strings.TrimSpace(name),
		Type:        typ,
		LandlordID:  landlordID,
		Address:     addr,
		TotalFloors: 1,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reconstruct rebuilds a property from persisted fields, timestamps included.
func Reconstruct(id uuid.UUID, code, name, description string, typ Type, landlordID uuid.UUID,
	addr Address, totalFloors int, yearBuilt *int, hasParking, hasSecurity bool,
	monthlyCommonCharges float64, status Status, createdAt, updatedAt time.Time) (*Property, error) {
	p := &Property{
		ID:                   id,
		Code:                 code,
		Name:                 name,
		Description:          description,
		Type:                 typ,
		LandlordID:           landlordID,
		Address:              addr,
		TotalFloors:          totalFloors,
		YearBuilt:            yearBuilt,
		HasParking:           hasParking,
		HasSecurity:          hasSecurity,
		MonthlyCommonCharges: monthlyCommonCharges,
		Status:               status,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateInfo replaces name, description and type.
func (p *Property) UpdateInfo(name, description string, typ Type) error {
	prev := *p
	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.Type = typ
	if err := p.validate(); err != nil {
		*p = prev
		return err
	}
	p.touch()
	return nil
}

// UpdateAddress replaces the postal address.
func (p *Property) UpdateAddress(addr Address) error {
	prev := *p
	p.Address = addr
	if err := p.validate(); err != nil {
		*p = prev
		return err
	}
	p.touch()
	return nil
}

// UpdateAmenities replaces amenity fields. Nil pointers keep the current value,
// except year built which may be cleared.
func (p *Property) UpdateAmenities(totalFloors *int, yearBuilt *int, hasParking, hasSecurity *bool) error {
	prev := *p
	if totalFloors != nil {
		p.TotalFloors = *totalFloors
	}
	p.YearBuilt = yearBuilt
	if hasParking != nil {
		p.HasParking = *hasParking
	}
	if hasSecurity != nil {
		p.HasSecurity = *hasSecurity
	}
	if err := p.validate(); err != nil {
		*p = prev
		return err
	}
	p.touch()
	return nil
}

// UpdateCommonCharges replaces the monthly common charge amount.
func (p *Property) UpdateCommonCharges(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%w: common charges cannot be negative", shared.ErrValidation)
	}
	p.MonthlyCommonCharges = amount
	p.touch()
	return nil
}

// MarkMaintenance transitions the property to MAINTENANCE.
// Re-marking is an error, not a silent no-op.
func (p *Property) MarkMaintenance() error {
	if p.Status == StatusMaintenance {
		return fmt.Errorf("%w: property is already under maintenance", shared.ErrIllegalTransition)
	}
	p.Status = StatusMaintenance
	p.touch()
	return nil
}

// MarkActive transitions the property to ACTIVE.
func (p *Property) MarkActive() error {
	if p.Status == StatusActive {
		return fmt.Errorf("%w: property is already active", shared.ErrIllegalTransition)
	}
	p.Status = StatusActive
	p.touch()
	return nil
}

// MarkVacant transitions the property to VACANT.
func (p *Property) MarkVacant() error {
	if p.Status == StatusVacant {
		return fmt.Errorf("%w: property is already vacant", shared.ErrIllegalTransition)
	}
	p.Status = StatusVacant
	p.touch()
	return nil
}

func (p *Property) touch() {
	p.UpdatedAt = time.Now().UTC()
}

func (p *Property) validate() error {
	if p.Code == "" {
		return fmt.Errorf("%w: property code is required", shared.ErrValidation)
	}
	if len(p.Code) > 50 {
		return fmt.Errorf("%w: property code cannot exceed 50 characters", shared.ErrValidation)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: property name is required", shared.ErrValidation)
	}
	if len(p.Name) > 200 {
		return fmt.Errorf("%w: property name cannot exceed 200 characters", shared.ErrValidation)
	}
	switch p.Type {
	case TypeApartment, TypeStandalone, TypeComplex:
	default:
		return fmt.Errorf("%w: invalid property type %q", shared.ErrValidation, p.Type)
	}
	if p.LandlordID == uuid.Nil {
		return fmt.Errorf("%w: landlord id is required", shared.ErrValidation)
	}
	if p.Address.Street == "" {
		return fmt.Errorf("%w: address is required", shared.ErrValidation)
	}
	if p.TotalFloors < 1 {
		return fmt.Errorf("%w: total floors must be at least 1", shared.ErrValidation)
	}
	if p.YearBuilt != nil && (*p.YearBuilt < 1900 || *p.YearBuilt > time.Now().Year()) {
		return fmt.Errorf("%w: year built must be between 1900 and the current year", shared.ErrValidation)
	}
	if p.MonthlyCommonCharges < 0 {
		return fmt.Errorf("%w: common charges cannot be negative", shared.ErrValidation)
	}
	return nil
}
