package property

// AddressRequest carries address fields on create/update.
type AddressRequest struct {
	Street     string `json:"street" validate:"required,max=200"`
	Ward       string `json:"ward,omitempty" validate:"omitempty,max=100"`
	District   string `json:"district" validate:"required,max=100"`
	Region     string `json:"region" validate:"required,max=100"`
	Country    string `json:"country,omitempty" validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
}

// CreateRequest creates a new property.
type CreateRequest struct {
	Code        string         `json:"code" validate:"required,max=50"`
	Name        string         `json:"name" validate:"required,max=200"`
	Description string         `json:"description,omitempty"`
	Type        Type           `json:"type" validate:"required,oneof=APARTMENT STANDALONE COMPLEX"`
	Address     AddressRequest `json:"address" validate:"required"`
}

// UpdateInfoRequest replaces name/description/type.
type UpdateInfoRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
	Type        Type   `json:"type" validate:"required,oneof=APARTMENT STANDALONE COMPLEX"`
}

// UpdateAmenitiesRequest replaces amenity fields.
type UpdateAmenitiesRequest struct {
	TotalFloors *int  `json:"total_floors,omitempty" validate:"omitempty,gte=1"`
	YearBuilt   *int  `json:"year_built,omitempty" validate:"omitempty,gte=1900"`
	HasParking  *bool `json:"has_parking,omitempty"`
	HasSecurity *bool `json:"has_security,omitempty"`
}

// UpdateChargesRequest replaces the common charge amount.
type UpdateChargesRequest struct {
	MonthlyCommonCharges float64 `json:"monthly_common_charges" validate:"gte=0"`
}

// ListRequest filters a landlord's properties.
type ListRequest struct {
	Status *Status `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE MAINTENANCE VACANT"`
	Limit  int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset int     `json:"offset" validate:"gte=0"`
}
