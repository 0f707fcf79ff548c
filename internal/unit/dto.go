package unit

// CreateRequest is the payload to add a unit to a property.
type CreateRequest struct {
	Number      string  `json:"number" validate:"required,max=50"`
	MonthlyRent float64 `json:"monthly_rent" validate:"gte=0"`
	Description string  `json:"description" validate:"max=1000"`
	Size        string  `json:"size" validate:"max=50"`
}

// UpdateRequest replaces a unit's mutable descriptive fields.
type UpdateRequest struct {
	Number      string  `json:"number" validate:"required,max=50"`
	MonthlyRent float64 `json:"monthly_rent" validate:"gte=0"`
	Description string  `json:"description" validate:"max=1000"`
	Size        string  `json:"size" validate:"max=50"`
}

// ListRequest filters and pages a unit listing.
type ListRequest struct {
	Status *Status
	Limit  int
	Offset int
}

// StatusRequest moves a unit between manually controlled statuses.
// OCCUPIED is not accepted here; it is owned by the tenancy workflow.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=VACANT UNDER_MAINTENANCE RESERVED"`
}
