package landlord

// UpdatePersonalRequest replaces the landlord's name.
type UpdatePersonalRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100"`
}

// UpdateContactRequest replaces email and phone.
type UpdateContactRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,e164"`
}

// UpdateIdentityRequest records government identifiers.
type UpdateIdentityRequest struct {
	NationalID string `json:"national_id" validate:"omitempty,max=50"`
	TaxID      string `json:"tax_id" validate:"omitempty,max=50"`
}
