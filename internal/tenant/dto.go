package tenant

// CreateRequest registers a tenant identity.
type CreateRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,e164"`
	NationalID string `json:"national_id" validate:"required,max=50"`
}

// UpdateRequest replaces a tenant's name and contact fields.
type UpdateRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,e164"`
}

// EmergencyContactRequest records an emergency contact.
type EmergencyContactRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone" validate:"required,e164"`
}
