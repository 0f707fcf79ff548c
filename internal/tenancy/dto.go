package tenancy

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest drafts a tenancy agreement against a vacant unit.
type CreateRequest struct {
	TenantID   uuid.UUID `json:"tenant_id" validate:"required"`
	UnitID     uuid.UUID `json:"unit_id" validate:"required"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	RentAmount float64   `json:"rent_amount" validate:"required,gt=0"`
	Period     Period    `json:"period" validate:"required,oneof=MONTHLY QUARTERLY SEMI_ANNUAL ANNUAL"`
}

// TerminateRequest ends an active tenancy on the given date.
type TerminateRequest struct {
	Date time.Time `json:"date" validate:"required"`
}

// AttachContractRequest records a rendered contract reference.
type AttachContractRequest struct {
	URL string `json:"url" validate:"required,max=1000"`
}

// ListRequest filters a landlord's tenancies.
type ListRequest struct {
	Status *Status
	UnitID *uuid.UUID
	Limit  int
	Offset int
}
