package payment

import (
	"time"

	"github.com/google/uuid"
)

// RecordRequest adds a ledger entry to a tenancy.
type RecordRequest struct {
	TenancyID   uuid.UUID `json:"tenancy_id" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	PaymentDate time.Time `json:"payment_date" validate:"required"`
	Reference   string    `json:"reference" validate:"omitempty,max=200"`
}

// UpdateRequest replaces a ledger entry's fields. The tenancy cannot change.
type UpdateRequest struct {
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	PaymentDate time.Time `json:"payment_date" validate:"required"`
	Reference   string    `json:"reference" validate:"omitempty,max=200"`
	Status      Status    `json:"status" validate:"required,oneof=PENDING PAID PARTIAL OVERDUE REFUNDED"`
}
