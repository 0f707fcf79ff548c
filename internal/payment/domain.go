package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Status marks how a recorded payment stands. The ledger never derives
// these itself (it does not compare amounts against rent); the landlord
// records them and the reporting engine does the arithmetic.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusPartial  Status = "PARTIAL"
	StatusOverdue  Status = "OVERDUE"
	StatusRefunded Status = "REFUNDED"
)

// Valid reports whether s names a known payment status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusPartial, StatusOverdue, StatusRefunded:
		return true
	}
	return false
}

// Payment is one ledger entry against a tenancy. The tenancy reference is
// immutable: a misfiled payment is corrected by delete and re-record, never
// by reparenting.
type Payment struct {
	ID          uuid.UUID `json:"id"`
	TenancyID   uuid.UUID `json:"tenancy_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Status      Status    `json:"status"`
	Reference   string    `json:"reference,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New records a payment. New entries default to PAID.
func New(tenancyID uuid.UUID, amount float64, paymentDate time.Time, reference string) (*Payment, error) {
	now := time.Now().UTC()
	p := &Payment{
		ID:          uuid.New(),
		TenancyID:   tenancyID,
		Amount:      amount,
		PaymentDate: day(paymentDate),
		Status:      StatusPaid,
		Reference:   strings.TrimSpace(reference),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces amount, date, reference and status. The owning tenancy
// never changes.
func (p *Payment) Update(amount float64, paymentDate time.Time, reference string, status Status) error {
	prev := *p
	p.Amount = amount
	p.PaymentDate = day(paymentDate)
	p.Reference = strings.TrimSpace(reference)
	p.Status = status
	if err := p.validate(); err != nil {
		*p = prev
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// InMonth reports whether the payment date falls in the given calendar month.
func (p *Payment) InMonth(year int, month time.Month) bool {
	return p.PaymentDate.Year() == year && p.PaymentDate.Month() == month
}

func (p *Payment) validate() error {
	if p.TenancyID == uuid.Nil {
		return fmt.Errorf("%w: tenancy id is required", shared.ErrValidation)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	if p.PaymentDate.IsZero() {
		return fmt.Errorf("%w: payment date is required", shared.ErrValidation)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: invalid payment status %q", shared.ErrValidation, p.Status)
	}
	return nil
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
