package tenancy

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Status is the tenancy lifecycle state.
//
//	UPCOMING -> ACTIVE -> {EXPIRED, TERMINATED}
//	UPCOMING -> TERMINATED (cancel before start)
//
// EXPIRED and TERMINATED are terminal.
type Status string

const (
	StatusUpcoming   Status = "UPCOMING"
	StatusActive     Status = "ACTIVE"
	StatusExpired    Status = "EXPIRED"
	StatusTerminated Status = "TERMINATED"
)

// Valid reports whether s names a known tenancy status.
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusExpired, StatusTerminated:
		return true
	}
	return false
}

// Open reports whether the tenancy still holds (or will hold) its unit.
func (s Status) Open() bool {
	return s == StatusUpcoming || s == StatusActive
}

// Period is the agreed rent payment cadence.
type Period string

const (
	PeriodMonthly    Period = "MONTHLY"
	PeriodQuarterly  Period = "QUARTERLY"
	PeriodSemiAnnual Period = "SEMI_ANNUAL"
	PeriodAnnual     Period = "ANNUAL"
)

// Valid reports whether p names a known payment period.
func (p Period) Valid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodSemiAnnual, PeriodAnnual:
		return true
	}
	return false
}

// Tenancy binds a tenant to a unit for a date range at an agreed rent.
// TenantID and UnitID never change after creation; a new agreement means
// a new tenancy. At most one UPCOMING or ACTIVE tenancy may exist per
// unit at any time.
type Tenancy struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	UnitID      uuid.UUID `json:"unit_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	RentAmount  float64   `json:"rent_amount"`
	Period      Period    `json:"period"`
	Status      Status    `json:"status"`
	ContractURL string    `json:"contract_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates a tenancy. One starting after today is UPCOMING; one
// starting today or earlier is ACTIVE. Dates are compared at day
// granularity in UTC.
func New(tenantID, unitID uuid.UUID, start, end time.Time, rent float64, period Period) (*Tenancy, error) {
	now := time.Now().UTC()
	t := &Tenancy{
		ID:         uuid.New(),
		TenantID:   tenantID,
		UnitID:     unitID,
		StartDate:  day(start),
		EndDate:    day(end),
		RentAmount: rent,
		Period:     period,
		Status:     initialStatus(start, now),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if t.EndDate.Before(t.StartDate) || t.EndDate.Equal(t.StartDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", shared.ErrValidation)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reconstruct rebuilds a tenancy from persisted fields.
func Reconstruct(id, tenantID, unitID uuid.UUID, start, end time.Time, rent float64,
	period Period, status Status, contractURL string, createdAt, updatedAt time.Time) (*Tenancy, error) {
	t := &Tenancy{
		ID:          id,
		TenantID:    tenantID,
		UnitID:      unitID,
		StartDate:   day(start),
		EndDate:     day(end),
		RentAmount:  rent,
		Period:      period,
		Status:      status,
		ContractURL: contractURL,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Terminate ends an ACTIVE tenancy early. The date must fall within
// [start, end]; the end date is truncated to it. Out-of-range dates are
// rejected, never clamped.
func (t *Tenancy) Terminate(date time.Time) error {
	if t.Status != StatusActive {
		return fmt.Errorf("%w: only an active tenancy can be terminated (status %s)", shared.ErrIllegalTransition, t.Status)
	}
	d := day(date)
	if d.Before(t.StartDate) || d.After(t.EndDate) {
		return fmt.Errorf("%w: termination date must fall within the tenancy period", shared.ErrValidation)
	}
	t.EndDate = d
	t.Status = StatusTerminated
	t.touch()
	return nil
}

// Cancel voids an UPCOMING tenancy before it starts.
func (t *Tenancy) Cancel() error {
	if t.Status != StatusUpcoming {
		return fmt.Errorf("%w: only an upcoming tenancy can be cancelled (status %s)", shared.ErrIllegalTransition, t.Status)
	}
	t.Status = StatusTerminated
	t.touch()
	return nil
}

// MarkExpired moves an ACTIVE tenancy past its end date to EXPIRED.
func (t *Tenancy) MarkExpired(asOf time.Time) error {
	if t.Status != StatusActive {
		return fmt.Errorf("%w: only an active tenancy can expire (status %s)", shared.ErrIllegalTransition, t.Status)
	}
	if !day(asOf).After(t.EndDate) {
		return fmt.Errorf("%w: tenancy has not reached its end date", shared.ErrValidation)
	}
	t.Status = StatusExpired
	t.touch()
	return nil
}

// Activate moves an UPCOMING tenancy whose start date has arrived to ACTIVE.
func (t *Tenancy) Activate(asOf time.Time) error {
	if t.Status != StatusUpcoming {
		return fmt.Errorf("%w: only an upcoming tenancy can activate (status %s)", shared.ErrIllegalTransition, t.Status)
	}
	if day(asOf).Before(t.StartDate) {
		return fmt.Errorf("%w: tenancy has not reached its start date", shared.ErrValidation)
	}
	t.Status = StatusActive
	t.touch()
	return nil
}

// AttachContract records the rendered contract document reference.
// Idempotent metadata update with no state-machine effect.
func (t *Tenancy) AttachContract(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("%w: contract reference is required", shared.ErrValidation)
	}
	t.ContractURL = url
	t.touch()
	return nil
}

// OverlapsMonth reports whether the tenancy period intersects the given
// calendar month.
func (t *Tenancy) OverlapsMonth(year int, month time.Month) bool {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return !t.StartDate.After(last) && !t.EndDate.Before(first)
}

func (t *Tenancy) touch() {
	t.UpdatedAt = time.Now().UTC()
}

func (t *Tenancy) validate() error {
	if t.TenantID == uuid.Nil {
		return fmt.Errorf("%w: tenant id is required", shared.ErrValidation)
	}
	if t.UnitID == uuid.Nil {
		return fmt.Errorf("%w: unit id is required", shared.ErrValidation)
	}
	// Terminating on the start date collapses the period to a single day,
	// so beyond creation only end >= start is required.
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("%w: end date must not precede start date", shared.ErrValidation)
	}
	if t.RentAmount <= 0 {
		return fmt.Errorf("%w: rent amount must be positive", shared.ErrValidation)
	}
	if !t.Period.Valid() {
		return fmt.Errorf("%w: invalid payment period %q", shared.ErrValidation, t.Period)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: invalid tenancy status %q", shared.ErrValidation, t.Status)
	}
	return nil
}

func initialStatus(start, now time.Time) Status {
	if day(start).After(day(now)) {
		return StatusUpcoming
	}
	return StatusActive
}

// day truncates to midnight UTC; tenancy dates carry no time component.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
