package reporting

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/tenancy"
	"github.com/nyumbani/nyumbani/internal/unit"
)

// IncomeEntry is one tenancy's line in the monthly income report.
type IncomeEntry struct {
	TenancyID    uuid.UUID `json:"tenancy_id"`
	TenantName   string    `json:"tenant_name"`
	UnitNumber   string    `json:"unit_number"`
	PropertyName string    `json:"property_name"`
	ExpectedRent float64   `json:"expected_rent"`
	AmountPaid   float64   `json:"amount_paid"`
	Balance      float64   `json:"balance"`
}

// MonthlyIncomeReport summarizes expected versus collected rent for one
// calendar month across a landlord's open tenancies.
type MonthlyIncomeReport struct {
	Year             int           `json:"year"`
	Month            time.Month    `json:"month"`
	Currency         string        `json:"currency"`
	TotalExpected    float64       `json:"total_expected"`
	TotalPaid        float64       `json:"total_paid"`
	TotalOutstanding float64       `json:"total_outstanding"`
	Entries          []IncomeEntry `json:"entries"`
}

// VacancyEntry is one vacant unit in the vacancy report.
type VacancyEntry struct {
	UnitID       uuid.UUID `json:"unit_id"`
	UnitNumber   string    `json:"unit_number"`
	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`
	MonthlyRent  float64   `json:"monthly_rent"`
	Description  string    `json:"description,omitempty"`
}

// VacancyReport lists a landlord's vacant units.
type VacancyReport struct {
	ReportDate  time.Time      `json:"report_date"`
	TotalVacant int            `json:"total_vacant"`
	Entries     []VacancyEntry `json:"entries"`
}

// Dashboard carries the headline portfolio numbers.
type Dashboard struct {
	TotalProperties       int     `json:"total_properties"`
	TotalUnits            int     `json:"total_units"`
	OccupiedUnits         int     `json:"occupied_units"`
	VacantUnits           int     `json:"vacant_units"`
	TotalTenants          int     `json:"total_tenants"`
	ExpectedMonthlyIncome float64 `json:"expected_monthly_income"`
	ActualMonthlyIncome   float64 `json:"actual_monthly_income"`
}

// MonthlyIncome reduces the snapshot into an income report for one month.
// A tenancy contributes if it is ACTIVE or UPCOMING and its period overlaps
// the month. Expected rent is the full agreed rent; partial-month overlap
// is not prorated. Entries whose tenant, unit or property cannot be
// resolved are logged and skipped, never fatal.
func MonthlyIncome(s *Snapshot, year int, month time.Month, logger *slog.Logger) *MonthlyIncomeReport {
	report := &MonthlyIncomeReport{
		Year:     year,
		Month:    month,
		Currency: "TZS",
	}
	for i := range s.Tenancies {
		t := &s.Tenancies[i]
		if !t.Status.Open() || !t.OverlapsMonth(year, month) {
			continue
		}

		tn, tenantOK := s.Tenants[t.TenantID]
		u, unitOK := s.Units[t.UnitID]
		var propertyName string
		propertyOK := false
		if unitOK {
			if p, ok := s.Properties[u.PropertyID]; ok {
				propertyName = p.Name
				propertyOK = true
			}
		}
		if !tenantOK || !unitOK || !propertyOK {
			logger.Warn("skipping tenancy with unresolved references",
				slog.String("tenancy_id", t.ID.String()),
				slog.Bool("tenant_resolved", tenantOK),
				slog.Bool("unit_resolved", unitOK),
				slog.Bool("property_resolved", propertyOK))
			continue
		}

		expected := t.RentAmount
		var paid float64
		for _, p := range s.PaymentsByTenancy[t.ID] {
			if p.InMonth(year, month) {
				paid += p.Amount
			}
		}
		balance := expected - paid

		report.TotalExpected += expected
		report.TotalPaid += paid
		report.TotalOutstanding += balance
		report.Entries = append(report.Entries, IncomeEntry{
			TenancyID:    t.ID,
			TenantName:   tn.FullName(),
			UnitNumber:   u.Number,
			PropertyName: propertyName,
			ExpectedRent: expected,
			AmountPaid:   paid,
			Balance:      balance,
		})
	}
	return report
}

// Vacancy reduces the snapshot into the list of vacant units. Units whose
// property cannot be resolved are logged and skipped.
func Vacancy(s *Snapshot, asOf time.Time, logger *slog.Logger) *VacancyReport {
	report := &VacancyReport{ReportDate: asOf}
	for _, u := range s.Units {
		if u.Status != unit.StatusVacant {
			continue
		}
		p, ok := s.Properties[u.PropertyID]
		if !ok {
			logger.Warn("skipping vacant unit with unresolved property",
				slog.String("unit_id", u.ID.String()),
				slog.String("property_id", u.PropertyID.String()))
			continue
		}
		report.Entries = append(report.Entries, VacancyEntry{
			UnitID:       u.ID,
			UnitNumber:   u.Number,
			PropertyID:   p.ID,
			PropertyName: p.Name,
			MonthlyRent:  u.MonthlyRent,
			Description:  u.Description,
		})
	}
	sort.Slice(report.Entries, func(i, j int) bool {
		a, b := report.Entries[i], report.Entries[j]
		if a.PropertyName != b.PropertyName {
			return a.PropertyName < b.PropertyName
		}
		return a.UnitNumber < b.UnitNumber
	})
	report.TotalVacant = len(report.Entries)
	return report
}

// BuildDashboard reduces the snapshot into headline portfolio numbers for
// the given month.
func BuildDashboard(s *Snapshot, year int, month time.Month) *Dashboard {
	d := &Dashboard{
		TotalProperties: len(s.Properties),
		TotalUnits:      len(s.Units),
		TotalTenants:    len(s.Tenants),
	}
	for _, u := range s.Units {
		switch u.Status {
		case unit.StatusOccupied:
			d.OccupiedUnits++
		case unit.StatusVacant:
			d.VacantUnits++
		}
	}
	for i := range s.Tenancies {
		t := &s.Tenancies[i]
		if t.Status != tenancy.StatusActive {
			continue
		}
		d.ExpectedMonthlyIncome += t.RentAmount
		for _, p := range s.PaymentsByTenancy[t.ID] {
			if p.InMonth(year, month) {
				d.ActualMonthlyIncome += p.Amount
			}
		}
	}
	return d
}
