package reporting

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nyumbani/nyumbani/internal/payment"
	"github.com/nyumbani/nyumbani/internal/property"
	"github.com/nyumbani/nyumbani/internal/tenancy"
	"github.com/nyumbani/nyumbani/internal/tenant"
	"github.com/nyumbani/nyumbani/internal/unit"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type snapshotFixture struct {
	snap     *Snapshot
	tenancy  tenancy.Tenancy
	unit     unit.Unit
	property property.Property
	tenant   tenant.Tenant
}

func buildSnapshot() *snapshotFixture {
	landlordID := uuid.New()
	p := property.Property{ID: uuid.New(), Name: "Mikocheni Court", LandlordID: landlordID}
	u := unit.Unit{ID: uuid.New(), PropertyID: p.ID, Number: "A1", MonthlyRent: 500_000, Status: unit.StatusOccupied}
	tn := tenant.Tenant{ID: uuid.New(), FirstName: "Asha", LastName: "Mushi"}
	ty := tenancy.Tenancy{
		ID:         uuid.New(),
		TenantID:   tn.ID,
		UnitID:     u.ID,
		StartDate:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		RentAmount: 500_000,
		Period:     tenancy.PeriodMonthly,
		Status:     tenancy.StatusActive,
	}
	snap := &Snapshot{
		LandlordID:        landlordID,
		Properties:        map[uuid.UUID]property.Property{p.ID: p},
		Units:             map[uuid.UUID]unit.Unit{u.ID: u},
		Tenancies:         []tenancy.Tenancy{ty},
		Tenants:           map[uuid.UUID]tenant.Tenant{tn.ID: tn},
		PaymentsByTenancy: map[uuid.UUID][]payment.Payment{},
	}
	return &snapshotFixture{snap: snap, tenancy: ty, unit: u, property: p, tenant: tn}
}

func paidOn(tenancyID uuid.UUID, amount float64, date time.Time) payment.Payment {
	return payment.Payment{
		ID:          uuid.New(),
		TenancyID:   tenancyID,
		Amount:      amount,
		PaymentDate: date,
		Status:      payment.StatusPaid,
	}
}

func TestMonthlyIncomeTotalsBalance(t *testing.T) {
	f := buildSnapshot()
	f.snap.PaymentsByTenancy[f.tenancy.ID] = []payment.Payment{
		paidOn(f.tenancy.ID, 300_000, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)),
		paidOn(f.tenancy.ID, 100_000, time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)),
		// Outside the report month, must not count.
		paidOn(f.tenancy.ID, 500_000, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)),
	}

	report := MonthlyIncome(f.snap, 2026, time.March, testLogger())

	require.Len(t, report.Entries, 1)
	entry := report.Entries[0]
	require.Equal(t, "Asha Mushi", entry.TenantName)
	require.Equal(t, "A1", entry.UnitNumber)
	require.Equal(t, "Mikocheni Court", entry.PropertyName)
	require.Equal(t, 500_000.0, entry.ExpectedRent)
	require.Equal(t, 400_000.0, entry.AmountPaid)
	require.Equal(t, 100_000.0, entry.Balance)
	require.Equal(t, "TZS", report.Currency)
	require.Equal(t, report.TotalExpected-report.TotalPaid, report.TotalOutstanding)
}

func TestMonthlyIncomeFiltersByOverlap(t *testing.T) {
	f := buildSnapshot()

	before := MonthlyIncome(f.snap, 2025, time.December, testLogger())
	require.Empty(t, before.Entries)
	require.Zero(t, before.TotalExpected)

	after := MonthlyIncome(f.snap, 2027, time.January, testLogger())
	require.Empty(t, after.Entries)
}

func TestMonthlyIncomeSkipsClosedTenancies(t *testing.T) {
	f := buildSnapshot()
	f.snap.Tenancies[0].Status = tenancy.StatusTerminated

	report := MonthlyIncome(f.snap, 2026, time.March, testLogger())
	require.Empty(t, report.Entries)
}

func TestMonthlyIncomeSkipsUnresolvedReferences(t *testing.T) {
	f := buildSnapshot()
	delete(f.snap.Tenants, f.tenant.ID)

	report := MonthlyIncome(f.snap, 2026, time.March, testLogger())
	require.Empty(t, report.Entries)
	require.Zero(t, report.TotalExpected)
}

func TestMonthlyIncomeNoProration(t *testing.T) {
	f := buildSnapshot()
	// Tenancy starts mid-month; the full rent is still expected.
	f.snap.Tenancies[0].StartDate = time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	report := MonthlyIncome(f.snap, 2026, time.March, testLogger())
	require.Len(t, report.Entries, 1)
	require.Equal(t, 500_000.0, report.Entries[0].ExpectedRent)
}

func TestVacancyListsVacantUnitsSorted(t *testing.T) {
	f := buildSnapshot()
	v1 := unit.Unit{ID: uuid.New(), PropertyID: f.property.ID, Number: "B2", MonthlyRent: 350_000, Status: unit.StatusVacant}
	v2 := unit.Unit{ID: uuid.New(), PropertyID: f.property.ID, Number: "A9", MonthlyRent: 400_000, Status: unit.StatusVacant}
	orphan := unit.Unit{ID: uuid.New(), PropertyID: uuid.New(), Number: "Z1", Status: unit.StatusVacant}
	f.snap.Units[v1.ID] = v1
	f.snap.Units[v2.ID] = v2
	f.snap.Units[orphan.ID] = orphan

	asOf := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	report := Vacancy(f.snap, asOf, testLogger())

	require.Equal(t, 2, report.TotalVacant)
	require.Equal(t, asOf, report.ReportDate)
	require.Equal(t, "A9", report.Entries[0].UnitNumber)
	require.Equal(t, "B2", report.Entries[1].UnitNumber)
}

func TestBuildDashboard(t *testing.T) {
	f := buildSnapshot()
	vacant := unit.Unit{ID: uuid.New(), PropertyID: f.property.ID, Number: "B2", Status: unit.StatusVacant}
	f.snap.Units[vacant.ID] = vacant
	f.snap.PaymentsByTenancy[f.tenancy.ID] = []payment.Payment{
		paidOn(f.tenancy.ID, 500_000, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)),
	}

	d := BuildDashboard(f.snap, 2026, time.March)

	require.Equal(t, 1, d.TotalProperties)
	require.Equal(t, 2, d.TotalUnits)
	require.Equal(t, 1, d.OccupiedUnits)
	require.Equal(t, 1, d.VacantUnits)
	require.Equal(t, 1, d.TotalTenants)
	require.Equal(t, 500_000.0, d.ExpectedMonthlyIncome)
	require.Equal(t, 500_000.0, d.ActualMonthlyIncome)
}

type staticSource struct {
	properties []property.Property
	units      []unit.Unit
	tenancies  []tenancy.Tenancy
	payments   []payment.Payment
	tenants    []tenant.Tenant
}

func (s *staticSource) Properties(context.Context, uuid.UUID) ([]property.Property, error) {
	return s.properties, nil
}
func (s *staticSource) Units(context.Context, uuid.UUID) ([]unit.Unit, error) {
	return s.units, nil
}
func (s *staticSource) Tenancies(context.Context, uuid.UUID) ([]tenancy.Tenancy, error) {
	return s.tenancies, nil
}
func (s *staticSource) Payments(context.Context, uuid.UUID) ([]payment.Payment, error) {
	return s.payments, nil
}
func (s *staticSource) Tenants(context.Context, uuid.UUID) ([]tenant.Tenant, error) {
	return s.tenants, nil
}

func TestServiceMonthlyIncomeWithoutCache(t *testing.T) {
	f := buildSnapshot()
	src := &staticSource{
		properties: []property.Property{f.property},
		units:      []unit.Unit{f.unit},
		tenancies:  []tenancy.Tenancy{f.tenancy},
		tenants:    []tenant.Tenant{f.tenant},
		payments: []payment.Payment{
			paidOn(f.tenancy.ID, 250_000, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)),
		},
	}
	svc := NewService(src, nil, testLogger())

	report, err := svc.MonthlyIncome(context.Background(), f.snap.LandlordID, 2026, time.March)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	require.Equal(t, 250_000.0, report.TotalPaid)
	require.Equal(t, 250_000.0, report.TotalOutstanding)
}
