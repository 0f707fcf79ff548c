package tenancy

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nyumbani/nyumbani/internal/shared"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTenancyStartingTodayIsActive(t *testing.T) {
	today := time.Now().UTC()
	tn, err := New(uuid.New(), uuid.New(), today, today.AddDate(1, 0, 0), 350000, PeriodMonthly)
	require.NoError(t, err)
	require.Equal(t, StatusActive, tn.Status)
}

func TestNewTenancyStartingInPastIsActive(t *testing.T) {
	start := time.Now().UTC().AddDate(0, -1, 0)
	tn, err := New(uuid.New(), uuid.New(), start, start.AddDate(1, 0, 0), 350000, PeriodMonthly)
	require.NoError(t, err)
	require.Equal(t, StatusActive, tn.Status)
}

func TestNewTenancyStartingTomorrowIsUpcoming(t *testing.T) {
	start := time.Now().UTC().AddDate(0, 0, 1)
	tn, err := New(uuid.New(), uuid.New(), start, start.AddDate(1, 0, 0), 350000, PeriodMonthly)
	require.NoError(t, err)
	require.Equal(t, StatusUpcoming, tn.Status)
}

func TestNewTenancyRejectsInvertedDates(t *testing.T) {
	start := date(2026, 6, 1)
	_, err := New(uuid.New(), uuid.New(), start, start, 350000, PeriodMonthly)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))

	_, err = New(uuid.New(), uuid.New(), start, start.AddDate(0, 0, -1), 350000, PeriodMonthly)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestReconstructAcceptsSingleDayRow(t *testing.T) {
	// Terminating on the start date persists end_date == start_date;
	// reading such a row back must not fail validation.
	start := date(2026, 6, 1)
	now := time.Now().UTC()
	tn, err := Reconstruct(uuid.New(), uuid.New(), uuid.New(),
		start, start, 350000, PeriodMonthly, StatusTerminated, "", now, now)
	require.NoError(t, err)
	require.Equal(t, StatusTerminated, tn.Status)
	require.Equal(t, tn.StartDate, tn.EndDate)
}

func TestReconstructRejectsInvertedDates(t *testing.T) {
	start := date(2026, 6, 1)
	now := time.Now().UTC()
	_, err := Reconstruct(uuid.New(), uuid.New(), uuid.New(),
		start, start.AddDate(0, 0, -1), 350000, PeriodMonthly, StatusActive, "", now, now)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestNewTenancyRejectsNonPositiveRent(t *testing.T) {
	start := date(2026, 6, 1)
	_, err := New(uuid.New(), uuid.New(), start, start.AddDate(1, 0, 0), 0, PeriodMonthly)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestNewTenancyRejectsUnknownPeriod(t *testing.T) {
	start := date(2026, 6, 1)
	_, err := New(uuid.New(), uuid.New(), start, start.AddDate(1, 0, 0), 350000, Period("WEEKLY"))
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func activeTenancy(t *testing.T) *Tenancy {
	t.Helper()
	start := time.Now().UTC().AddDate(0, -2, 0)
	tn, err := New(uuid.New(), uuid.New(), start, start.AddDate(1, 0, 0), 350000, PeriodMonthly)
	require.NoError(t, err)
	require.Equal(t, StatusActive, tn.Status)
	return tn
}

func TestTerminateTruncatesEndDate(t *testing.T) {
	tn := activeTenancy(t)
	termination := tn.StartDate.AddDate(0, 3, 0)

	require.NoError(t, tn.Terminate(termination))
	require.Equal(t, StatusTerminated, tn.Status)
	require.Equal(t, termination, tn.EndDate)
}

func TestTerminateRejectsOutOfRangeDate(t *testing.T) {
	tn := activeTenancy(t)

	err := tn.Terminate(tn.StartDate.AddDate(0, 0, -1))
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))

	err = tn.Terminate(tn.EndDate.AddDate(0, 0, 1))
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))

	require.Equal(t, StatusActive, tn.Status)
}

func TestTerminateRejectsNonActive(t *testing.T) {
	tn := activeTenancy(t)
	require.NoError(t, tn.Terminate(tn.StartDate.AddDate(0, 1, 0)))

	err := tn.Terminate(tn.StartDate.AddDate(0, 2, 0))
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
}

func TestCancelUpcoming(t *testing.T) {
	start := time.Now().UTC().AddDate(0, 1, 0)
	tn, err := New(uuid.New(), uuid.New(), start, start.AddDate(1, 0, 0), 350000, PeriodMonthly)
	require.NoError(t, err)

	require.NoError(t, tn.Cancel())
	require.Equal(t, StatusTerminated, tn.Status)
}

func TestCancelRejectsActive(t *testing.T) {
	tn := activeTenancy(t)
	err := tn.Cancel()
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
}

func TestMarkExpired(t *testing.T) {
	tn := activeTenancy(t)

	err := tn.MarkExpired(tn.EndDate)
	require.Error(t, err)

	require.NoError(t, tn.MarkExpired(tn.EndDate.AddDate(0, 0, 1)))
	require.Equal(t, StatusExpired, tn.Status)

	err = tn.MarkExpired(tn.EndDate.AddDate(0, 0, 2))
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
}

func TestActivateUpcoming(t *testing.T) {
	start := time.Now().UTC().AddDate(0, 0, 2)
	tn, err := New(uuid.New(), uuid.New(), start, start.AddDate(1, 0, 0), 350000, PeriodMonthly)
	require.NoError(t, err)

	err = tn.Activate(time.Now().UTC())
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))

	require.NoError(t, tn.Activate(start))
	require.Equal(t, StatusActive, tn.Status)
}

func TestAttachContractIsIdempotentMetadata(t *testing.T) {
	tn := activeTenancy(t)

	require.NoError(t, tn.AttachContract("contracts/abc.pdf"))
	require.Equal(t, "contracts/abc.pdf", tn.ContractURL)
	require.Equal(t, StatusActive, tn.Status)

	require.NoError(t, tn.AttachContract("contracts/abc.pdf"))
	require.Equal(t, "contracts/abc.pdf", tn.ContractURL)

	err := tn.AttachContract("  ")
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestOverlapsMonth(t *testing.T) {
	tn, err := Reconstruct(uuid.New(), uuid.New(), uuid.New(),
		date(2026, 3, 15), date(2026, 6, 10), 350000,
		PeriodMonthly, StatusActive, "", time.Now(), time.Now())
	require.NoError(t, err)

	require.False(t, tn.OverlapsMonth(2026, time.February))
	require.True(t, tn.OverlapsMonth(2026, time.March))
	require.True(t, tn.OverlapsMonth(2026, time.April))
	require.True(t, tn.OverlapsMonth(2026, time.June))
	require.False(t, tn.OverlapsMonth(2026, time.July))
}
