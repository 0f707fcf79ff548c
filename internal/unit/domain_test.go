package unit

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nyumbani/nyumbani/internal/shared"
)

func TestNewUnitStartsVacant(t *testing.T) {
	propertyID := uuid.New()
	u, err := New(propertyID, "A-12", 350000, "2 rooms, shared bathroom")
	require.NoError(t, err)
	require.Equal(t, StatusVacant, u.Status)
	require.Equal(t, propertyID, u.PropertyID)
	require.Equal(t, "A-12", u.Number)
	require.NotEqual(t, uuid.Nil, u.ID)
}

func TestNewUnitRequiresNumber(t *testing.T) {
	_, err := New(uuid.New(), "  ", 350000, "")
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestNewUnitRejectsNegativeRent(t *testing.T) {
	_, err := New(uuid.New(), "A-12", -1, "")
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestUpdateDetailsRollsBackOnInvalid(t *testing.T) {
	u, err := New(uuid.New(), "A-12", 350000, "")
	require.NoError(t, err)

	err = u.UpdateDetails("", 400000, "", "")
	require.Error(t, err)
	require.Equal(t, "A-12", u.Number)
	require.Equal(t, 350000.0, u.MonthlyRent)

	require.NoError(t, u.UpdateDetails("B-3", 400000, "renovated", "25sqm"))
	require.Equal(t, "B-3", u.Number)
	require.Equal(t, 400000.0, u.MonthlyRent)
	require.Equal(t, "25sqm", u.Size)
}

func TestChangeStatus(t *testing.T) {
	u, err := New(uuid.New(), "A-12", 350000, "")
	require.NoError(t, err)

	require.NoError(t, u.ChangeStatus(StatusUnderMaintenance))
	require.Equal(t, StatusUnderMaintenance, u.Status)

	require.NoError(t, u.ChangeStatus(StatusReserved))
	require.NoError(t, u.ChangeStatus(StatusVacant))
}

func TestChangeStatusRejectsNoOp(t *testing.T) {
	u, err := New(uuid.New(), "A-12", 350000, "")
	require.NoError(t, err)

	err = u.ChangeStatus(StatusVacant)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
}

func TestChangeStatusRejectsOccupied(t *testing.T) {
	u, err := New(uuid.New(), "A-12", 350000, "")
	require.NoError(t, err)

	err = u.ChangeStatus(StatusOccupied)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
	require.Equal(t, StatusVacant, u.Status)
}

func TestChangeStatusRejectsUnknown(t *testing.T) {
	u, err := New(uuid.New(), "A-12", 350000, "")
	require.NoError(t, err)

	err = u.ChangeStatus(Status("DEMOLISHED"))
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}
