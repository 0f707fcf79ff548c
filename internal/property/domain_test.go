package property

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nyumbani/nyumbani/internal/shared"
)

func testAddress(t *testing.T) Address {
	t.Helper()
	addr, err := NewAddress("Uhuru Street 12", "Upanga", "Ilala", "Dar es Salaam", "", "")
	require.NoError(t, err)
	return addr
}

func TestNewPropertyDefaults(t *testing.T) {
	landlordID := uuid.New()
	p, err := New("PROP001", "Mikocheni Flats", TypeApartment, landlordID, testAddress(t))
	require.NoError(t, err)
	require.Equal(t, StatusActive, p.Status)
	require.Equal(t, 1, p.TotalFloors)
	require.Equal(t, 0.0, p.MonthlyCommonCharges)
	require.Equal(t, landlordID, p.LandlordID)
	require.Equal(t, "Tanzania", p.Address.Country)
	require.NotEqual(t, uuid.Nil, p.ID)
	// Year built is optional and stays unset until the landlord provides
	// it, so the column it lands in must accept NULL.
	require.Nil(t, p.YearBuilt)
}

func TestNewPropertyRejectsInvalidType(t *testing.T) {
	_, err := New("PROP001", "Mikocheni Flats", Type("BUNGALOW"), uuid.New(), testAddress(t))
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestNewPropertyRejectsMissingLandlord(t *testing.T) {
	_, err := New("PROP001", "Mikocheni Flats", TypeApartment, uuid.Nil, testAddress(t))
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestNewAddressRejectsUnknownRegion(t *testing.T) {
	_, err := NewAddress("Main Road 1", "", "Centre", "Atlantis", "", "")
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestUpdateInfoRollsBackOnInvalid(t *testing.T) {
	p, err := New("PROP001", "Mikocheni Flats", TypeApartment, uuid.New(), testAddress(t))
	require.NoError(t, err)

	err = p.UpdateInfo("", "desc", TypeComplex)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
	require.Equal(t, "Mikocheni Flats", p.Name)
	require.Equal(t, TypeApartment, p.Type)
}

func TestUpdateCommonChargesRejectsNegative(t *testing.T) {
	p, err := New("PROP001", "Mikocheni Flats", TypeApartment, uuid.New(), testAddress(t))
	require.NoError(t, err)

	err = p.UpdateCommonCharges(-100)
	require.Error(t, err)
	require.Equal(t, 0.0, p.MonthlyCommonCharges)

	require.NoError(t, p.UpdateCommonCharges(50000))
	require.Equal(t, 50000.0, p.MonthlyCommonCharges)
}

func TestStatusTransitions(t *testing.T) {
	p, err := New("PROP001", "Mikocheni Flats", TypeApartment, uuid.New(), testAddress(t))
	require.NoError(t, err)

	require.NoError(t, p.MarkMaintenance())
	require.Equal(t, StatusMaintenance, p.Status)

	require.NoError(t, p.MarkVacant())
	require.Equal(t, StatusVacant, p.Status)

	require.NoError(t, p.MarkActive())
	require.Equal(t, StatusActive, p.Status)
}

func TestStatusTransitionRejectsNoOp(t *testing.T) {
	p, err := New("PROP001", "Mikocheni Flats", TypeApartment, uuid.New(), testAddress(t))
	require.NoError(t, err)

	err = p.MarkActive()
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))

	require.NoError(t, p.MarkMaintenance())
	err = p.MarkMaintenance()
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
}
