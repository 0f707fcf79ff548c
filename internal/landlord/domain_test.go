package landlord

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nyumbani/nyumbani/internal/shared"
)

func newLandlord(t *testing.T) *Landlord {
	t.Helper()
	l, err := New("Neema", "Mushi", "Neema@Example.com", "+255712345678", "hash")
	require.NoError(t, err)
	return l
}

func TestNewLandlord(t *testing.T) {
	l := newLandlord(t)
	require.True(t, l.Active)
	require.Equal(t, "neema@example.com", l.Email)
	require.Equal(t, "Neema Mushi", l.FullName())
	require.Empty(t, l.NationalID)
}

func TestNewLandlordRejectsShortName(t *testing.T) {
	_, err := New("N", "Mushi", "n@example.com", "+255712345678", "hash")
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestNewLandlordRejectsBadPhone(t *testing.T) {
	_, err := New("Neema", "Mushi", "n@example.com", "0712345678", "hash")
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrValidation))
}

func TestUpdateContactInfoRollsBack(t *testing.T) {
	l := newLandlord(t)

	err := l.UpdateContactInfo("not-an-email", "+255712345678")
	require.Error(t, err)
	require.Equal(t, "neema@example.com", l.Email)
}

func TestActivationNoOpRejected(t *testing.T) {
	l := newLandlord(t)

	err := l.Activate()
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))

	require.NoError(t, l.Deactivate())
	err = l.Deactivate()
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
}

func TestUpdateIdentity(t *testing.T) {
	l := newLandlord(t)
	l.UpdateIdentity("19800101-00001-00001-01", "TIN-123-456-789")
	require.Equal(t, "TIN-123-456-789", l.TaxID)
}
