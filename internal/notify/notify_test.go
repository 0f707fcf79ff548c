package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type captureSender struct {
	recipient string
	message   string
	category  Category
}

func (s *captureSender) Send(ctx context.Context, recipient, message string, category Category) error {
	s.recipient = recipient
	s.message = message
	s.category = category
	return nil
}

func TestShareContractMessage(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender)

	err := svc.ShareContract(context.Background(), "+255712345678", "Asha", "contracts/contract-1.txt")
	require.NoError(t, err)
	require.Equal(t, "+255712345678", sender.recipient)
	require.Equal(t, CategoryContractShared, sender.category)
	require.Equal(t, "Dear Asha, your rental contract is available here: contracts/contract-1.txt", sender.message)
}

func TestRentDueMessageFormatsAmount(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender)

	due := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	err := svc.RentDue(context.Background(), "+255712345678", "Asha", "A1", 500000, due)
	require.NoError(t, err)
	require.Equal(t, CategoryRentDue, sender.category)
	require.Equal(t, "Hi Asha, your rent of 500,000.00 TZS for unit A1 is due on 2026-09-05.", sender.message)
}

func TestTenancyExpiryMessage(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender)

	end := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
	err := svc.TenancyExpiry(context.Background(), "+255712345678", "Asha", "A1", end)
	require.NoError(t, err)
	require.Equal(t, CategoryTenancyExpiry, sender.category)
	require.Contains(t, sender.message, "expiring on 2026-12-31")
}
