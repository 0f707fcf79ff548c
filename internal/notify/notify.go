package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Category tags an outbound message so a provider can map it to a
// pre-approved message template.
type Category string

const (
	CategoryContractShared Category = "CONTRACT_SHARED"
	CategoryRentDue        Category = "RENT_DUE_REMINDER"
	CategoryTenancyExpiry  Category = "TENANCY_EXPIRY_REMINDER"
)

// Sender delivers one message to one phone number.
type Sender interface {
	Send(ctx context.Context, recipient, message string, category Category) error
}

// LogSender is a Sender that only logs. It stands in until a WhatsApp
// Business API client is wired up.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs a logging sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message instead of delivering it.
func (s *LogSender) Send(_ context.Context, recipient, message string, category Category) error {
	s.logger.Info("outbound notification",
		slog.String("recipient", recipient),
		slog.String("category", string(category)),
		slog.String("message", message))
	return nil
}

// Service composes tenant-facing messages and hands them to the sender.
type Service struct {
	sender Sender
}

// NewService constructs a notification service.
func NewService(sender Sender) *Service {
	return &Service{sender: sender}
}

// ShareContract tells the tenant where their rental contract lives.
func (s *Service) ShareContract(ctx context.Context, phone, firstName, url string) error {
	msg := fmt.Sprintf("Dear %s, your rental contract is available here: %s", firstName, url)
	return s.sender.Send(ctx, phone, msg, CategoryContractShared)
}

// RentDue reminds the tenant of an upcoming rent payment.
func (s *Service) RentDue(ctx context.Context, phone, firstName, unitNumber string, amount float64, dueDate time.Time) error {
	msg := fmt.Sprintf("Hi %s, your rent of %s for unit %s is due on %s.",
		firstName, shared.FormatTZS(amount), unitNumber, dueDate.Format("2006-01-02"))
	return s.sender.Send(ctx, phone, msg, CategoryRentDue)
}

// TenancyExpiry warns the tenant their tenancy is about to end.
func (s *Service) TenancyExpiry(ctx context.Context, phone, firstName, unitNumber string, endDate time.Time) error {
	msg := fmt.Sprintf("Hi %s, your tenancy for unit %s is expiring on %s. Please contact your landlord to renew.",
		firstName, unitNumber, endDate.Format("2006-01-02"))
	return s.sender.Send(ctx, phone, msg, CategoryTenancyExpiry)
}
