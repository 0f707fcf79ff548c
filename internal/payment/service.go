package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// TenancyOwnership resolves which landlord owns a tenancy, walking
// tenancy -> unit -> property -> landlord.
type TenancyOwnership interface {
	TenancyOwner(ctx context.Context, tenancyID uuid.UUID) (uuid.UUID, error)
}

// Service provides business logic for the payment ledger. Every entry is
// authorized through its tenancy's ownership chain.
type Service struct {
	repo   Repository
	owners TenancyOwnership
	logger *slog.Logger
}

// NewService constructs a payment service.
func NewService(repo Repository, owners TenancyOwnership, logger *slog.Logger) *Service {
	return &Service{repo: repo, owners: owners, logger: logger}
}

// Record adds a ledger entry against a tenancy the acting landlord owns.
func (s *Service) Record(ctx context.Context, landlordID uuid.UUID, req RecordRequest) (*Payment, error) {
	if err := s.authorizeTenancy(ctx, landlordID, req.TenancyID); err != nil {
		return nil, err
	}
	p, err := New(req.TenancyID, req.Amount, req.PaymentDate, req.Reference)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("payment recorded",
		slog.String("payment_id", p.ID.String()),
		slog.String("tenancy_id", p.TenancyID.String()),
		slog.Float64("amount", p.Amount))
	return p, nil
}

// Get fetches a ledger entry.
func (s *Service) Get(ctx context.Context, landlordID, id uuid.UUID) (*Payment, error) {
	return s.owned(ctx, landlordID, id)
}

// Update replaces a ledger entry's fields.
func (s *Service) Update(ctx context.Context, landlordID, id uuid.UUID, req UpdateRequest) (*Payment, error) {
	p, err := s.owned(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(req.Amount, req.PaymentDate, req.Reference, req.Status); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a ledger entry.
func (s *Service) Delete(ctx context.Context, landlordID, id uuid.UUID) error {
	p, err := s.owned(ctx, landlordID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}
	s.logger.Info("payment deleted",
		slog.String("payment_id", p.ID.String()),
		slog.String("tenancy_id", p.TenancyID.String()))
	return nil
}

// ListByTenancy returns a tenancy's ledger.
func (s *Service) ListByTenancy(ctx context.Context, landlordID, tenancyID uuid.UUID) ([]Payment, error) {
	if err := s.authorizeTenancy(ctx, landlordID, tenancyID); err != nil {
		return nil, err
	}
	return s.repo.ListByTenancy(ctx, tenancyID)
}

// ListInRange returns every ledger entry of the acting landlord with a
// payment date inside [from, to]. The repository query is already scoped
// to the landlord's ownership chain, so no per-row check is needed.
func (s *Service) ListInRange(ctx context.Context, landlordID uuid.UUID, from, to time.Time) ([]Payment, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end precedes range start", shared.ErrValidation)
	}
	return s.repo.ListByLandlordInRange(ctx, landlordID, from, to)
}

func (s *Service) authorizeTenancy(ctx context.Context, landlordID, tenancyID uuid.UUID) error {
	owner, err := s.owners.TenancyOwner(ctx, tenancyID)
	if err != nil {
		return err
	}
	if owner != landlordID {
		return fmt.Errorf("tenancy %s: %w", tenancyID, shared.ErrUnauthorized)
	}
	return nil
}

func (s *Service) owned(ctx context.Context, landlordID, id uuid.UUID) (*Payment, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTenancy(ctx, landlordID, p.TenancyID); err != nil {
		return nil, err
	}
	return p, nil
}
