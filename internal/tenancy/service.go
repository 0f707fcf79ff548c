package tenancy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// OwnershipResolver walks a unit back to its owning landlord.
type OwnershipResolver interface {
	UnitOwner(ctx context.Context, unitID uuid.UUID) (uuid.UUID, error)
}

// TenantDirectory confirms tenant identities referenced by new tenancies.
type TenantDirectory interface {
	TenantExists(ctx context.Context, tenantID uuid.UUID) (bool, error)
}

// Service orchestrates the tenancy lifecycle and the paired unit status
// changes. Creating a tenancy claims the unit and terminating one releases
// it, both inside a single transaction carried by the repository.
type Service struct {
	repo    Repository
	owners  OwnershipResolver
	tenants TenantDirectory
	logger  *slog.Logger
}

// NewService constructs a tenancy service.
func NewService(repo Repository, owners OwnershipResolver, tenants TenantDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, owners: owners, tenants: tenants, logger: logger}
}

// Create drafts a tenancy against a vacant unit the acting landlord owns.
// An ACTIVE tenancy occupies the unit immediately; an UPCOMING one reserves
// it until the start date arrives.
func (s *Service) Create(ctx context.Context, landlordID uuid.UUID, req CreateRequest) (*Tenancy, error) {
	if err := s.authorizeUnit(ctx, landlordID, req.UnitID); err != nil {
		return nil, err
	}
	exists, err := s.tenants.TenantExists(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("tenant %s: %w", req.TenantID, shared.ErrNotFound)
	}

	t, err := New(req.TenantID, req.UnitID, req.StartDate, req.EndDate, req.RentAmount, req.Period)
	if err != nil {
		return nil, err
	}

	unitStatus := "OCCUPIED"
	if t.Status == StatusUpcoming {
		unitStatus = "RESERVED"
	}
	if err := s.repo.CreateOccupying(ctx, t, unitStatus); err != nil {
		return nil, err
	}
	s.logger.Info("tenancy created",
		slog.String("tenancy_id", t.ID.String()),
		slog.String("unit_id", t.UnitID.String()),
		slog.String("tenant_id", t.TenantID.String()),
		slog.String("status", string(t.Status)))
	return t, nil
}

// Get fetches a tenancy the acting landlord owns through the unit chain.
func (s *Service) Get(ctx context.Context, landlordID, id uuid.UUID) (*Tenancy, error) {
	return s.owned(ctx, landlordID, id)
}

// List returns the acting landlord's tenancies.
func (s *Service) List(ctx context.Context, landlordID uuid.UUID, req ListRequest) ([]Tenancy, int, error) {
	return s.repo.ListByLandlord(ctx, landlordID, req)
}

// HistoryByUnit returns a unit's tenancy history.
func (s *Service) HistoryByUnit(ctx context.Context, landlordID, unitID uuid.UUID) ([]Tenancy, error) {
	if err := s.authorizeUnit(ctx, landlordID, unitID); err != nil {
		return nil, err
	}
	return s.repo.ListByUnit(ctx, unitID)
}

// Terminate ends an active tenancy on the given date and frees the unit.
func (s *Service) Terminate(ctx context.Context, landlordID, id uuid.UUID, req TerminateRequest) (*Tenancy, error) {
	t, err := s.owned(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	if err := t.Terminate(req.Date); err != nil {
		return nil, err
	}
	if err := s.repo.EndVacating(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("tenancy terminated",
		slog.String("tenancy_id", t.ID.String()),
		slog.String("unit_id", t.UnitID.String()),
		slog.Time("end_date", t.EndDate))
	return t, nil
}

// Cancel voids an upcoming tenancy and releases its reserved unit.
func (s *Service) Cancel(ctx context.Context, landlordID, id uuid.UUID) (*Tenancy, error) {
	t, err := s.owned(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	if err := t.Cancel(); err != nil {
		return nil, err
	}
	if err := s.repo.EndVacating(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("tenancy cancelled", slog.String("tenancy_id", t.ID.String()))
	return t, nil
}

// AttachContract records a rendered contract reference on the tenancy.
func (s *Service) AttachContract(ctx context.Context, landlordID, id uuid.UUID, req AttachContractRequest) (*Tenancy, error) {
	t, err := s.owned(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	if err := t.AttachContract(req.URL); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ExpireDue moves active tenancies past their end date to EXPIRED and frees
// their units. Invoked by the scheduled maintenance job; failures on one
// tenancy are logged and do not stop the sweep.
func (s *Service) ExpireDue(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.repo.ListEndingBy(ctx, asOf.AddDate(0, 0, -1))
	if err != nil {
		return 0, err
	}
	var n int
	for i := range due {
		t := &due[i]
		if err := t.MarkExpired(asOf); err != nil {
			s.logger.Warn("skipping tenancy expiry",
				slog.String("tenancy_id", t.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if err := s.repo.EndVacating(ctx, t); err != nil {
			s.logger.Error("tenancy expiry failed",
				slog.String("tenancy_id", t.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		n++
	}
	return n, nil
}

// ActivateDue promotes upcoming tenancies whose start date has arrived and
// occupies their reserved units.
func (s *Service) ActivateDue(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.repo.ListStartingBy(ctx, asOf)
	if err != nil {
		return 0, err
	}
	var n int
	for i := range due {
		t := &due[i]
		if err := t.Activate(asOf); err != nil {
			s.logger.Warn("skipping tenancy activation",
				slog.String("tenancy_id", t.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if err := s.repo.Promote(ctx, t); err != nil {
			s.logger.Error("tenancy activation failed",
				slog.String("tenancy_id", t.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		n++
	}
	return n, nil
}

func (s *Service) authorizeUnit(ctx context.Context, landlordID, unitID uuid.UUID) error {
	owner, err := s.owners.UnitOwner(ctx, unitID)
	if err != nil {
		return err
	}
	if owner != landlordID {
		return fmt.Errorf("unit %s: %w", unitID, shared.ErrUnauthorized)
	}
	return nil
}

// owned fetches a tenancy and verifies the chain before returning any data.
func (s *Service) owned(ctx context.Context, landlordID, id uuid.UUID) (*Tenancy, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeUnit(ctx, landlordID, t.UnitID); err != nil {
		return nil, err
	}
	return t, nil
}
