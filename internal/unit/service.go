package unit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// PropertyOwnership resolves which landlord owns a property. The unit
// package never reads property rows itself; ownership checks go through
// this narrow port so authorization stays in one place.
type PropertyOwnership interface {
	PropertyOwner(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error)
}

// TenancyPresence reports whether a unit currently holds an open
// (upcoming or active) tenancy. Manual status changes must not touch
// such units; their state belongs to the tenancy workflow.
type TenancyPresence interface {
	UnitHasOpenTenancy(ctx context.Context, unitID uuid.UUID) (bool, error)
}

// Service provides business logic for unit operations. A unit is always
// reached through the property that contains it, so every operation is
// authorized against the property's owner.
type Service struct {
	repo      Repository
	owners    PropertyOwnership
	tenancies TenancyPresence
	logger    *slog.Logger
}

// NewService constructs a unit service.
func NewService(repo Repository, owners PropertyOwnership, tenancies TenancyPresence, logger *slog.Logger) *Service {
	return &Service{repo: repo, owners: owners, tenancies: tenancies, logger: logger}
}

// Create adds a unit to one of the acting landlord's properties.
func (s *Service) Create(ctx context.Context, landlordID, propertyID uuid.UUID, req CreateRequest) (*Unit, error) {
	if err := s.authorizeProperty(ctx, landlordID, propertyID); err != nil {
		return nil, err
	}
	u, err := New(propertyID, req.Number, req.MonthlyRent, req.Description)
	if err != nil {
		return nil, err
	}
	u.Size = req.Size
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("unit created",
		slog.String("unit_id", u.ID.String()),
		slog.String("property_id", propertyID.String()),
		slog.String("number", u.Number))
	return u, nil
}

// Get fetches a unit the acting landlord owns through its property.
func (s *Service) Get(ctx context.Context, landlordID, id uuid.UUID) (*Unit, error) {
	return s.owned(ctx, landlordID, id)
}

// List returns the units of one of the acting landlord's properties.
func (s *Service) List(ctx context.Context, landlordID, propertyID uuid.UUID, req ListRequest) ([]Unit, int, error) {
	if err := s.authorizeProperty(ctx, landlordID, propertyID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByProperty(ctx, propertyID, req)
}

// Update replaces a unit's descriptive fields.
func (s *Service) Update(ctx context.Context, landlordID, id uuid.UUID, req UpdateRequest) (*Unit, error) {
	return s.mutate(ctx, landlordID, id, func(u *Unit) error {
		return u.UpdateDetails(req.Number, req.MonthlyRent, req.Description, req.Size)
	})
}

// ChangeStatus moves a unit between the manually controlled statuses.
// Occupancy cannot be set here: OCCUPIED belongs to the tenancy workflow,
// and a unit holding an open tenancy cannot be moved out of it manually
// either, whether the unit is already occupied or still reserved.
func (s *Service) ChangeStatus(ctx context.Context, landlordID, id uuid.UUID, req StatusRequest) (*Unit, error) {
	target := Status(req.Status)
	return s.mutate(ctx, landlordID, id, func(u *Unit) error {
		if u.Status == StatusOccupied {
			return fmt.Errorf("%w: unit is occupied; end the tenancy instead", shared.ErrIllegalTransition)
		}
		open, err := s.tenancies.UnitHasOpenTenancy(ctx, u.ID)
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("%w: unit has an open tenancy; end it instead", shared.ErrIllegalTransition)
		}
		return u.ChangeStatus(target)
	})
}

// AddImage records an image URL against the unit.
func (s *Service) AddImage(ctx context.Context, landlordID, id uuid.UUID, url string) (*Unit, error) {
	return s.mutate(ctx, landlordID, id, func(u *Unit) error {
		u.AddImageURL(url)
		return nil
	})
}

func (s *Service) authorizeProperty(ctx context.Context, landlordID, propertyID uuid.UUID) error {
	owner, err := s.owners.PropertyOwner(ctx, propertyID)
	if err != nil {
		return err
	}
	if owner != landlordID {
		return fmt.Errorf("property %s: %w", propertyID, shared.ErrUnauthorized)
	}
	return nil
}

// owned fetches a unit and verifies ownership before returning any data.
func (s *Service) owned(ctx context.Context, landlordID, id uuid.UUID) (*Unit, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeProperty(ctx, landlordID, u.PropertyID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) mutate(ctx context.Context, landlordID, id uuid.UUID, op func(*Unit) error) (*Unit, error) {
	u, err := s.owned(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	if err := op(u); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
