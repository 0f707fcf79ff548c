package property

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Service provides business logic for property operations. Every operation
// takes the acting landlord explicitly; there is no ambient identity.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a property service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create registers a new property for the acting landlord.
func (s *Service) Create(ctx context.Context, landlordID uuid.UUID, req CreateRequest) (*Property, error) {
	existing, err := s.repo.GetByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("check existing property: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("property code %s: %w", req.Code, shared.ErrAlreadyExists)
	}

	addr, err := NewAddress(req.Address.Street, req.Address.Ward, req.Address.District,
		req.Address.Region, req.Address.Country, req.Address.PostalCode)
	if err != nil {
		return nil, err
	}

	p, err := New(req.Code, req.Name, req.Type, landlordID, addr)
	if err != nil {
		return nil, err
	}
	p.Description = req.Description

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("property created",
		slog.String("property_id", p.ID.String()),
		slog.String("code", p.Code),
		slog.String("landlord_id", landlordID.String()))
	return p, nil
}

// Get fetches a property the acting landlord owns.
func (s *Service) Get(ctx context.Context, landlordID, id uuid.UUID) (*Property, error) {
	return s.owned(ctx, landlordID, id)
}

// List returns the acting landlord's properties.
func (s *Service) List(ctx context.Context, landlordID uuid.UUID, req ListRequest) ([]Property, int, error) {
	return s.repo.ListByLandlord(ctx, landlordID, req)
}

// UpdateInfo replaces name, description and type.
func (s *Service) UpdateInfo(ctx context.Context, landlordID, id uuid.UUID, req UpdateInfoRequest) (*Property, error) {
	return s.mutate(ctx, landlordID, id, func(p *Property) error {
		return p.UpdateInfo(req.Name, req.Description, req.Type)
	})
}

// UpdateAddress replaces the postal address.
func (s *Service) UpdateAddress(ctx context.Context, landlordID, id uuid.UUID, req AddressRequest) (*Property, error) {
	addr, err := NewAddress(req.Street, req.Ward, req.District, req.Region, req.Country, req.PostalCode)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, landlordID, id, func(p *Property) error {
		return p.UpdateAddress(addr)
	})
}

// UpdateAmenities replaces amenity fields.
func (s *Service) UpdateAmenities(ctx context.Context, landlordID, id uuid.UUID, req UpdateAmenitiesRequest) (*Property, error) {
	return s.mutate(ctx, landlordID, id, func(p *Property) error {
		return p.UpdateAmenities(req.TotalFloors, req.YearBuilt, req.HasParking, req.HasSecurity)
	})
}

// UpdateCommonCharges replaces the monthly common charge amount.
func (s *Service) UpdateCommonCharges(ctx context.Context, landlordID, id uuid.UUID, req UpdateChargesRequest) (*Property, error) {
	return s.mutate(ctx, landlordID, id, func(p *Property) error {
		return p.UpdateCommonCharges(req.MonthlyCommonCharges)
	})
}

// MarkMaintenance transitions the property to MAINTENANCE.
func (s *Service) MarkMaintenance(ctx context.Context, landlordID, id uuid.UUID) (*Property, error) {
	return s.mutate(ctx, landlordID, id, (*Property).MarkMaintenance)
}

// MarkActive transitions the property to ACTIVE.
func (s *Service) MarkActive(ctx context.Context, landlordID, id uuid.UUID) (*Property, error) {
	return s.mutate(ctx, landlordID, id, (*Property).MarkActive)
}

// MarkVacant transitions the property to VACANT.
func (s *Service) MarkVacant(ctx context.Context, landlordID, id uuid.UUID) (*Property, error) {
	return s.mutate(ctx, landlordID, id, (*Property).MarkVacant)
}

// owned fetches a property and verifies ownership before returning any data.
func (s *Service) owned(ctx context.Context, landlordID, id uuid.UUID) (*Property, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.LandlordID != landlordID {
		return nil, fmt.Errorf("property %s: %w", id, shared.ErrUnauthorized)
	}
	return p, nil
}

func (s *Service) mutate(ctx context.Context, landlordID, id uuid.UUID, op func(*Property) error) (*Property, error) {
	p, err := s.owned(ctx, landlordID, id)
	if err != nil {
		return nil, err
	}
	if err := op(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
