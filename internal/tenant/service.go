package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Service provides business logic for tenant operations. Tenant identities
// form a shared directory: any authenticated landlord may register and look
// up a tenant (a tenancy cannot be drafted otherwise), but mutations require
// a tenancy link between the tenant and the acting landlord.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a tenant service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create registers a new tenant identity.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Tenant, error) {
	existing, err := s.repo.GetByNationalID(ctx, req.NationalID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("check existing tenant: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("tenant national id %s: %w", req.NationalID, shared.ErrAlreadyExists)
	}

	t, err := New(req.FirstName, req.LastName, req.Email, req.Phone, req.NationalID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("tenant created",
		slog.String("tenant_id", t.ID.String()),
		slog.String("name", t.FullName()))
	return t, nil
}

// Get fetches a tenant by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return s.repo.Get(ctx, id)
}

// List returns tenants linked to the acting landlord through tenancies.
func (s *Service) List(ctx context.Context, landlordID uuid.UUID) ([]Tenant, error) {
	return s.repo.ListByLandlord(ctx, landlordID)
}

// Update replaces a tenant's name and contact fields.
func (s *Service) Update(ctx context.Context, landlordID, id uuid.UUID, req UpdateRequest) (*Tenant, error) {
	return s.mutate(ctx, landlordID, id, func(t *Tenant) error {
		return t.UpdateDetails(req.FirstName, req.LastName, req.Email, req.Phone)
	})
}

// AddEmergencyContact records an emergency contact.
func (s *Service) AddEmergencyContact(ctx context.Context, landlordID, id uuid.UUID, req EmergencyContactRequest) (*Tenant, error) {
	return s.mutate(ctx, landlordID, id, func(t *Tenant) error {
		return t.AddEmergencyContact(req.Name, req.Phone)
	})
}

// Deactivate marks a tenant inactive.
func (s *Service) Deactivate(ctx context.Context, landlordID, id uuid.UUID) (*Tenant, error) {
	return s.mutate(ctx, landlordID, id, (*Tenant).Deactivate)
}

// Activate marks a tenant active.
func (s *Service) Activate(ctx context.Context, landlordID, id uuid.UUID) (*Tenant, error) {
	return s.mutate(ctx, landlordID, id, (*Tenant).Activate)
}

func (s *Service) mutate(ctx context.Context, landlordID, id uuid.UUID, op func(*Tenant) error) (*Tenant, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	linked, err := s.repo.LinkedToLandlord(ctx, id, landlordID)
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, fmt.Errorf("tenant %s: %w", id, shared.ErrUnauthorized)
	}
	if err := op(t); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
