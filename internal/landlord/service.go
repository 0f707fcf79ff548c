package landlord

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Service manages the acting landlord's own profile. There is no
// cross-landlord access: every operation works on the session identity.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a landlord service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Profile returns the acting landlord.
func (s *Service) Profile(ctx context.Context, landlordID uuid.UUID) (*Landlord, error) {
	return s.repo.Get(ctx, landlordID)
}

// UpdatePersonalInfo replaces the landlord's name.
func (s *Service) UpdatePersonalInfo(ctx context.Context, landlordID uuid.UUID, req UpdatePersonalRequest) (*Landlord, error) {
	return s.mutate(ctx, landlordID, func(l *Landlord) error {
		return l.UpdatePersonalInfo(req.FirstName, req.LastName)
	})
}

// UpdateContactInfo replaces email and phone.
func (s *Service) UpdateContactInfo(ctx context.Context, landlordID uuid.UUID, req UpdateContactRequest) (*Landlord, error) {
	return s.mutate(ctx, landlordID, func(l *Landlord) error {
		return l.UpdateContactInfo(req.Email, req.Phone)
	})
}

// UpdateIdentity records national id and tax id.
func (s *Service) UpdateIdentity(ctx context.Context, landlordID uuid.UUID, req UpdateIdentityRequest) (*Landlord, error) {
	return s.mutate(ctx, landlordID, func(l *Landlord) error {
		l.UpdateIdentity(req.NationalID, req.TaxID)
		return nil
	})
}

// Deactivate marks the acting landlord inactive.
func (s *Service) Deactivate(ctx context.Context, landlordID uuid.UUID) (*Landlord, error) {
	l, err := s.mutate(ctx, landlordID, (*Landlord).Deactivate)
	if err != nil {
		return nil, err
	}
	s.logger.Info("landlord deactivated", slog.String("landlord_id", landlordID.String()))
	return l, nil
}

func (s *Service) mutate(ctx context.Context, landlordID uuid.UUID, op func(*Landlord) error) (*Landlord, error) {
	l, err := s.repo.Get(ctx, landlordID)
	if err != nil {
		return nil, err
	}
	if err := op(l); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
