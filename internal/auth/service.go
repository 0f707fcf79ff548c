package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/nyumbani/nyumbani/internal/landlord"
	"github.com/nyumbani/nyumbani/internal/shared"
)

// Service wraps landlord registration and credential checks.
type Service struct {
	landlords landlord.Repository
	logger    *slog.Logger
}

// NewService constructs a new Service.
func NewService(landlords landlord.Repository, logger *slog.Logger) *Service {
	return &Service{landlords: landlords, logger: logger}
}

// Register creates a landlord account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*landlord.Landlord, error) {
	if _, err := s.landlords.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("landlord %s: %w", req.Email, shared.ErrAlreadyExists)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	l, err := landlord.New(req.FirstName, req.LastName, req.Email, req.Phone, string(hash))
	if err != nil {
		return nil, err
	}
	if err := s.landlords.Create(ctx, l); err != nil {
		return nil, err
	}
	s.logger.Info("landlord registered",
		slog.String("landlord_id", l.ID.String()),
		slog.String("email", l.Email))
	return l, nil
}

// Authenticate validates email/password credentials. Every failure mode
// collapses to ErrInvalidCredentials so responses never reveal whether an
// account exists.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*landlord.Landlord, error) {
	l, err := s.landlords.GetByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !l.Active {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return l, nil
}
