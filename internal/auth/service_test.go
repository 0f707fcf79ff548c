package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nyumbani/nyumbani/internal/landlord"
	"github.com/nyumbani/nyumbani/internal/shared"
)

type memoryLandlordRepo struct {
	landlords map[uuid.UUID]*landlord.Landlord
}

func newMemoryLandlordRepo() *memoryLandlordRepo {
	return &memoryLandlordRepo{landlords: make(map[uuid.UUID]*landlord.Landlord)}
}

func (r *memoryLandlordRepo) Create(ctx context.Context, l *landlord.Landlord) error {
	cp := *l
	r.landlords[l.ID] = &cp
	return nil
}

func (r *memoryLandlordRepo) Get(ctx context.Context, id uuid.UUID) (*landlord.Landlord, error) {
	l, ok := r.landlords[id]
	if !ok {
		return nil, fmt.Errorf("landlord: %w", shared.ErrNotFound)
	}
	cp := *l
	return &cp, nil
}

func (r *memoryLandlordRepo) GetByEmail(ctx context.Context, email string) (*landlord.Landlord, error) {
	for _, l := range r.landlords {
		if l.Email == email {
			cp := *l
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("landlord: %w", shared.ErrNotFound)
}

func (r *memoryLandlordRepo) Update(ctx context.Context, l *landlord.Landlord) error {
	if _, ok := r.landlords[l.ID]; !ok {
		return fmt.Errorf("landlord %s: %w", l.ID, shared.ErrNotFound)
	}
	cp := *l
	r.landlords[l.ID] = &cp
	return nil
}

func newTestService() (*Service, *memoryLandlordRepo) {
	repo := newMemoryLandlordRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func registerReq() RegisterRequest {
	return RegisterRequest{
		FirstName: "Juma",
		LastName:  "Kileo",
		Email:     "juma@example.com",
		Phone:     "+255713000000",
		Password:  "correct horse battery",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", created.PasswordHash)
	require.True(t, created.Active)

	got, err := svc.Authenticate(ctx, "juma@example.com", "correct horse battery")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq())
	require.True(t, errors.Is(err, shared.ErrAlreadyExists))
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "juma@example.com", "wrong password")
	require.True(t, errors.Is(err, shared.ErrInvalidCredentials))
}

func TestAuthenticateRejectsUnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Authenticate(ctx, "nobody@example.com", "whatever")
	require.True(t, errors.Is(err, shared.ErrInvalidCredentials))
}

func TestAuthenticateRejectsInactiveLandlord(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	created, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	stored := repo.landlords[created.ID]
	require.NoError(t, stored.Deactivate())

	_, err = svc.Authenticate(ctx, "juma@example.com", "correct horse battery")
	require.True(t, errors.Is(err, shared.ErrInvalidCredentials))
}
