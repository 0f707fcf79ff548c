package property

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nyumbani/nyumbani/internal/shared"
)

type memoryPropertyRepo struct {
	properties map[uuid.UUID]*Property
}

func newMemoryPropertyRepo() *memoryPropertyRepo {
	return &memoryPropertyRepo{properties: make(map[uuid.UUID]*Property)}
}

func (r *memoryPropertyRepo) Create(ctx context.Context, p *Property) error {
	for _, existing := range r.properties {
		if existing.Code == p.Code {
			return fmt.Errorf("property code %s: %w", p.Code, shared.ErrAlreadyExists)
		}
	}
	cp := *p
	r.properties[p.ID] = &cp
	return nil
}

func (r *memoryPropertyRepo) Get(ctx context.Context, id uuid.UUID) (*Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, fmt.Errorf("property: %w", shared.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *memoryPropertyRepo) GetByCode(ctx context.Context, code string) (*Property, error) {
	for _, p := range r.properties {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("property: %w", shared.ErrNotFound)
}

func (r *memoryPropertyRepo) Update(ctx context.Context, p *Property) error {
	if _, ok := r.properties[p.ID]; !ok {
		return fmt.Errorf("property %s: %w", p.ID, shared.ErrNotFound)
	}
	cp := *p
	r.properties[p.ID] = &cp
	return nil
}

func (r *memoryPropertyRepo) ListByLandlord(ctx context.Context, landlordID uuid.UUID, req ListRequest) ([]Property, int, error) {
	var out []Property
	for _, p := range r.properties {
		if p.LandlordID != landlordID {
			continue
		}
		if req.Status != nil && p.Status != *req.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createReq(code string) CreateRequest {
	return CreateRequest{
		Code: code,
		Name: "Mikocheni Flats",
		Type: "APARTMENT",
		Address: AddressRequest{
			Street:   "Uhuru Street 12",
			Ward:     "Upanga",
			District: "Ilala",
			Region:   "Dar es Salaam",
		},
	}
}

func TestServiceCreateProperty(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPropertyRepo()
	svc := NewService(repo, testLogger())
	landlordID := uuid.New()

	p, err := svc.Create(ctx, landlordID, createReq("PROP001"))
	require.NoError(t, err)
	require.Equal(t, "PROP001", p.Code)
	require.Equal(t, landlordID, p.LandlordID)
	require.Equal(t, StatusActive, p.Status)
}

func TestServiceCreatePropertyDuplicateCode(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPropertyRepo()
	svc := NewService(repo, testLogger())

	_, err := svc.Create(ctx, uuid.New(), createReq("PROP001"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, uuid.New(), createReq("PROP001"))
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrAlreadyExists))
}

func TestServiceGetRejectsOtherLandlord(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPropertyRepo()
	svc := NewService(repo, testLogger())
	owner := uuid.New()

	p, err := svc.Create(ctx, owner, createReq("PROP001"))
	require.NoError(t, err)

	_, err = svc.Get(ctx, uuid.New(), p.ID)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrUnauthorized))

	got, err := svc.Get(ctx, owner, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
}

func TestServiceGetUnknownProperty(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryPropertyRepo(), testLogger())

	_, err := svc.Get(ctx, uuid.New(), uuid.New())
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestServiceUpdateInfoPersists(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPropertyRepo()
	svc := NewService(repo, testLogger())
	owner := uuid.New()

	p, err := svc.Create(ctx, owner, createReq("PROP001"))
	require.NoError(t, err)

	updated, err := svc.UpdateInfo(ctx, owner, p.ID, UpdateInfoRequest{
		Name: "Mikocheni Towers",
		Type: "COMPLEX",
	})
	require.NoError(t, err)
	require.Equal(t, "Mikocheni Towers", updated.Name)

	stored, _ := repo.Get(ctx, p.ID)
	require.Equal(t, "Mikocheni Towers", stored.Name)
	require.Equal(t, TypeComplex, stored.Type)
}

func TestServiceMutationRejectedForOtherLandlord(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPropertyRepo()
	svc := NewService(repo, testLogger())
	owner := uuid.New()

	p, err := svc.Create(ctx, owner, createReq("PROP001"))
	require.NoError(t, err)

	_, err = svc.MarkMaintenance(ctx, uuid.New(), p.ID)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrUnauthorized))

	stored, _ := repo.Get(ctx, p.ID)
	require.Equal(t, StatusActive, stored.Status)
}

func TestServiceStatusNoOpNotPersisted(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPropertyRepo()
	svc := NewService(repo, testLogger())
	owner := uuid.New()

	p, err := svc.Create(ctx, owner, createReq("PROP001"))
	require.NoError(t, err)

	_, err = svc.MarkActive(ctx, owner, p.ID)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
}

func TestServiceListScopedToLandlord(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPropertyRepo()
	svc := NewService(repo, testLogger())
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Create(ctx, alice, createReq("PROP001"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, createReq("PROP002"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, createReq("PROP003"))
	require.NoError(t, err)

	properties, total, err := svc.List(ctx, alice, ListRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, properties, 2)
	for _, p := range properties {
		require.Equal(t, alice, p.LandlordID)
	}
}
