package unit

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

type memoryUnitRepo struct {
	units map[uuid.UUID]*Unit
}

func newMemoryUnitRepo() *memoryUnitRepo {
	return &memoryUnitRepo{units: make(map[uuid.UUID]*Unit)}
}

func (r *memoryUnitRepo) Create(ctx context.Context, u *Unit) error {
	for _, existing := range r.units {
		if existing.PropertyID == u.PropertyID && existing.Number == u.Number {
			return fmt.Errorf("unit number %s: %w", u.Number, shared.ErrAlreadyExists)
		}
	}
	cp := *u
	r.units[u.ID] = &cp
	return nil
}

func (r *memoryUnitRepo) Get(ctx context.Context, id uuid.UUID) (*Unit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, fmt.Errorf("unit: %w", shared.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUnitRepo) Update(ctx context.Context, u *Unit) error {
	if _, ok := r.units[u.ID]; !ok {
		return fmt.Errorf("unit %s: %w", u.ID, shared.ErrNotFound)
	}
	cp := *u
	r.units[u.ID] = &cp
	return nil
}

func (r *memoryUnitRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID, req ListRequest) ([]Unit, int, error) {
	var out []Unit
	for _, u := range r.units {
		if u.PropertyID != propertyID {
			continue
		}
		if req.Status != nil && u.Status != *req.Status {
			continue
		}
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *memoryUnitRepo) CountByPropertyAndStatus(ctx context.Context, propertyID uuid.UUID, status Status) (int, error) {
	n := 0
	for _, u := range r.units {
		if u.PropertyID == propertyID && u.Status == status {
			n++
		}
	}
	return n, nil
}

// stubOwnership maps property ids to owning landlords.
type stubOwnership struct {
	owners map[uuid.UUID]uuid.UUID
}

func (s *stubOwnership) PropertyOwner(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error) {
	owner, ok := s.owners[propertyID]
	if !ok {
		return uuid.Nil, fmt.Errorf("property: %w", shared.ErrUnauthorized)
	}
	return owner, nil
}

// stubPresence marks units as holding an open tenancy.
type stubPresence struct {
	open map[uuid.UUID]bool
}

func (s *stubPresence) UnitHasOpenTenancy(ctx context.Context, unitID uuid.UUID) (bool, error) {
	return s.open[unitID], nil
}

func newTestService() (*Service, *memoryUnitRepo, *stubOwnership, *stubPresence) {
	repo := newMemoryUnitRepo()
	owners := &stubOwnership{owners: make(map[uuid.UUID]uuid.UUID)}
	presence := &stubPresence{open: make(map[uuid.UUID]bool)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, owners, presence, logger), repo, owners, presence
}

func TestServiceCreateUnit(t *testing.T) {
	ctx := context.Background()
	svc, _, owners, _ := newTestService()
	landlordID := uuid.New()
	propertyID := uuid.New()
	owners.owners[propertyID] = landlordID

	u, err := svc.Create(ctx, landlordID, propertyID, CreateRequest{
		Number:      "A-12",
		MonthlyRent: 350000,
		Size:        "25sqm",
	})
	require.NoError(t, err)
	require.Equal(t, StatusVacant, u.Status)
	require.Equal(t, propertyID, u.PropertyID)
	require.Equal(t, "25sqm", u.Size)
}

func TestServiceCreateUnitRejectsForeignProperty(t *testing.T) {
	ctx := context.Background()
	svc, _, owners, _ := newTestService()
	propertyID := uuid.New()
	owners.owners[propertyID] = uuid.New()

	_, err := svc.Create(ctx, uuid.New(), propertyID, CreateRequest{Number: "A-12", MonthlyRent: 350000})
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestServiceCreateUnitUnknownProperty(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService()

	_, err := svc.Create(ctx, uuid.New(), uuid.New(), CreateRequest{Number: "A-12", MonthlyRent: 350000})
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestServiceCreateUnitDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	svc, _, owners, _ := newTestService()
	landlordID := uuid.New()
	propertyID := uuid.New()
	owners.owners[propertyID] = landlordID

	_, err := svc.Create(ctx, landlordID, propertyID, CreateRequest{Number: "A-12", MonthlyRent: 350000})
	require.NoError(t, err)

	_, err = svc.Create(ctx, landlordID, propertyID, CreateRequest{Number: "A-12", MonthlyRent: 400000})
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrAlreadyExists))
}

func TestServiceGetThroughOwnershipChain(t *testing.T) {
	ctx := context.Background()
	svc, _, owners, _ := newTestService()
	landlordID := uuid.New()
	propertyID := uuid.New()
	owners.owners[propertyID] = landlordID

	u, err := svc.Create(ctx, landlordID, propertyID, CreateRequest{Number: "A-12", MonthlyRent: 350000})
	require.NoError(t, err)

	got, err := svc.Get(ctx, landlordID, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = svc.Get(ctx, uuid.New(), u.ID)
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrUnauthorized))
}

func TestServiceChangeStatusBlocksOccupied(t *testing.T) {
	ctx := context.Background()
	svc, repo, owners, _ := newTestService()
	landlordID := uuid.New()
	propertyID := uuid.New()
	owners.owners[propertyID] = landlordID

	u, err := svc.Create(ctx, landlordID, propertyID, CreateRequest{Number: "A-12", MonthlyRent: 350000})
	require.NoError(t, err)

	stored := repo.units[u.ID]
	stored.Status = StatusOccupied

	_, err = svc.ChangeStatus(ctx, landlordID, u.ID, StatusRequest{Status: "UNDER_MAINTENANCE"})
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
}

func TestServiceChangeStatusBlocksOpenTenancy(t *testing.T) {
	ctx := context.Background()
	svc, repo, owners, presence := newTestService()
	landlordID := uuid.New()
	propertyID := uuid.New()
	owners.owners[propertyID] = landlordID

	u, err := svc.Create(ctx, landlordID, propertyID, CreateRequest{Number: "A-12", MonthlyRent: 350000})
	require.NoError(t, err)

	// An upcoming tenancy has reserved the unit; releasing it manually
	// would let activation find the unit no longer reserved.
	repo.units[u.ID].Status = StatusReserved
	presence.open[u.ID] = true

	_, err = svc.ChangeStatus(ctx, landlordID, u.ID, StatusRequest{Status: "VACANT"})
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
	require.Equal(t, StatusReserved, repo.units[u.ID].Status)
}

func TestServiceChangeStatusRejectsOccupiedTarget(t *testing.T) {
	ctx := context.Background()
	svc, repo, owners, _ := newTestService()
	landlordID := uuid.New()
	propertyID := uuid.New()
	owners.owners[propertyID] = landlordID

	u, err := svc.Create(ctx, landlordID, propertyID, CreateRequest{Number: "A-12", MonthlyRent: 350000})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(ctx, landlordID, u.ID, StatusRequest{Status: "OCCUPIED"})
	require.Error(t, err)
	require.True(t, errors.Is(err, shared.ErrIllegalTransition))
	require.Equal(t, StatusVacant, repo.units[u.ID].Status)
}

func TestServiceChangeStatus(t *testing.T) {
	ctx := context.Background()
	svc, repo, owners, _ := newTestService()
	landlordID := uuid.New()
	propertyID := uuid.New()
	owners.owners[propertyID] = landlordID

	u, err := svc.Create(ctx, landlordID, propertyID, CreateRequest{Number: "A-12", MonthlyRent: 350000})
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(ctx, landlordID, u.ID, StatusRequest{Status: "RESERVED"})
	require.NoError(t, err)
	require.Equal(t, StatusReserved, updated.Status)
	require.Equal(t, StatusReserved, repo.units[u.ID].Status)
}

func TestServiceListScopedToProperty(t *testing.T) {
	ctx := context.Background()
	svc, _, owners, _ := newTestService()
	landlordID := uuid.New()
	propA := uuid.New()
	propB := uuid.New()
	owners.owners[propA] = landlordID
	owners.owners[propB] = landlordID

	_, err := svc.Create(ctx, landlordID, propA, CreateRequest{Number: "A-1", MonthlyRent: 300000})
	require.NoError(t, err)
	_, err = svc.Create(ctx, landlordID, propA, CreateRequest{Number: "A-2", MonthlyRent: 300000})
	require.NoError(t, err)
	_, err = svc.Create(ctx, landlordID, propB, CreateRequest{Number: "B-1", MonthlyRent: 500000})
	require.NoError(t, err)

	units, total, err := svc.List(ctx, landlordID, propA, ListRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, units, 2)
}
