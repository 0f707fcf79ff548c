package reporting

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nyumbani/nyumbani/internal/payment"
	"github.com/nyumbani/nyumbani/internal/property"
	"github.com/nyumbani/nyumbani/internal/tenancy"
	"github.com/nyumbani/nyumbani/internal/tenant"
	"github.com/nyumbani/nyumbani/internal/unit"
)

// Source supplies the read-side rows a snapshot is built from, always
// scoped to one landlord.
type Source interface {
	Properties(ctx context.Context, landlordID uuid.UUID) ([]property.Property, error)
	Units(ctx context.Context, landlordID uuid.UUID) ([]unit.Unit, error)
	Tenancies(ctx context.Context, landlordID uuid.UUID) ([]tenancy.Tenancy, error)
	Payments(ctx context.Context, landlordID uuid.UUID) ([]payment.Payment, error)
	Tenants(ctx context.Context, landlordID uuid.UUID) ([]tenant.Tenant, error)
}

// Snapshot is a point-in-time copy of one landlord's aggregates, indexed
// for the reducers. Reports read it and never write back.
type Snapshot struct {
	LandlordID uuid.UUID
	Properties map[uuid.UUID]property.Property
	Units      map[uuid.UUID]unit.Unit
	Tenancies  []tenancy.Tenancy
	Tenants    map[uuid.UUID]tenant.Tenant
	// PaymentsByTenancy groups ledger entries by their owning tenancy.
	PaymentsByTenancy map[uuid.UUID][]payment.Payment
}

// LoadSnapshot gathers all five aggregate sets concurrently. Any failed
// load fails the snapshot; reports never run over partial data.
func LoadSnapshot(ctx context.Context, src Source, landlordID uuid.UUID) (*Snapshot, error) {
	var (
		properties []property.Property
		units      []unit.Unit
		tenancies  []tenancy.Tenancy
		payments   []payment.Payment
		tenants    []tenant.Tenant
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		properties, err = src.Properties(gctx, landlordID)
		return err
	})
	g.Go(func() (err error) {
		units, err = src.Units(gctx, landlordID)
		return err
	})
	g.Go(func() (err error) {
		tenancies, err = src.Tenancies(gctx, landlordID)
		return err
	})
	g.Go(func() (err error) {
		payments, err = src.Payments(gctx, landlordID)
		return err
	})
	g.Go(func() (err error) {
		tenants, err = src.Tenants(gctx, landlordID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &Snapshot{
		LandlordID:        landlordID,
		Properties:        make(map[uuid.UUID]property.Property, len(properties)),
		Units:             make(map[uuid.UUID]unit.Unit, len(units)),
		Tenancies:         tenancies,
		Tenants:           make(map[uuid.UUID]tenant.Tenant, len(tenants)),
		PaymentsByTenancy: make(map[uuid.UUID][]payment.Payment),
	}
	for _, p := range properties {
		s.Properties[p.ID] = p
	}
	for _, u := range units {
		s.Units[u.ID] = u
	}
	for _, t := range tenants {
		s.Tenants[t.ID] = t
	}
	for _, p := range payments {
		s.PaymentsByTenancy[p.TenancyID] = append(s.PaymentsByTenancy[p.TenancyID], p)
	}
	return s, nil
}
