// Package authz resolves ownership chains back to the landlord that roots
// them. Every owner-scoped operation consults it before touching or
// revealing data: properties compare directly, units walk through their
// property, tenancies through unit and property, payments through all three.
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Resolver answers "which landlord owns this resource" for every aggregate
// in the ownership chain. It satisfies the ownership ports declared by the
// unit, tenancy and payment services.
type Resolver struct {
	pool *pgxpool.Pool
}

// NewResolver constructs a resolver.
func NewResolver(pool *pgxpool.Pool) *Resolver {
	return &Resolver{pool: pool}
}

// PropertyOwner returns the landlord owning a property.
func (r *Resolver) PropertyOwner(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error) {
	return r.scanOwner(ctx,
		`SELECT landlord_id FROM properties WHERE id = $1`,
		"property", propertyID)
}

// UnitOwner walks unit -> property and returns the owning landlord.
func (r *Resolver) UnitOwner(ctx context.Context, unitID uuid.UUID) (uuid.UUID, error) {
	return r.scanOwner(ctx, `
		SELECT p.landlord_id FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE u.id = $1`,
		"unit", unitID)
}

// TenancyOwner walks tenancy -> unit -> property and returns the owning landlord.
func (r *Resolver) TenancyOwner(ctx context.Context, tenancyID uuid.UUID) (uuid.UUID, error) {
	return r.scanOwner(ctx, `
		SELECT p.landlord_id FROM tenancies t
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE t.id = $1`,
		"tenancy", tenancyID)
}

// PaymentOwner walks payment -> tenancy -> unit -> property and returns the
// owning landlord.
func (r *Resolver) PaymentOwner(ctx context.Context, paymentID uuid.UUID) (uuid.UUID, error) {
	return r.scanOwner(ctx, `
		SELECT p.landlord_id FROM payments pay
		JOIN tenancies t ON t.id = pay.tenancy_id
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE pay.id = $1`,
		"payment", paymentID)
}

// TenantExists reports whether a tenant record exists. Tenancy creation
// uses it to validate tenant references without pulling the full record.
func (r *Resolver) TenantExists(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tenants WHERE id = $1)`, tenantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("authz: check tenant: %w", err)
	}
	return exists, nil
}

// UnitHasOpenTenancy reports whether a unit holds an upcoming or active
// tenancy. The unit service uses it to refuse manual status changes that
// would fight the tenancy workflow over the unit's state.
func (r *Resolver) UnitHasOpenTenancy(ctx context.Context, unitID uuid.UUID) (bool, error) {
	var open bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tenancies
			WHERE unit_id = $1 AND status IN ('UPCOMING','ACTIVE')
		)`, unitID).Scan(&open)
	if err != nil {
		return false, fmt.Errorf("authz: check open tenancy: %w", err)
	}
	return open, nil
}

// scanOwner resolves a single owner id. A chain that does not resolve is
// reported as unauthorized rather than not-found, so callers cannot tell
// another landlord's resources apart from absent ones.
func (r *Resolver) scanOwner(ctx context.Context, query, kind string, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.pool.QueryRow(ctx, query, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%s %s: %w", kind, id, shared.ErrUnauthorized)
		}
		return uuid.Nil, fmt.Errorf("authz: resolve %s owner: %w", kind, err)
	}
	return owner, nil
}
