package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyumbani/nyumbani/internal/platform/db"
	"github.com/nyumbani/nyumbani/internal/shared"
)

// Repository persists tenants.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	Get(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetByNationalID(ctx context.Context, nationalID string) (*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Tenant, error)
	LinkedToLandlord(ctx context.Context, tenantID, landlordID uuid.UUID) (bool, error)
}

// PgRepository is the PostgreSQL backed Repository.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository constructs a repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const tenantColumns = `id, first_name, last_name, email, phone, national_id,
	emergency_contact_name, emergency_contact_phone, active, created_at, updated_at`

func scanTenant(row pgx.Row) (*Tenant, error) {
	var t Tenant
	err := row.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.NationalID,
		&t.EmergencyContactName, &t.EmergencyContactPhone, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenant: %w", shared.ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a tenant. A duplicate national id maps to ErrAlreadyExists.
func (r *PgRepository) Create(ctx context.Context, t *Tenant) error {
	const query = `
		INSERT INTO tenants (
			id, first_name, last_name, email, phone, national_id,
			emergency_contact_name, emergency_contact_phone, active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.FirstName, t.LastName, t.Email, t.Phone, t.NationalID,
		t.EmergencyContactName, t.EmergencyContactPhone, t.Active, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("tenant national id %s: %w", t.NationalID, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("tenant: create: %w", err)
	}
	return nil
}

// Get fetches a tenant by id.
func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	query := fmt.Sprintf("SELECT %s FROM tenants WHERE id = $1", tenantColumns)
	return scanTenant(r.pool.QueryRow(ctx, query, id))
}

// GetByNationalID fetches a tenant by national id.
func (r *PgRepository) GetByNationalID(ctx context.Context, nationalID string) (*Tenant, error) {
	query := fmt.Sprintf("SELECT %s FROM tenants WHERE national_id = $1", tenantColumns)
	return scanTenant(r.pool.QueryRow(ctx, query, nationalID))
}

// Update persists all mutable fields of a tenant.
func (r *PgRepository) Update(ctx context.Context, t *Tenant) error {
	const query = `
		UPDATE tenants SET
			first_name = $2, last_name = $3, email = $4, phone = $5,
			emergency_contact_name = $6, emergency_contact_phone = $7,
			active = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		t.ID, t.FirstName, t.LastName, t.Email, t.Phone,
		t.EmergencyContactName, t.EmergencyContactPhone, t.Active, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("tenant: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenant %s: %w", t.ID, shared.ErrNotFound)
	}
	return nil
}

// ListByLandlord returns tenants linked to the landlord through any tenancy,
// past or present.
func (r *PgRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Tenant, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM tenants t
		JOIN tenancies ty ON ty.tenant_id = t.id
		JOIN units u ON u.id = ty.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.landlord_id = $1
		ORDER BY t.last_name, t.first_name`,
		prefixColumns("t"))

	rows, err := r.pool.Query(ctx, query, landlordID)
	if err != nil {
		return nil, fmt.Errorf("tenant: list: %w", err)
	}
	defer rows.Close()

	var out []Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// LinkedToLandlord reports whether any tenancy ties the tenant to the landlord.
func (r *PgRepository) LinkedToLandlord(ctx context.Context, tenantID, landlordID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM tenancies ty
			JOIN units u ON u.id = ty.unit_id
			JOIN properties p ON p.id = u.property_id
			WHERE ty.tenant_id = $1 AND p.landlord_id = $2
		)`
	var linked bool
	if err := r.pool.QueryRow(ctx, query, tenantID, landlordID).Scan(&linked); err != nil {
		return false, fmt.Errorf("tenant: linked check: %w", err)
	}
	return linked, nil
}

func prefixColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.first_name, %[1]s.last_name, %[1]s.email, %[1]s.phone, %[1]s.national_id,
		%[1]s.emergency_contact_name, %[1]s.emergency_contact_phone, %[1]s.active, %[1]s.created_at, %[1]s.updated_at`, alias)
}
