package property

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyumbani/nyumbani/internal/platform/db"
	"github.com/nyumbani/nyumbani/internal/shared"
)

// Repository provides persistence for properties.
type Repository interface {
	Create(ctx context.Context, p *Property) error
	Get(ctx context.Context, id uuid.UUID) (*Property, error)
	GetByCode(ctx context.Context, code string) (*Property, error)
	Update(ctx context.Context, p *Property) error
	ListByLandlord(ctx context.Context, landlordID uuid.UUID, req ListRequest) ([]Property, int, error)
}

// PgRepository is the PostgreSQL backed Repository.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository constructs a repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const propertyColumns = `id, code, name, description, type, landlord_id,
	street, ward, district, region, country, postal_code,
	total_floors, year_built, has_parking, has_security,
	monthly_common_charges, status, created_at, updated_at`

func scanProperty(row pgx.Row) (*Property, error) {
	var (
		id, landlordID          uuid.UUID
		code, name, description string
		typ                     Type
		addr                    Address
		totalFloors             int
		yearBuilt               *int
		hasParking, hasSecurity bool
		commonCharges           float64
		status                  Status
		createdAt, updatedAt    time.Time
	)
	err := row.Scan(
		&id, &code, &name, &description, &typ, &landlordID,
		&addr.Street, &addr.Ward, &addr.District, &addr.Region,
		&addr.Country, &addr.PostalCode,
		&totalFloors, &yearBuilt, &hasParking, &hasSecurity,
		&commonCharges, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("property: %w", shared.ErrNotFound)
		}
		return nil, err
	}
	p, err := Reconstruct(id, code, name, description, typ, landlordID,
		addr, totalFloors, yearBuilt, hasParking, hasSecurity,
		commonCharges, status, createdAt, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("property %s: corrupt row: %w", id, err)
	}
	return p, nil
}

// Create inserts a property. A duplicate code maps to ErrAlreadyExists.
func (r *PgRepository) Create(ctx context.Context, p *Property) error {
	const query = `
		INSERT INTO properties (
			id, code, name, description, type, landlord_id,
			street, ward, district, region, country, postal_code,
			total_floors, year_built, has_parking, has_security,
			monthly_common_charges, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.Description, p.Type, p.LandlordID,
		p.Address.Street, p.Address.Ward, p.Address.District, p.Address.Region,
		p.Address.Country, p.Address.PostalCode,
		p.TotalFloors, p.YearBuilt, p.HasParking, p.HasSecurity,
		p.MonthlyCommonCharges, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("property code %s: %w", p.Code, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("property: create: %w", err)
	}
	return nil
}

// Get fetches a property by id.
func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = $1", propertyColumns)
	return scanProperty(r.pool.QueryRow(ctx, query, id))
}

// GetByCode fetches a property by its globally unique code.
func (r *PgRepository) GetByCode(ctx context.Context, code string) (*Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE code = $1", propertyColumns)
	return scanProperty(r.pool.QueryRow(ctx, query, code))
}

// Update persists all mutable fields of a property.
func (r *PgRepository) Update(ctx context.Context, p *Property) error {
	const query = `
		UPDATE properties SET
			code = $2, name = $3, description = $4, type = $5,
			street = $6, ward = $7, district = $8, region = $9, country = $10, postal_code = $11,
			total_floors = $12, year_built = $13, has_parking = $14, has_security = $15,
			monthly_common_charges = $16, status = $17, updated_at = $18
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.Description, p.Type,
		p.Address.Street, p.Address.Ward, p.Address.District, p.Address.Region,
		p.Address.Country, p.Address.PostalCode,
		p.TotalFloors, p.YearBuilt, p.HasParking, p.HasSecurity,
		p.MonthlyCommonCharges, p.Status, p.UpdatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("property code %s: %w", p.Code, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("property: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property %s: %w", p.ID, shared.ErrNotFound)
	}
	return nil
}

// ListByLandlord returns the landlord's properties, newest first, with a total count.
func (r *PgRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID, req ListRequest) ([]Property, int, error) {
	where := "WHERE landlord_id = $1"
	args := []any{landlordID}
	if req.Status != nil {
		where += " AND status = $2"
		args = append(args, *req.Status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM properties "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("property: count: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf("SELECT %s FROM properties %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		propertyColumns, where, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("property: list: %w", err)
	}
	defer rows.Close()

	var out []Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}
