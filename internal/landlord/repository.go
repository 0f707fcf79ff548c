package landlord

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

// Repository persists landlords.
type Repository interface {
	Create(ctx context.Context, l *Landlord) error
	Get(ctx context.Context, id uuid.UUID) (*Landlord, error)
	GetByEmail(ctx context.Context, email string) (*Landlord, error)
	Update(ctx context.Context, l *Landlord) error
}

// PgRepository is the PostgreSQL backed Repository.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository constructs a repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const landlordColumns = `id, first_name, last_name, email, phone, national_id, tax_id,
	password_hash, active, created_at, updated_at`

func scanLandlord(row pgx.Row) (*Landlord, error) {
	var l Landlord
	err := row.Scan(&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.Phone,
		&l.NationalID, &l.TaxID, &l.PasswordHash, &l.Active, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("landlord: %w", shared.ErrNotFound)
		}
		return nil, err
	}
	return &l, nil
}

// Create inserts a landlord. A duplicate email maps to ErrAlreadyExists.
func (r *PgRepository) Create(ctx context.Context, l *Landlord) error {
	const query = `
		INSERT INTO landlords (
			id, first_name, last_name, email, phone, national_id, tax_id,
			password_hash, active, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := r.pool.Exec(ctx, query,
		l.ID, l.FirstName, l.LastName, l.Email, l.Phone, l.NationalID, l.TaxID,
		l.PasswordHash, l.Active, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("landlord email %s: %w", l.Email, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("landlord: create: %w", err)
	}
	return nil
}

// Get fetches a landlord by id.
func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*Landlord, error) {
	query := fmt.Sprintf("SELECT %s FROM landlords WHERE id = $1", landlordColumns)
	return scanLandlord(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail fetches a landlord by email, used for login.
func (r *PgRepository) GetByEmail(ctx context.Context, email string) (*Landlord, error) {
	query := fmt.Sprintf("SELECT %s FROM landlords WHERE email = $1", landlordColumns)
	return scanLandlord(r.pool.QueryRow(ctx, query, email))
}

// Update persists all mutable fields of a landlord.
func (r *PgRepository) Update(ctx context.Context, l *Landlord) error {
	const query = `
		UPDATE landlords SET
			first_name = $2, last_name = $3, email = $4, phone = $5,
			national_id = $6, tax_id = $7, password_hash = $8, active = $9, updated_at = $10
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		l.ID, l.FirstName, l.LastName, l.Email, l.Phone,
		l.NationalID, l.TaxID, l.PasswordHash, l.Active, l.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("landlord email %s: %w", l.Email, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("landlord: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("landlord %s: %w", l.ID, shared.ErrNotFound)
	}
	return nil
}
