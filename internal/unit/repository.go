package unit

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

// Repository persists units.
type Repository interface {
	Create(ctx context.Context, u *Unit) error
	Get(ctx context.Context, id uuid.UUID) (*Unit, error)
	Update(ctx context.Context, u *Unit) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID, req ListRequest) ([]Unit, int, error)
	CountByPropertyAndStatus(ctx context.Context, propertyID uuid.UUID, status Status) (int, error)
}

// PgRepository is the pgx-backed unit store.
type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const unitColumns = `id, property_id, number, description, monthly_rent, size, image_urls, status, created_at, updated_at`

func scanUnit(row pgx.Row) (*Unit, error) {
	var (
		id, propertyID       uuid.UUID
		number, description  string
		monthlyRent          float64
		size                 string
		imageURLs            []string
		status               Status
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &propertyID, &number, &description, &monthlyRent,
		&size, &imageURLs, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("unit: %w", shared.ErrNotFound)
		}
		return nil, err
	}
	u, err := Reconstruct(id, propertyID, number, description, monthlyRent,
		size, imageURLs, status, createdAt, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("unit %s: corrupt row: %w", id, err)
	}
	return u, nil
}

func (r *PgRepository) Create(ctx context.Context, u *Unit) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO units (`+unitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.PropertyID, u.Number, u.Description, u.MonthlyRent,
		u.Size, u.ImageURLs, u.Status, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("unit number %s: %w", u.Number, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("unit: create: %w", err)
	}
	return nil
}

func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*Unit, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+unitColumns+` FROM units WHERE id = $1`, id)
	return scanUnit(row)
}

func (r *PgRepository) Update(ctx context.Context, u *Unit) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE units
		SET number = $2, description = $3, monthly_rent = $4, size = $5,
		    image_urls = $6, status = $7, updated_at = $8
		WHERE id = $1`,
		u.ID, u.Number, u.Description, u.MonthlyRent, u.Size,
		u.ImageURLs, u.Status, u.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("unit number %s: %w", u.Number, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("unit: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unit %s: %w", u.ID, shared.ErrNotFound)
	}
	return nil
}

// ListByProperty returns a property's units ordered by number, with a total count.
func (r *PgRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID, req ListRequest) ([]Unit, int, error) {
	where := "WHERE property_id = $1"
	args := []any{propertyID}
	if req.Status != nil {
		where += " AND status = $2"
		args = append(args, *req.Status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM units "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("unit: count: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf("SELECT %s FROM units %s ORDER BY number LIMIT %d OFFSET %d",
		unitColumns, where, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("unit: list: %w", err)
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *u)
	}
	return out, total, rows.Err()
}

func (r *PgRepository) CountByPropertyAndStatus(ctx context.Context, propertyID uuid.UUID, status Status) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM units WHERE property_id = $1 AND status = $2`,
		propertyID, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("unit: count by status: %w", err)
	}
	return n, nil
}
