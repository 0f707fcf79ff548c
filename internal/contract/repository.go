package contract

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

// Repository persists contract templates.
type Repository interface {
	Create(ctx context.Context, t *Template) error
	Get(ctx context.Context, id uuid.UUID) (*Template, error)
	GetByName(ctx context.Context, landlordID uuid.UUID, name string) (*Template, error)
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Template, error)
}

// PgRepository is the PostgreSQL backed Repository.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository constructs a repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const templateColumns = `id, landlord_id, name, content, description, active, created_at, updated_at`

func scanTemplate(row pgx.Row) (*Template, error) {
	var t Template
	err := row.Scan(&t.ID, &t.LandlordID, &t.Name, &t.Content, &t.Description,
		&t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("contract template: %w", shared.ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a template.
func (r *PgRepository) Create(ctx context.Context, t *Template) error {
	query := fmt.Sprintf(`INSERT INTO contract_templates (%s) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`, templateColumns)
	_, err := r.pool.Exec(ctx, query,
		t.ID, t.LandlordID, t.Name, t.Content, t.Description, t.Active, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("contract template %s: %w", t.Name, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("contract template: create: %w", err)
	}
	return nil
}

// Get fetches a template by id.
func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	query := fmt.Sprintf("SELECT %s FROM contract_templates WHERE id = $1", templateColumns)
	return scanTemplate(r.pool.QueryRow(ctx, query, id))
}

// GetByName fetches a landlord's template by its unique name.
func (r *PgRepository) GetByName(ctx context.Context, landlordID uuid.UUID, name string) (*Template, error) {
	query := fmt.Sprintf("SELECT %s FROM contract_templates WHERE landlord_id = $1 AND name = $2", templateColumns)
	return scanTemplate(r.pool.QueryRow(ctx, query, landlordID, name))
}

// Update persists mutable fields.
func (r *PgRepository) Update(ctx context.Context, t *Template) error {
	const query = `
		UPDATE contract_templates SET
			name = $2, content = $3, description = $4, active = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		t.ID, t.Name, t.Content, t.Description, t.Active, t.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("contract template %s: %w", t.Name, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("contract template: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contract template %s: %w", t.ID, shared.ErrNotFound)
	}
	return nil
}

// Delete removes a template.
func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contract_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("contract template: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contract template %s: %w", id, shared.ErrNotFound)
	}
	return nil
}

// ListByLandlord returns all of the landlord's templates, name order.
func (r *PgRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Template, error) {
	query := fmt.Sprintf(`SELECT %s FROM contract_templates WHERE landlord_id = $1 ORDER BY name`, templateColumns)
	rows, err := r.pool.Query(ctx, query, landlordID)
	if err != nil {
		return nil, fmt.Errorf("contract template: list: %w", err)
	}
	defer rows.Close()
	var out []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
