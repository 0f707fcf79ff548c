package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// Repository persists ledger entries.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Get(ctx context.Context, id uuid.UUID) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTenancy(ctx context.Context, tenancyID uuid.UUID) ([]Payment, error)
	ListByLandlordInRange(ctx context.Context, landlordID uuid.UUID, from, to time.Time) ([]Payment, error)
}

// PgRepository is the PostgreSQL backed Repository.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository constructs a repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const paymentColumns = `id, tenancy_id, amount, payment_date, status, reference, created_at, updated_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.TenancyID, &p.Amount, &p.PaymentDate, &p.Status,
		&p.Reference, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment: %w", shared.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a ledger entry.
func (r *PgRepository) Create(ctx context.Context, p *Payment) error {
	query := fmt.Sprintf(`INSERT INTO payments (%s) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`, paymentColumns)
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.TenancyID, p.Amount, p.PaymentDate, p.Status, p.Reference, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("payment: create: %w", err)
	}
	return nil
}

// Get fetches a ledger entry by id.
func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments WHERE id = $1", paymentColumns)
	return scanPayment(r.pool.QueryRow(ctx, query, id))
}

// Update persists mutable fields. The tenancy reference is never updated.
func (r *PgRepository) Update(ctx context.Context, p *Payment) error {
	const query = `
		UPDATE payments SET
			amount = $2, payment_date = $3, status = $4, reference = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Amount, p.PaymentDate, p.Status, p.Reference, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("payment: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", p.ID, shared.ErrNotFound)
	}
	return nil
}

// Delete removes a ledger entry.
func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("payment: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", id, shared.ErrNotFound)
	}
	return nil
}

// ListByTenancy returns a tenancy's ledger, newest payment first.
func (r *PgRepository) ListByTenancy(ctx context.Context, tenancyID uuid.UUID) ([]Payment, error) {
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE tenancy_id = $1 ORDER BY payment_date DESC, created_at DESC`, paymentColumns)
	rows, err := r.pool.Query(ctx, query, tenancyID)
	if err != nil {
		return nil, fmt.Errorf("payment: list: %w", err)
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ListByLandlordInRange returns all of the landlord's payments with a date
// inside [from, to], chained through tenancy, unit and property. Used by
// the reporting engine.
func (r *PgRepository) ListByLandlordInRange(ctx context.Context, landlordID uuid.UUID, from, to time.Time) ([]Payment, error) {
	const query = `
		SELECT pay.id, pay.tenancy_id, pay.amount, pay.payment_date, pay.status,
		       pay.reference, pay.created_at, pay.updated_at
		FROM payments pay
		JOIN tenancies t ON t.id = pay.tenancy_id
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.landlord_id = $1 AND pay.payment_date BETWEEN $2 AND $3
		ORDER BY pay.payment_date`

	rows, err := r.pool.Query(ctx, query, landlordID, from, to)
	if err != nil {
		return nil, fmt.Errorf("payment: list in range: %w", err)
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
