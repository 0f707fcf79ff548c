package tenancy

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

// Repository persists tenancies and carries the paired unit-status updates.
// The pairing methods run the tenancy write and the unit write in one
// transaction: both succeed or both roll back.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Tenancy, error)
	Update(ctx context.Context, t *Tenancy) error
	ListByLandlord(ctx context.Context, landlordID uuid.UUID, req ListRequest) ([]Tenancy, int, error)
	ListByUnit(ctx context.Context, unitID uuid.UUID) ([]Tenancy, error)

	// CreateOccupying inserts the tenancy and flips its unit from VACANT
	// to the given status in the same transaction. The conditional unit
	// update acts as a compare-and-swap: if the unit is no longer VACANT
	// the whole transaction fails with ErrStateConflict, so two racing
	// creations can never both win.
	CreateOccupying(ctx context.Context, t *Tenancy, unitStatus string) error

	// EndVacating persists a terminal tenancy state and returns its unit
	// to VACANT in the same transaction.
	EndVacating(ctx context.Context, t *Tenancy) error

	// Promote persists an activated tenancy and moves its unit from
	// RESERVED to OCCUPIED in the same transaction.
	Promote(ctx context.Context, t *Tenancy) error

	// ListEndingBy returns open tenancies whose end date is on or before
	// the given day, for expiry processing.
	ListEndingBy(ctx context.Context, date time.Time) ([]Tenancy, error)

	// ListStartingBy returns upcoming tenancies whose start date has
	// arrived, for activation processing.
	ListStartingBy(ctx context.Context, date time.Time) ([]Tenancy, error)
}

// PgRepository is the PostgreSQL backed Repository.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository constructs a repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const tenancyColumns = `id, tenant_id, unit_id, start_date, end_date, rent_amount,
	period, status, contract_url, created_at, updated_at`

func scanTenancy(row pgx.Row) (*Tenancy, error) {
	var (
		id, tenantID, unitID uuid.UUID
		start, end           time.Time
		rent                 float64
		period               Period
		status               Status
		contractURL          string
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &tenantID, &unitID, &start, &end, &rent,
		&period, &status, &contractURL, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenancy: %w", shared.ErrNotFound)
		}
		return nil, err
	}
	t, err := Reconstruct(id, tenantID, unitID, start, end, rent,
		period, status, contractURL, createdAt, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("tenancy %s: corrupt row: %w", id, err)
	}
	return t, nil
}

// Get fetches a tenancy by id.
func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*Tenancy, error) {
	query := fmt.Sprintf("SELECT %s FROM tenancies WHERE id = $1", tenancyColumns)
	return scanTenancy(r.pool.QueryRow(ctx, query, id))
}

// Update persists mutable tenancy fields without touching the unit.
// Used for metadata updates such as attaching a contract.
func (r *PgRepository) Update(ctx context.Context, t *Tenancy) error {
	tag, err := r.pool.Exec(ctx, updateTenancySQL,
		t.ID, t.EndDate, t.Status, t.ContractURL, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("tenancy: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenancy %s: %w", t.ID, shared.ErrNotFound)
	}
	return nil
}

const updateTenancySQL = `
	UPDATE tenancies SET
		end_date = $2, status = $3, contract_url = $4, updated_at = $5
	WHERE id = $1`

// CreateOccupying inserts the tenancy and claims its unit atomically.
func (r *PgRepository) CreateOccupying(ctx context.Context, t *Tenancy, unitStatus string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE units SET status = $2, updated_at = now() WHERE id = $1 AND status = 'VACANT'`,
			t.UnitID, unitStatus)
		if err != nil {
			return fmt.Errorf("tenancy: claim unit: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("unit %s is not vacant: %w", t.UnitID, shared.ErrStateConflict)
		}

		query := fmt.Sprintf(`INSERT INTO tenancies (%s) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`, tenancyColumns)
		_, err = tx.Exec(ctx, query,
			t.ID, t.TenantID, t.UnitID, t.StartDate, t.EndDate, t.RentAmount,
			t.Period, t.Status, t.ContractURL, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return fmt.Errorf("unit %s already has an open tenancy: %w", t.UnitID, shared.ErrStateConflict)
			}
			return fmt.Errorf("tenancy: create: %w", err)
		}
		return nil
	})
}

// EndVacating persists the terminal tenancy state and frees the unit.
func (r *PgRepository) EndVacating(ctx context.Context, t *Tenancy) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, updateTenancySQL,
			t.ID, t.EndDate, t.Status, t.ContractURL, t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("tenancy: update: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("tenancy %s: %w", t.ID, shared.ErrNotFound)
		}

		_, err = tx.Exec(ctx,
			`UPDATE units SET status = 'VACANT', updated_at = now() WHERE id = $1`,
			t.UnitID)
		if err != nil {
			return fmt.Errorf("tenancy: release unit: %w", err)
		}
		return nil
	})
}

// Promote persists an activated tenancy and occupies its reserved unit.
func (r *PgRepository) Promote(ctx context.Context, t *Tenancy) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, updateTenancySQL,
			t.ID, t.EndDate, t.Status, t.ContractURL, t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("tenancy: update: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("tenancy %s: %w", t.ID, shared.ErrNotFound)
		}

		tag, err = tx.Exec(ctx,
			`UPDATE units SET status = 'OCCUPIED', updated_at = now() WHERE id = $1 AND status = 'RESERVED'`,
			t.UnitID)
		if err != nil {
			return fmt.Errorf("tenancy: occupy unit: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("unit %s is not reserved: %w", t.UnitID, shared.ErrStateConflict)
		}
		return nil
	})
}

// ListByLandlord returns tenancies whose units belong to the landlord.
func (r *PgRepository) ListByLandlord(ctx context.Context, landlordID uuid.UUID, req ListRequest) ([]Tenancy, int, error) {
	where := `JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.landlord_id = $1`
	args := []any{landlordID}
	if req.Status != nil {
		args = append(args, *req.Status)
		where += fmt.Sprintf(" AND t.status = $%d", len(args))
	}
	if req.UnitID != nil {
		args = append(args, *req.UnitID)
		where += fmt.Sprintf(" AND t.unit_id = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM tenancies t "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("tenancy: count: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT %s FROM tenancies t %s ORDER BY t.start_date DESC LIMIT %d OFFSET %d`,
		prefixTenancyColumns("t"), where, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("tenancy: list: %w", err)
	}
	defer rows.Close()

	var out []Tenancy
	for rows.Next() {
		t, err := scanTenancy(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *t)
	}
	return out, total, rows.Err()
}

// ListByUnit returns a unit's full tenancy history, newest first.
func (r *PgRepository) ListByUnit(ctx context.Context, unitID uuid.UUID) ([]Tenancy, error) {
	query := fmt.Sprintf(`SELECT %s FROM tenancies WHERE unit_id = $1 ORDER BY start_date DESC`, tenancyColumns)
	rows, err := r.pool.Query(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("tenancy: list by unit: %w", err)
	}
	defer rows.Close()

	var out []Tenancy
	for rows.Next() {
		t, err := scanTenancy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// ListEndingBy returns ACTIVE tenancies whose end date is on or before date.
func (r *PgRepository) ListEndingBy(ctx context.Context, date time.Time) ([]Tenancy, error) {
	query := fmt.Sprintf(`SELECT %s FROM tenancies WHERE status = 'ACTIVE' AND end_date <= $1`, tenancyColumns)
	return r.queryMany(ctx, query, date)
}

// ListStartingBy returns UPCOMING tenancies whose start date is on or before date.
func (r *PgRepository) ListStartingBy(ctx context.Context, date time.Time) ([]Tenancy, error) {
	query := fmt.Sprintf(`SELECT %s FROM tenancies WHERE status = 'UPCOMING' AND start_date <= $1`, tenancyColumns)
	return r.queryMany(ctx, query, date)
}

func (r *PgRepository) queryMany(ctx context.Context, query string, args ...any) ([]Tenancy, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tenancy: query: %w", err)
	}
	defer rows.Close()

	var out []Tenancy
	for rows.Next() {
		t, err := scanTenancy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func prefixTenancyColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.tenant_id, %[1]s.unit_id, %[1]s.start_date, %[1]s.end_date, %[1]s.rent_amount,
		%[1]s.period, %[1]s.status, %[1]s.contract_url, %[1]s.created_at, %[1]s.updated_at`, alias)
}
