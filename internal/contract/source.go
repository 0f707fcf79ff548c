package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyumbani/nyumbani/internal/shared"
)

// DataSource gathers the placeholder values for one tenancy.
type DataSource interface {
	Data(ctx context.Context, tenancyID uuid.UUID) (*RenderData, error)
}

// PgDataSource joins the tenancy's full ownership chain in one query.
type PgDataSource struct {
	pool *pgxpool.Pool
}

// NewPgDataSource constructs a data source.
func NewPgDataSource(pool *pgxpool.Pool) *PgDataSource {
	return &PgDataSource{pool: pool}
}

// Data loads the render data for a tenancy, or ErrNotFound when the
// tenancy or any link in its chain is missing.
func (s *PgDataSource) Data(ctx context.Context, tenancyID uuid.UUID) (*RenderData, error) {
	const query = `
		SELECT t.id, t.start_date, t.end_date, t.status, t.rent_amount, t.period,
		       tn.first_name, tn.last_name, tn.email, tn.phone, tn.national_id,
		       l.first_name, l.last_name, l.email, l.phone,
		       p.name, p.code, p.street, p.ward, p.district, p.region,
		       u.number, u.description
		FROM tenancies t
		JOIN tenants tn ON tn.id = t.tenant_id
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		JOIN landlords l ON l.id = p.landlord_id
		WHERE t.id = $1`

	var (
		d            RenderData
		street, ward string
	)
	err := s.pool.QueryRow(ctx, query, tenancyID).Scan(
		&d.TenancyID, &d.TenancyStart, &d.TenancyEnd, &d.TenancyStatus, &d.RentAmount, &d.Period,
		&d.TenantFirstName, &d.TenantLastName, &d.TenantEmail, &d.TenantPhone, &d.TenantNationalID,
		&d.LandlordFirst, &d.LandlordLast, &d.LandlordEmail, &d.LandlordPhone,
		&d.PropertyName, &d.PropertyCode, &street, &ward, &d.PropertyDistrict, &d.PropertyRegion,
		&d.UnitNumber, &d.UnitDescription)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenancy %s: %w", tenancyID, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("contract: load render data: %w", err)
	}
	d.PropertyAddress = street
	if ward != "" {
		d.PropertyAddress += ", " + ward
	}
	d.PropertyAddress += ", " + d.PropertyDistrict + ", " + d.PropertyRegion + ", " + shared.DefaultCountry
	d.RentFormatted = shared.FormatTZS(d.RentAmount)
	return &d, nil
}
