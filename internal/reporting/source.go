package reporting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyumbani/nyumbani/internal/payment"
	"github.com/nyumbani/nyumbani/internal/property"
	"github.com/nyumbani/nyumbani/internal/tenancy"
	"github.com/nyumbani/nyumbani/internal/tenant"
	"github.com/nyumbani/nyumbani/internal/unit"
)

// PgSource reads snapshot rows straight from PostgreSQL, one scoped query
// per aggregate set.
type PgSource struct {
	pool *pgxpool.Pool
}

// NewPgSource constructs a source.
func NewPgSource(pool *pgxpool.Pool) *PgSource {
	return &PgSource{pool: pool}
}

// Properties returns all of the landlord's properties.
func (s *PgSource) Properties(ctx context.Context, landlordID uuid.UUID) ([]property.Property, error) {
	const query = `
		SELECT id, code, name, description, type, landlord_id,
		       street, ward, district, region, country, postal_code,
		       total_floors, year_built, has_parking, has_security,
		       monthly_common_charges, status, created_at, updated_at
		FROM properties WHERE landlord_id = $1`

	rows, err := s.pool.Query(ctx, query, landlordID)
	if err != nil {
		return nil, fmt.Errorf("reporting: load properties: %w", err)
	}
	defer rows.Close()

	var out []property.Property
	for rows.Next() {
		var p property.Property
		err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.Description, &p.Type, &p.LandlordID,
			&p.Address.Street, &p.Address.Ward, &p.Address.District, &p.Address.Region,
			&p.Address.Country, &p.Address.PostalCode,
			&p.TotalFloors, &p.YearBuilt, &p.HasParking, &p.HasSecurity,
			&p.MonthlyCommonCharges, &p.Status, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Units returns all units under the landlord's properties.
func (s *PgSource) Units(ctx context.Context, landlordID uuid.UUID) ([]unit.Unit, error) {
	const query = `
		SELECT u.id, u.property_id, u.number, u.description, u.monthly_rent,
		       u.size, u.image_urls, u.status, u.created_at, u.updated_at
		FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE p.landlord_id = $1`

	rows, err := s.pool.Query(ctx, query, landlordID)
	if err != nil {
		return nil, fmt.Errorf("reporting: load units: %w", err)
	}
	defer rows.Close()

	var out []unit.Unit
	for rows.Next() {
		var u unit.Unit
		err := rows.Scan(&u.ID, &u.PropertyID, &u.Number, &u.Description, &u.MonthlyRent,
			&u.Size, &u.ImageURLs, &u.Status, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Tenancies returns all tenancies chained to the landlord.
func (s *PgSource) Tenancies(ctx context.Context, landlordID uuid.UUID) ([]tenancy.Tenancy, error) {
	const query = `
		SELECT t.id, t.tenant_id, t.unit_id, t.start_date, t.end_date, t.rent_amount,
		       t.period, t.status, t.contract_url, t.created_at, t.updated_at
		FROM tenancies t
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.landlord_id = $1`

	rows, err := s.pool.Query(ctx, query, landlordID)
	if err != nil {
		return nil, fmt.Errorf("reporting: load tenancies: %w", err)
	}
	defer rows.Close()

	var out []tenancy.Tenancy
	for rows.Next() {
		var t tenancy.Tenancy
		err := rows.Scan(&t.ID, &t.TenantID, &t.UnitID, &t.StartDate, &t.EndDate, &t.RentAmount,
			&t.Period, &t.Status, &t.ContractURL, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Payments returns all ledger entries chained to the landlord.
func (s *PgSource) Payments(ctx context.Context, landlordID uuid.UUID) ([]payment.Payment, error) {
	const query = `
		SELECT pay.id, pay.tenancy_id, pay.amount, pay.payment_date, pay.status,
		       pay.reference, pay.created_at, pay.updated_at
		FROM payments pay
		JOIN tenancies t ON t.id = pay.tenancy_id
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.landlord_id = $1`

	rows, err := s.pool.Query(ctx, query, landlordID)
	if err != nil {
		return nil, fmt.Errorf("reporting: load payments: %w", err)
	}
	defer rows.Close()

	var out []payment.Payment
	for rows.Next() {
		var p payment.Payment
		err := rows.Scan(&p.ID, &p.TenancyID, &p.Amount, &p.PaymentDate, &p.Status,
			&p.Reference, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Tenants returns all tenant identities linked to the landlord.
func (s *PgSource) Tenants(ctx context.Context, landlordID uuid.UUID) ([]tenant.Tenant, error) {
	const query = `
		SELECT DISTINCT tn.id, tn.first_name, tn.last_name, tn.email, tn.phone, tn.national_id,
		       tn.emergency_contact_name, tn.emergency_contact_phone, tn.active, tn.created_at, tn.updated_at
		FROM tenants tn
		JOIN tenancies t ON t.tenant_id = tn.id
		JOIN units u ON u.id = t.unit_id
		JOIN properties p ON p.id = u.property_id
		WHERE p.landlord_id = $1`

	rows, err := s.pool.Query(ctx, query, landlordID)
	if err != nil {
		return nil, fmt.Errorf("reporting: load tenants: %w", err)
	}
	defer rows.Close()

	var out []tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		err := rows.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.NationalID,
			&t.EmergencyContactName, &t.EmergencyContactPhone, &t.Active, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
