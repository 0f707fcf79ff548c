package contract

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RenderData carries every value a template placeholder can reference,
// joined across the tenancy's ownership chain.
type RenderData struct {
	TenancyID        uuid.UUID
	TenancyStart     time.Time
	TenancyEnd       time.Time
	TenancyStatus    string
	RentAmount       float64
	RentFormatted    string
	Period           string
	TenantFirstName  string
	TenantLastName   string
	TenantEmail      string
	TenantPhone      string
	TenantNationalID string
	LandlordFirst    string
	LandlordLast     string
	LandlordEmail    string
	LandlordPhone    string
	PropertyName     string
	PropertyCode     string
	PropertyAddress  string
	PropertyDistrict string
	PropertyRegion   string
	UnitNumber       string
	UnitDescription  string
}

const dateLayout = "2006-01-02"

// Render substitutes every known {{placeholder}} in content with the
// corresponding value. Unknown placeholders are left untouched so a
// malformed template stays visible in the output instead of failing.
func Render(content string, d RenderData, now time.Time) string {
	r := strings.NewReplacer(
		"{{tenantName}}", d.TenantFirstName+" "+d.TenantLastName,
		"{{tenantFirstName}}", d.TenantFirstName,
		"{{tenantLastName}}", d.TenantLastName,
		"{{tenantEmail}}", d.TenantEmail,
		"{{tenantPhoneNumber}}", d.TenantPhone,
		"{{tenantNationalId}}", d.TenantNationalID,

		"{{landlordName}}", d.LandlordFirst+" "+d.LandlordLast,
		"{{landlordFirstName}}", d.LandlordFirst,
		"{{landlordLastName}}", d.LandlordLast,
		"{{landlordEmail}}", d.LandlordEmail,
		"{{landlordPhoneNumber}}", d.LandlordPhone,

		"{{propertyName}}", d.PropertyName,
		"{{propertyCode}}", d.PropertyCode,
		"{{propertyAddress}}", d.PropertyAddress,
		"{{propertyDistrict}}", d.PropertyDistrict,
		"{{propertyRegion}}", d.PropertyRegion,

		"{{unitNumber}}", d.UnitNumber,
		"{{unitDescription}}", d.UnitDescription,

		"{{tenancyId}}", d.TenancyID.String(),
		"{{tenancyStartDate}}", d.TenancyStart.Format(dateLayout),
		"{{tenancyEndDate}}", d.TenancyEnd.Format(dateLayout),
		"{{rentAmount}}", d.RentFormatted,
		"{{paymentPeriod}}", d.Period,
		"{{tenancyStatus}}", d.TenancyStatus,

		"{{currentDate}}", now.Format(dateLayout),
	)
	return r.Replace(content)
}
