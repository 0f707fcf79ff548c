package contract

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func sampleData() RenderData {
	return RenderData{
		TenancyID:        uuid.MustParse("9f3c8a52-1f6e-4a0b-9a51-96c51a3f2e11"),
		TenancyStart:     time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		TenancyEnd:       time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
		TenancyStatus:    "ACTIVE",
		RentAmount:       500000,
		RentFormatted:    "500,000.00 TZS",
		Period:           "MONTHLY",
		TenantFirstName:  "Asha",
		TenantLastName:   "Mushi",
		TenantEmail:      "asha@example.com",
		TenantPhone:      "+255712345678",
		TenantNationalID: "19900101-12345-00001-23",
		LandlordFirst:    "Juma",
		LandlordLast:     "Kileo",
		LandlordEmail:    "juma@example.com",
		LandlordPhone:    "+255713000000",
		PropertyName:     "Mikocheni Court",
		PropertyCode:     "DSM-001",
		PropertyAddress:  "Uhuru Street 12, Upanga, Ilala, Dar es Salaam, Tanzania",
		PropertyDistrict: "Ilala",
		PropertyRegion:   "Dar es Salaam",
		UnitNumber:       "A1",
		UnitDescription:  "Two bedroom unit",
	}
}

func TestRenderSubstitutesPlaceholders(t *testing.T) {
	content := "This agreement is between {{landlordName}} and {{tenantName}} " +
		"for unit {{unitNumber}} at {{propertyName}}, {{propertyAddress}}. " +
		"Rent: {{rentAmount}} payable {{paymentPeriod}}, from {{tenancyStartDate}} " +
		"to {{tenancyEndDate}}. Signed on {{currentDate}}."

	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	out := Render(content, sampleData(), now)

	require.Contains(t, out, "between Juma Kileo and Asha Mushi")
	require.Contains(t, out, "unit A1 at Mikocheni Court")
	require.Contains(t, out, "Rent: 500,000.00 TZS payable MONTHLY")
	require.Contains(t, out, "from 2026-01-01 to 2026-12-31")
	require.Contains(t, out, "Signed on 2026-03-10")
	require.NotContains(t, out, "{{")
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	out := Render("Hello {{tenantFirstName}}, see {{notAField}}.", sampleData(), time.Now())
	require.Contains(t, out, "Hello Asha")
	require.Contains(t, out, "{{notAField}}")
}
