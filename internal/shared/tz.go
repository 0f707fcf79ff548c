package shared

import (
	"regexp"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Tanzanian locale constants used across aggregates.
const (
	DefaultCountry  = "Tanzania"
	DefaultCurrency = "TZS"
)

var phonePattern = regexp.MustCompile(`^\+255[0-9]{9}$`)

// ValidPhone reports whether v is a Tanzanian phone number in international format.
func ValidPhone(v string) bool {
	return phonePattern.MatchString(v)
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatTZS renders an amount with thousands separators and the TZS
// currency code, e.g. "500,000.00 TZS".
func FormatTZS(amount float64) string {
	return moneyPrinter.Sprintf("%.2f TZS", amount)
}

var regions = map[string]struct{}{
	"Dar es Salaam": {}, "Arusha": {}, "Dodoma": {}, "Mwanza": {}, "Mbeya": {},
	"Morogoro": {}, "Tanga": {}, "Kigoma": {}, "Moshi": {}, "Tabora": {},
	"Songea": {}, "Musoma": {}, "Iringa": {}, "Shinyanga": {}, "Bukoba": {},
	"Mtwara": {}, "Lindi": {}, "Ruvuma": {}, "Kagera": {}, "Geita": {},
	"Simiyu": {}, "Manyara": {}, "Katavi": {}, "Njombe": {}, "Pwani": {},
}

// ValidRegion reports whether v names a Tanzanian administrative region.
func ValidRegion(v string) bool {
	_, ok := regions[v]
	return ok
}
