// Package region resolves a caller's country into regional metadata and
// handles currency presentation for API responses.
package region

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ariya-events/ariya/internal/shared"
)

// Locale describes the regional metadata attached to every API response.
type Locale struct {
	CountryCode string
	Region      string
	Currency    string
	Timezone    string
}

var locales = map[string]Locale{
	"US": {CountryCode: "US", Region: "North America", Currency: "USD", Timezone: "America/New_York"},
	"CA": {CountryCode: "CA", Region: "North America", Currency: "CAD", Timezone: "America/Toronto"},
	"GB": {CountryCode: "GB", Region: "Europe", Currency: "GBP", Timezone: "Europe/London"},
	"DE": {CountryCode: "DE", Region: "Europe", Currency: "EUR", Timezone: "Europe/Berlin"},
	"FR": {CountryCode: "FR", Region: "Europe", Currency: "EUR", Timezone: "Europe/Paris"},
	"IN": {CountryCode: "IN", Region: "Asia Pacific", Currency: "INR", Timezone: "Asia/Kolkata"},
	"SG": {CountryCode: "SG", Region: "Asia Pacific", Currency: "SGD", Timezone: "Asia/Singapore"},
	"AU": {CountryCode: "AU", Region: "Asia Pacific", Currency: "AUD", Timezone: "Australia/Sydney"},
	"AE": {CountryCode: "AE", Region: "Middle East", Currency: "AED", Timezone: "Asia/Dubai"},
	"NG": {CountryCode: "NG", Region: "Africa", Currency: "NGN", Timezone: "Africa/Lagos"},
}

// usdRates holds mid-market rates against USD. Presentation only; settlement
// currency handling belongs to the payment service.
var usdRates = map[string]float64{
	"USD": 1,
	"CAD": 1.36,
	"GBP": 0.79,
	"EUR": 0.92,
	"INR": 83.2,
	"SGD": 1.34,
	"AUD": 1.52,
	"AED": 3.67,
	"NGN": 1530,
}

// Resolver maps country codes to locales with a configured fallback.
type Resolver struct {
	fallback Locale
}

// NewResolver constructs a Resolver. defaultCountry picks the fallback
// locale; unknown values fall back to US.
func NewResolver(defaultCountry string) *Resolver {
	fallback, ok := locales[strings.ToUpper(defaultCountry)]
	if !ok {
		fallback = locales["US"]
	}
	return &Resolver{fallback: fallback}
}

// Resolve returns the locale for a country code, or the fallback when the
// code is unknown or empty.
func (r *Resolver) Resolve(countryCode string) Locale {
	if loc, ok := locales[strings.ToUpper(strings.TrimSpace(countryCode))]; ok {
		return loc
	}
	return r.fallback
}

// Convert translates an amount between two supported currencies via USD.
func Convert(amount float64, from, to string) (float64, error) {
	fromRate, ok := usdRates[strings.ToUpper(from)]
	if !ok {
		return 0, shared.Validation("Unsupported currency", map[string]string{"from": from})
	}
	toRate, ok := usdRates[strings.ToUpper(to)]
	if !ok {
		return 0, shared.Validation("Unsupported currency", map[string]string{"to": to})
	}
	return amount / fromRate * toRate, nil
}

// Format renders an amount with its currency symbol for the given locale.
func Format(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v%.2f", currency.Symbol(unit), amount)
}
