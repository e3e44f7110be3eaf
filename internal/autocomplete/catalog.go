// Package autocomplete suggests city labels for the search form.
package autocomplete

import (
	"strings"

	"github.com/samber/lo"
)

var defaultCities = []string{
	"Mumbai (BOM)",
	"Delhi (DEL)",
	"Bangalore (BLR)",
	"Chennai (MAA)",
	"Kolkata (CCU)",
	"Hyderabad (HYD)",
	"Ahmedabad (AMD)",
	"Pune (PNQ)",
	"Goa (GOI)",
	"Jaipur (JAI)",
}

// DefaultCatalog returns a fresh copy of the built-in city labels.
func DefaultCatalog() []string {
	return append([]string(nil), defaultCities...)
}

// Suggest returns the catalog entries containing partial, ignoring case, in
// catalog order. An empty partial yields no suggestions.
func Suggest(catalog []string, partial string) []string {
	if partial == "" {
		return []string{}
	}
	needle := strings.ToLower(partial)
	return lo.Filter(catalog, func(city string, _ int) bool {
		return strings.Contains(strings.ToLower(city), needle)
	})
}
