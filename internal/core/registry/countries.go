package registry

import "sort"

var countryNames = map[string]string{
	"US": "United States",
	"UK": "United Kingdom",
	"CA": "Canada",
	"AU": "Australia",
	"DE": "Germany",
	"FR": "France",
	"IN": "India",
	"PK": "Pakistan",
	"JP": "Japan",
	"CN": "China",
	"BR": "Brazil",
	"MX": "Mexico",
}

// CountryName returns the display name for a country code. Unknown codes
// display their raw code.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}

// SupportedCountryCodes returns the sorted country codes that have a schema
// entry, excluding the DEFAULT fallback.
func SupportedCountryCodes() []string {
	codes := make([]string, 0, len(fieldSchemas)-1)
	for code := range fieldSchemas {
		if code == DefaultCode {
			continue
		}
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
