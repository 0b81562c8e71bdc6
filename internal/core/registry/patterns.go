package registry

import "regexp"

// fieldPattern pairs a field name with its format check. Patterns are kept in
// ordered slices so that validation reports the first mismatch
// deterministically.
type fieldPattern struct {
	field string
	re    *regexp.Regexp
}

// Patterns are syntactic shape checks only (digit counts, fixed-format
// codes). They are not a security boundary.
var validationPatterns = map[string][]fieldPattern{
	"US": {
		{"routingNumber", regexp.MustCompile(`^\d{9}$`)},
		{"accountNumber", regexp.MustCompile(`^\d{4,20}$`)},
	},
	"UK": {
		{"sortCode", regexp.MustCompile(`^\d{2}-\d{2}-\d{2}$`)},
		{"accountNumber", regexp.MustCompile(`^\d{8}$`)},
	},
	"CA": {
		{"institutionNumber", regexp.MustCompile(`^\d{3}$`)},
		{"transitNumber", regexp.MustCompile(`^\d{5}$`)},
		{"accountNumber", regexp.MustCompile(`^\d{7,12}$`)},
	},
	"AU": {
		{"bsb", regexp.MustCompile(`^\d{6}$`)},
		{"accountNumber", regexp.MustCompile(`^\d{6,9}$`)},
	},
	"DE": {
		{"iban", regexp.MustCompile(`^DE\d{2}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{2}$`)},
		{"bic", regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)},
	},
	"FR": {
		{"iban", regexp.MustCompile(`^FR\d{2}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{4}\s?\d{2}$`)},
		{"bic", regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)},
	},
	"IN": {
		{"accountNumber", regexp.MustCompile(`^\d{9,18}$`)},
		{"ifscCode", regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)},
		{"panNumber", regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)},
	},
	"PK": {
		{"accountNumber", regexp.MustCompile(`^\d{10,16}$`)},
		{"branchCode", regexp.MustCompile(`^\d{4}$`)},
		{"cnic", regexp.MustCompile(`^\d{5}-\d{7}-\d$`)},
	},
}

// PatternsFor returns the per-field validation patterns for a country.
// Countries without format constraints yield an empty map.
func PatternsFor(country string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(validationPatterns[country]))
	for _, fp := range validationPatterns[country] {
		out[fp.field] = fp.re
	}
	return out
}
