package registry

import (
	"fmt"
	"strings"

	"github.com/tickethub/payouts_backend/internal/apperrors"
)

// Validate checks a candidate bank-account field set against the country's
// schema. The missing-required check runs first and lists all missing fields
// in schema order; only if it passes are format patterns applied, failing on
// the first mismatch. All failures wrap apperrors.ErrValidation.
func Validate(country string, fields map[string]string) error {
	schema := SchemaFor(country)

	var missing []string
	for _, name := range schema.Required {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s: %w", strings.Join(missing, ", "), apperrors.ErrValidation)
	}

	for _, fp := range validationPatterns[country] {
		value, ok := fields[fp.field]
		if !ok || value == "" {
			continue
		}
		if !fp.re.MatchString(value) {
			return fmt.Errorf("invalid format for %s: %w", fp.field, apperrors.ErrValidation)
		}
	}

	return nil
}
