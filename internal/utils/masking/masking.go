// Package masking derives display-safe representations of sensitive
// bank-account fields. Masking is purely presentational: it operates on the
// decrypted value and never touches stored state.
package masking

import (
	"strings"

	"github.com/tickethub/payouts_backend/internal/core/domain"
)

// Mask redacts a sensitive field value for display, revealing only the
// per-field suffix (and, for IBANs, prefix). Non-sensitive fields pass
// through unchanged. Empty values stay empty.
func Mask(fieldName, value string) string {
	if value == "" || !domain.IsSensitiveField(fieldName) {
		return value
	}

	switch fieldName {
	case "accountNumber":
		return "•••• •••• •••• " + lastN(value, 4)
	case "routingNumber":
		return "••••••" + lastN(value, 3)
	case "sortCode":
		return "••-••-" + lastN(value, 2)
	case "iban":
		return maskIBAN(value)
	default:
		// No field-specific rule (ifscCode, bsb): still never echo the
		// value, reveal the last two characters only.
		return "••••" + lastN(value, 2)
	}
}

// MaskFields applies Mask to every entry of a field map, returning a copy.
func MaskFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for name, value := range fields {
		out[name] = Mask(name, value)
	}
	return out
}

// maskIBAN reveals the first and last four characters around a fixed bullet
// run. The suffix never reaches back into the prefix, so short values are
// not echoed twice.
func maskIBAN(value string) string {
	r := []rune(value)
	prefix := r[:min(4, len(r))]
	suffix := []rune{}
	if len(r) > 4 {
		suffix = r[max(4, len(r)-4):]
	}
	return string(prefix) + strings.Repeat("•", 16) + string(suffix)
}

func lastN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
