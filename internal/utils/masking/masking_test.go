package masking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickethub/payouts_backend/internal/utils/masking"
)

func TestMask_AccountNumber(t *testing.T) {
	assert.Equal(t, "•••• •••• •••• 5678", masking.Mask("accountNumber", "12345678"))
}

func TestMask_RoutingNumber(t *testing.T) {
	assert.Equal(t, "••••••021", masking.Mask("routingNumber", "021000021"))
}

func TestMask_SortCode(t *testing.T) {
	assert.Equal(t, "••-••-56", masking.Mask("sortCode", "12-34-56"))
}

func TestMask_IBAN(t *testing.T) {
	assert.Equal(t, "DE89••••••••••••••••3000", masking.Mask("iban", "DE89370400440532013000"))
}

func TestMask_ShortIBANNotEchoedTwice(t *testing.T) {
	// Values covered by the prefix reveal contribute nothing to the suffix.
	assert.Equal(t, "AB12••••••••••••••••", masking.Mask("iban", "AB12"))
	assert.Equal(t, "AB1••••••••••••••••", masking.Mask("iban", "AB1"))
	// The suffix never reaches back into the revealed prefix.
	assert.Equal(t, "AB12••••••••••••••••34", masking.Mask("iban", "AB1234"))
}

func TestMask_FieldsWithoutSpecificRule(t *testing.T) {
	assert.Equal(t, "••••34", masking.Mask("ifscCode", "HDFC0001234"))
	assert.Equal(t, "••••56", masking.Mask("bsb", "123456"))
}

func TestMask_NonSensitivePassesThrough(t *testing.T) {
	assert.Equal(t, "John Smith", masking.Mask("accountHolderName", "John Smith"))
	assert.Equal(t, "Chase", masking.Mask("bankName", "Chase"))
}

func TestMask_EmptyValueStaysEmpty(t *testing.T) {
	assert.Equal(t, "", masking.Mask("accountNumber", ""))
}

func TestMask_ShortValueNotWidened(t *testing.T) {
	// Values shorter than the reveal window are used whole rather than padded.
	assert.Equal(t, "•••• •••• •••• 123", masking.Mask("accountNumber", "123"))
	assert.Equal(t, "••-••-9", masking.Mask("sortCode", "9"))
}

func TestMaskFields_CopiesAndMasks(t *testing.T) {
	in := map[string]string{
		"accountHolderName": "Jane Doe",
		"accountNumber":     "87654321",
	}
	out := masking.MaskFields(in)

	assert.Equal(t, "Jane Doe", out["accountHolderName"])
	assert.Equal(t, "•••• •••• •••• 4321", out["accountNumber"])
	// Input map untouched.
	assert.Equal(t, "87654321", in["accountNumber"])
}
