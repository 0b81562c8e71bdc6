package registry

// FieldSchema describes which bank-account fields a country requires and
// which it additionally accepts. Order matters: validation error messages
// list missing fields in schema order.
type FieldSchema struct {
	Required []string
	Optional []string
}

// DefaultCode is the fallback schema applied to countries without an entry.
// It is excluded from the supported-countries projection.
const DefaultCode = "DEFAULT"

var fieldSchemas = map[string]FieldSchema{
	"US": {
		Required: []string{"accountHolderName", "routingNumber", "accountNumber", "accountType", "bankName"},
		Optional: []string{"swiftCode", "address"},
	},
	"UK": {
		Required: []string{"accountHolderName", "sortCode", "accountNumber", "bankName"},
		Optional: []string{"swiftCode", "iban", "address"},
	},
	"CA": {
		Required: []string{"accountHolderName", "institutionNumber", "transitNumber", "accountNumber", "bankName"},
		Optional: []string{"swiftCode", "address"},
	},
	"AU": {
		Required: []string{"accountHolderName", "bsb", "accountNumber", "bankName"},
		Optional: []string{"swiftCode", "address"},
	},
	"DE": {
		Required: []string{"accountHolderName", "iban", "bic", "bankName"},
		Optional: []string{"address"},
	},
	"FR": {
		Required: []string{"accountHolderName", "iban", "bic", "bankName"},
		Optional: []string{"address"},
	},
	"IN": {
		Required: []string{"accountHolderName", "accountNumber", "ifscCode", "bankName"},
		Optional: []string{"swiftCode", "address", "panNumber"},
	},
	"PK": {
		Required: []string{"accountHolderName", "accountNumber", "bankName", "branchCode"},
		Optional: []string{"swiftCode", "iban", "address", "cnic"},
	},
	"JP": {
		Required: []string{"accountHolderName", "bankCode", "branchCode", "accountNumber", "bankName"},
		Optional: []string{"swiftCode", "address"},
	},
	"CN": {
		Required: []string{"accountHolderName", "accountNumber", "bankName", "cityCode"},
		Optional: []string{"swiftCode", "address"},
	},
	"BR": {
		Required: []string{"accountHolderName", "bankCode", "agencyNumber", "accountNumber", "bankName"},
		Optional: []string{"swiftCode", "address", "cpfCnpj"},
	},
	"MX": {
		Required: []string{"accountHolderName", "clabe", "bankName"},
		Optional: []string{"swiftCode", "address", "rfc"},
	},
	DefaultCode: {
		Required: []string{"accountHolderName", "accountNumber", "bankName", "country"},
		Optional: []string{"swiftCode", "iban", "routingCode", "address"},
	},
}

// SchemaFor returns the field schema for the given country code, falling
// back to the DEFAULT schema for unknown codes.
func SchemaFor(country string) FieldSchema {
	if s, ok := fieldSchemas[country]; ok {
		return s
	}
	return fieldSchemas[DefaultCode]
}

// RequiredFields returns the ordered required field names for a country.
func RequiredFields(country string) []string {
	return SchemaFor(country).Required
}

// OptionalFields returns the ordered optional field names for a country.
func OptionalFields(country string) []string {
	return SchemaFor(country).Optional
}
