package domain

// sensitiveFields lists the bank-account field names that are encrypted at
// rest and only ever returned in masked form, regardless of country.
var sensitiveFields = map[string]struct{}{
	"accountNumber": {},
	"routingNumber": {},
	"sortCode":      {},
	"iban":          {},
	"ifscCode":      {},
	"bsb":           {},
}

// IsSensitiveField reports whether the named bank-account field must never be
// persisted or returned in plaintext.
func IsSensitiveField(name string) bool {
	_, ok := sensitiveFields[name]
	return ok
}

// BankAccount represents one payout destination belonging to a user.
// Fields holds the country-specific attributes (account holder name, account
// number, routing/sort/IBAN codes, bank name, ...). Sensitive entries are
// stored as cipher tokens; the service layer decrypts and masks them before
// anything leaves the API.
type BankAccount struct {
	BankAccountID string            `json:"bankAccountID"`
	UserID        string            `json:"userID"`
	Country       string            `json:"country"`
	IsPrimary     bool              `json:"isPrimary"`
	IsActive      bool              `json:"isActive"`
	Fields        map[string]string `json:"fields"`
	AuditFields
}

// CloneFields returns a shallow copy of the account's field map so callers
// can project or re-encrypt values without mutating the original.
func (a *BankAccount) CloneFields() map[string]string {
	out := make(map[string]string, len(a.Fields))
	for k, v := range a.Fields {
		out[k] = v
	}
	return out
}
