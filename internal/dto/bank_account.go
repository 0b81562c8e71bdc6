package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tickethub/payouts_backend/internal/core/domain"
)

// CreateBankAccountRequest carries the payload for creating a bank account.
// The wire format is flat: country and isPrimary sit alongside the
// country-specific fields (accountHolderName, accountNumber, ...), which is
// what the browser front-end sends. The custom unmarshaler splits them.
type CreateBankAccountRequest struct {
	Country   string
	IsPrimary bool
	Fields    map[string]string
}

func (r *CreateBankAccountRequest) UnmarshalJSON(data []byte) error {
	country, isPrimary, fields, err := splitBankAccountBody(data)
	if err != nil {
		return err
	}
	r.Country = country
	r.IsPrimary = isPrimary
	r.Fields = fields
	return nil
}

// UpdateBankAccountRequest carries a partial field set and an optional new
// country. Absent fields keep their stored values.
type UpdateBankAccountRequest struct {
	Country string
	Fields  map[string]string
}

func (r *UpdateBankAccountRequest) UnmarshalJSON(data []byte) error {
	country, _, fields, err := splitBankAccountBody(data)
	if err != nil {
		return err
	}
	r.Country = country
	r.Fields = fields
	return nil
}

// splitBankAccountBody separates the envelope keys (country, isPrimary) from
// the country-specific bank fields. Field values must be JSON strings.
func splitBankAccountBody(data []byte) (country string, isPrimary bool, fields map[string]string, err error) {
	var raw map[string]json.RawMessage
	if err = json.Unmarshal(data, &raw); err != nil {
		return "", false, nil, err
	}

	fields = make(map[string]string, len(raw))
	for key, value := range raw {
		switch key {
		case "country":
			if err = json.Unmarshal(value, &country); err != nil {
				return "", false, nil, fmt.Errorf("country must be a string")
			}
		case "isPrimary":
			if err = json.Unmarshal(value, &isPrimary); err != nil {
				return "", false, nil, fmt.Errorf("isPrimary must be a boolean")
			}
		default:
			var s string
			if err = json.Unmarshal(value, &s); err != nil {
				return "", false, nil, fmt.Errorf("field %s must be a string", key)
			}
			fields[key] = s
		}
	}
	return country, isPrimary, fields, nil
}

// BankAccountData is the display-safe representation of a bank account.
// Sensitive fields arrive here already decrypted and masked by the service.
type BankAccountData struct {
	ID        string            `json:"id"`
	Country   string            `json:"country"`
	IsPrimary bool              `json:"isPrimary"`
	IsActive  bool              `json:"isActive"`
	Fields    map[string]string `json:"fields"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ToBankAccountData converts a (projected) domain.BankAccount to its DTO.
func ToBankAccountData(acc *domain.BankAccount) BankAccountData {
	return BankAccountData{
		ID:        acc.BankAccountID,
		Country:   acc.Country,
		IsPrimary: acc.IsPrimary,
		IsActive:  acc.IsActive,
		Fields:    acc.Fields,
		CreatedAt: acc.CreatedAt,
		UpdatedAt: acc.UpdatedAt,
	}
}

// ListBankAccountsResponse wraps the list endpoint payload.
type ListBankAccountsResponse struct {
	Success      bool              `json:"success"`
	BankAccounts []BankAccountData `json:"bankAccounts"`
}

// BankAccountResponse wraps a single bank account payload.
type BankAccountResponse struct {
	Success     bool            `json:"success"`
	BankAccount BankAccountData `json:"bankAccount"`
}

// MessageResponse is the success envelope for operations with no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the failure envelope for every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CountryFields lists the required and optional bank-account fields of a
// supported country.
type CountryFields struct {
	Required []string `json:"required"`
	Optional []string `json:"optional"`
}

// SupportedCountry describes one entry of the supported-countries projection.
type SupportedCountry struct {
	Code   string        `json:"code"`
	Name   string        `json:"name"`
	Fields CountryFields `json:"fields"`
}

// SupportedCountriesResponse wraps the supported-countries payload.
type SupportedCountriesResponse struct {
	Success   bool               `json:"success"`
	Countries []SupportedCountry `json:"countries"`
}
