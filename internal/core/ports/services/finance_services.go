package services

import (
	"context"

	"github.com/tickethub/payouts_backend/internal/core/domain"
	"github.com/tickethub/payouts_backend/internal/dto"
)

// BankAccountSvcFacade defines the bank-account operations exposed to the
// HTTP layer. Returned accounts are display projections: sensitive fields
// decrypted and masked, never raw ciphertext or plaintext.
type BankAccountSvcFacade interface {
	// ListBankAccounts returns all of the user's bank accounts, masked.
	ListBankAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error)

	// CreateBankAccount validates, encrypts and persists a new bank
	// account, returning its masked projection.
	CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error)

	// UpdateBankAccount applies a partial update, re-validating when the
	// country or required fields change and re-encrypting any sensitive
	// fields supplied.
	UpdateBankAccount(ctx context.Context, userID string, bankAccountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error)

	// DeleteBankAccount removes a bank account owned by the user.
	DeleteBankAccount(ctx context.Context, userID string, bankAccountID string) error

	// SetPrimaryBankAccount makes the given account the user's single
	// primary payout destination.
	SetPrimaryBankAccount(ctx context.Context, userID string, bankAccountID string) error

	// SupportedCountries projects the field schema registry for display.
	SupportedCountries() []dto.SupportedCountry
}

// PayoutSvcFacade defines the payout operations exposed to the HTTP layer.
type PayoutSvcFacade interface {
	// InitiatePayout creates a pending payout to one of the user's active
	// bank accounts.
	InitiatePayout(ctx context.Context, userID string, req dto.InitiatePayoutRequest) (*domain.Payout, error)

	// PayoutHistory returns one page of the user's payouts plus the total.
	PayoutHistory(ctx context.Context, userID string, page int, limit int) ([]domain.Payout, int64, error)

	// FinancialSummary aggregates the user's payout totals.
	FinancialSummary(ctx context.Context, userID string) (*domain.FinancialSummary, error)
}
