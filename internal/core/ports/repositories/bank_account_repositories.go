package repositories

import (
	"context"

	"github.com/tickethub/payouts_backend/internal/core/domain"
)

// BankAccountReader defines read operations for bank-account data.
type BankAccountReader interface {
	// FindBankAccountByID retrieves a bank account by its unique identifier.
	// Returns apperrors.ErrNotFound if no such account exists.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccountsByUser retrieves all bank accounts owned by a user,
	// primary first, newest first after that.
	ListBankAccountsByUser(ctx context.Context, userID string) ([]domain.BankAccount, error)

	// CountBankAccountsByUser counts a user's active bank accounts.
	CountBankAccountsByUser(ctx context.Context, userID string) (int64, error)
}

// BankAccountWriter defines write operations for bank-account data.
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBankAccount updates an existing bank account's details.
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error

	// DeleteBankAccount removes a bank account. Returns
	// apperrors.ErrNotFound if nothing was deleted.
	DeleteBankAccount(ctx context.Context, bankAccountID string) error

	// SetPrimaryBankAccount clears the user's current primary flag and sets
	// it on the given account within a single transaction, so at most one
	// primary exists per user at any observable point.
	SetPrimaryBankAccount(ctx context.Context, userID string, bankAccountID string) error
}

// BankAccountRepositoryFacade combines all bank-account repository interfaces.
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
