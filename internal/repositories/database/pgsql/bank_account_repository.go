package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tickethub/payouts_backend/internal/apperrors"
	"github.com/tickethub/payouts_backend/internal/core/domain"
	portsrepo "github.com/tickethub/payouts_backend/internal/core/ports/repositories"
)

// PgxBankAccountRepository persists bank accounts in PostgreSQL. The
// country-specific field map (sensitive entries already encrypted by the
// service) is stored as a jsonb column.
type PgxBankAccountRepository struct {
	BaseRepository
}

// NewBankAccountRepository creates a new repository for bank-account data.
func NewBankAccountRepository(pool *pgxpool.Pool) *PgxBankAccountRepository {
	return &PgxBankAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

const bankAccountColumns = `bank_account_id, user_id, country, is_primary, is_active, fields, created_at, updated_at`

func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	fieldsJSON, err := json.Marshal(account.Fields)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal bank account fields", err)
	}

	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.Pool.Exec(ctx, query,
		account.BankAccountID,
		account.UserID,
		account.Country,
		account.IsPrimary,
		account.IsActive,
		fieldsJSON,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save bank account", err)
	}
	return nil
}

func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`

	row := r.Pool.QueryRow(ctx, query, bankAccountID)
	account, err := scanBankAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account", err)
	}
	return account, nil
}

func (r *PgxBankAccountRepository) ListBankAccountsByUser(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	query := `
		SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE user_id = $1
		ORDER BY is_primary DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list bank accounts", err)
	}
	defer rows.Close()

	var accounts []domain.BankAccount
	for rows.Next() {
		account, err := scanBankAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate bank accounts", err)
	}
	return accounts, nil
}

func (r *PgxBankAccountRepository) CountBankAccountsByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM bank_accounts WHERE user_id = $1 AND is_active;`, userID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count bank accounts", err)
	}
	return count, nil
}

func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	fieldsJSON, err := json.Marshal(account.Fields)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal bank account fields", err)
	}

	query := `
		UPDATE bank_accounts
		SET country = $2, is_active = $3, fields = $4, updated_at = $5
		WHERE bank_account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.BankAccountID,
		account.Country,
		account.IsActive,
		fieldsJSON,
		account.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bank account", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBankAccountRepository) DeleteBankAccount(ctx context.Context, bankAccountID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM bank_accounts WHERE bank_account_id = $1;`, bankAccountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete bank account", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetPrimaryBankAccount clears the user's current primary flag and sets the
// new one inside a single transaction. The partial unique index on
// (user_id) WHERE is_primary backs the invariant under concurrency.
func (r *PgxBankAccountRepository) SetPrimaryBankAccount(ctx context.Context, userID string, bankAccountID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	now := time.Now().UTC()
	_, err = tx.Exec(ctx,
		`UPDATE bank_accounts SET is_primary = FALSE, updated_at = $2 WHERE user_id = $1 AND is_primary;`,
		userID, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear primary bank account", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE bank_accounts SET is_primary = TRUE, updated_at = $3 WHERE bank_account_id = $1 AND user_id = $2;`,
		bankAccountID, userID, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set primary bank account", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// scanBankAccount scans one bank-account row, decoding the jsonb field map.
func scanBankAccount(row pgx.Row) (*domain.BankAccount, error) {
	var acc domain.BankAccount
	var fieldsJSON []byte

	err := row.Scan(
		&acc.BankAccountID,
		&acc.UserID,
		&acc.Country,
		&acc.IsPrimary,
		&acc.IsActive,
		&fieldsJSON,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	acc.Fields = map[string]string{}
	if len(fieldsJSON) > 0 {
		if err := json.Unmarshal(fieldsJSON, &acc.Fields); err != nil {
			return nil, err
		}
	}
	return &acc, nil
}
