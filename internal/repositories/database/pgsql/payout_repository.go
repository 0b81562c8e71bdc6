package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tickethub/payouts_backend/internal/apperrors"
	"github.com/tickethub/payouts_backend/internal/core/domain"
	portsrepo "github.com/tickethub/payouts_backend/internal/core/ports/repositories"
)

// PgxPayoutRepository persists payout requests in PostgreSQL.
type PgxPayoutRepository struct {
	BaseRepository
}

// NewPayoutRepository creates a new repository for payout data.
func NewPayoutRepository(pool *pgxpool.Pool) *PgxPayoutRepository {
	return &PgxPayoutRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PayoutRepositoryFacade = (*PgxPayoutRepository)(nil)

func (r *PgxPayoutRepository) SavePayout(ctx context.Context, payout domain.Payout) error {
	query := `
		INSERT INTO payouts (payout_id, user_id, bank_account_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		payout.PayoutID,
		payout.UserID,
		payout.BankAccountID,
		payout.Amount,
		payout.Status,
		payout.CreatedAt,
		payout.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save payout", err)
	}
	return nil
}

func (r *PgxPayoutRepository) ListPayoutsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Payout, int64, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM payouts WHERE user_id = $1;`, userID).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count payouts", err)
	}

	query := `
		SELECT payout_id, user_id, bank_account_id, amount, status, created_at, updated_at
		FROM payouts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to list payouts", err)
	}
	defer rows.Close()

	var payouts []domain.Payout
	for rows.Next() {
		var p domain.Payout
		if err := rows.Scan(
			&p.PayoutID,
			&p.UserID,
			&p.BankAccountID,
			&p.Amount,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan payout", err)
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to iterate payouts", err)
	}
	return payouts, total, nil
}

// GetFinancialSummary aggregates payout totals for a user. The bank-account
// count is filled in by the service from the bank-account repository.
func (r *PgxPayoutRepository) GetFinancialSummary(ctx context.Context, userID string) (*domain.FinancialSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'COMPLETED'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'PENDING'), 0),
			COUNT(*)
		FROM payouts
		WHERE user_id = $1;
	`
	var summary domain.FinancialSummary
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&summary.TotalPaidOut,
		&summary.PendingAmount,
		&summary.PayoutCount,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate financial summary", err)
	}
	return &summary, nil
}
