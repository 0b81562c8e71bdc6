package repositories

import (
	"context"

	"github.com/tickethub/payouts_backend/internal/core/domain"
)

// PayoutReader defines read operations for payout data.
type PayoutReader interface {
	// ListPayoutsByUser retrieves one page of the user's payouts, newest
	// first, along with the total number of payouts for that user.
	ListPayoutsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Payout, int64, error)

	// GetFinancialSummary aggregates the user's payout totals.
	GetFinancialSummary(ctx context.Context, userID string) (*domain.FinancialSummary, error)
}

// PayoutWriter defines write operations for payout data.
type PayoutWriter interface {
	// SavePayout persists a new payout request.
	SavePayout(ctx context.Context, payout domain.Payout) error
}

// PayoutRepositoryFacade combines all payout repository interfaces.
type PayoutRepositoryFacade interface {
	PayoutReader
	PayoutWriter
}
