package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tickethub/payouts_backend/internal/core/domain"
)

// InitiatePayoutRequest carries the payload for requesting a payout.
// Amount validation (> 0) happens in the service so the error message is
// consistent with the rest of the validation taxonomy.
type InitiatePayoutRequest struct {
	BankAccountID string          `json:"bankAccountId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

// PayoutData is the wire representation of a payout.
type PayoutData struct {
	ID            string          `json:"id"`
	BankAccountID string          `json:"bankAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToPayoutData converts a domain.Payout to its DTO.
func ToPayoutData(p *domain.Payout) PayoutData {
	return PayoutData{
		ID:            p.PayoutID,
		BankAccountID: p.BankAccountID,
		Amount:        p.Amount,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// PayoutResponse wraps a single payout payload.
type PayoutResponse struct {
	Success bool       `json:"success"`
	Payout  PayoutData `json:"payout"`
}

// PayoutHistoryParams defines the query parameters for payout history.
type PayoutHistoryParams struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

// PayoutHistoryResponse wraps one page of payouts with pagination metadata.
type PayoutHistoryResponse struct {
	Success bool         `json:"success"`
	Payouts []PayoutData `json:"payouts"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	Total   int64        `json:"total"`
}

// FinancialSummaryData aggregates a user's payout activity for display.
type FinancialSummaryData struct {
	TotalPaidOut     decimal.Decimal `json:"totalPaidOut"`
	PendingAmount    decimal.Decimal `json:"pendingAmount"`
	PayoutCount      int64           `json:"payoutCount"`
	BankAccountCount int64           `json:"bankAccountCount"`
}

// FinancialSummaryResponse wraps the financial summary payload.
type FinancialSummaryResponse struct {
	Success bool                 `json:"success"`
	Summary FinancialSummaryData `json:"summary"`
}

// ToFinancialSummaryData converts a domain.FinancialSummary to its DTO.
func ToFinancialSummaryData(s *domain.FinancialSummary) FinancialSummaryData {
	return FinancialSummaryData{
		TotalPaidOut:     s.TotalPaidOut,
		PendingAmount:    s.PendingAmount,
		PayoutCount:      s.PayoutCount,
		BankAccountCount: s.BankAccountCount,
	}
}
