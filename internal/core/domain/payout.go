package domain

import (
	"github.com/shopspring/decimal"
)

// PayoutStatus tracks the lifecycle state of a payout. Only PENDING is
// produced by this service; downstream payment processing owns the rest.
type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "PENDING"
	PayoutCompleted PayoutStatus = "COMPLETED"
	PayoutFailed    PayoutStatus = "FAILED"
)

// Payout represents a transfer request from platform balance to one of the
// user's bank accounts.
type Payout struct {
	PayoutID      string          `json:"payoutID"`
	UserID        string          `json:"userID"`
	BankAccountID string          `json:"bankAccountID"`
	Amount        decimal.Decimal `json:"amount"`
	Status        PayoutStatus    `json:"status"`
	AuditFields
}

// FinancialSummary aggregates a user's payout activity.
type FinancialSummary struct {
	TotalPaidOut     decimal.Decimal `json:"totalPaidOut"`
	PendingAmount    decimal.Decimal `json:"pendingAmount"`
	PayoutCount      int64           `json:"payoutCount"`
	BankAccountCount int64           `json:"bankAccountCount"`
}
