package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tickethub/payouts_backend/internal/apperrors"
	"github.com/tickethub/payouts_backend/internal/core/domain"
	"github.com/tickethub/payouts_backend/internal/core/ports"
	portsrepo "github.com/tickethub/payouts_backend/internal/core/ports/repositories"
	portssvc "github.com/tickethub/payouts_backend/internal/core/ports/services"
	"github.com/tickethub/payouts_backend/internal/dto"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// payoutServiceImpl implements the PayoutSvcFacade interface.
type payoutServiceImpl struct {
	BaseService
	payoutRepo      portsrepo.PayoutRepositoryFacade
	bankAccountRepo portsrepo.BankAccountReader
	publisher       ports.EventPublisher
}

// PayoutServiceOption is a functional option for configuring the payout service.
type PayoutServiceOption func(*payoutServiceImpl)

// WithEventPublisher adds a broker publisher for payout events.
func WithEventPublisher(pub ports.EventPublisher) PayoutServiceOption {
	return func(s *payoutServiceImpl) {
		s.publisher = pub
	}
}

// NewPayoutService creates a new payout service with the provided options.
func NewPayoutService(payoutRepo portsrepo.PayoutRepositoryFacade, bankAccountRepo portsrepo.BankAccountReader, options ...PayoutServiceOption) portssvc.PayoutSvcFacade {
	svc := &payoutServiceImpl{
		payoutRepo:      payoutRepo,
		bankAccountRepo: bankAccountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PayoutSvcFacade = (*payoutServiceImpl)(nil)

func (s *payoutServiceImpl) InitiatePayout(ctx context.Context, userID string, req dto.InitiatePayoutRequest) (*domain.Payout, error) {
	if req.BankAccountID == "" || !req.Amount.IsPositive() {
		return nil, fmt.Errorf("invalid payout request: %w", apperrors.ErrValidation)
	}

	account, err := s.bankAccountRepo.FindBankAccountByID(ctx, req.BankAccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bank account for payout", slog.String("bank_account_id", req.BankAccountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	if !account.IsActive {
		return nil, fmt.Errorf("bank account is inactive: %w", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	payout := domain.Payout{
		PayoutID:      uuid.NewString(),
		UserID:        userID,
		BankAccountID: req.BankAccountID,
		Amount:        req.Amount,
		Status:        domain.PayoutPending,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.payoutRepo.SavePayout(ctx, payout); err != nil {
		s.LogError(ctx, err, "Failed to save payout", slog.String("payout_id", payout.PayoutID))
		return nil, err
	}

	s.publishInitiated(ctx, &payout)

	s.LogInfo(ctx, "Payout initiated",
		slog.String("payout_id", payout.PayoutID),
		slog.String("bank_account_id", payout.BankAccountID),
		slog.String("amount", payout.Amount.String()))
	return &payout, nil
}

func (s *payoutServiceImpl) PayoutHistory(ctx context.Context, userID string, page int, limit int) ([]domain.Payout, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	payouts, total, err := s.payoutRepo.ListPayoutsByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payouts")
		return nil, 0, err
	}
	if payouts == nil {
		payouts = []domain.Payout{}
	}
	return payouts, total, nil
}

func (s *payoutServiceImpl) FinancialSummary(ctx context.Context, userID string) (*domain.FinancialSummary, error) {
	summary, err := s.payoutRepo.GetFinancialSummary(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get financial summary")
		return nil, err
	}

	count, err := s.bankAccountRepo.CountBankAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count bank accounts")
		return nil, err
	}
	summary.BankAccountCount = count
	return summary, nil
}

// payoutInitiatedEvent is the broker payload for a freshly created payout.
type payoutInitiatedEvent struct {
	Event         string    `json:"event"`
	PayoutID      string    `json:"payoutId"`
	UserID        string    `json:"userId"`
	BankAccountID string    `json:"bankAccountId"`
	Amount        string    `json:"amount"`
	InitiatedAt   time.Time `json:"initiatedAt"`
}

// publishInitiated emits the payout.initiated event. Best-effort: a broker
// failure is logged but never fails the request.
func (s *payoutServiceImpl) publishInitiated(ctx context.Context, payout *domain.Payout) {
	if s.publisher == nil {
		return
	}

	value, err := json.Marshal(payoutInitiatedEvent{
		Event:         "payout.initiated",
		PayoutID:      payout.PayoutID,
		UserID:        payout.UserID,
		BankAccountID: payout.BankAccountID,
		Amount:        payout.Amount.String(),
		InitiatedAt:   payout.CreatedAt,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to marshal payout event", slog.String("payout_id", payout.PayoutID))
		return
	}

	if err := s.publisher.Publish(ctx, []byte(payout.UserID), value); err != nil {
		s.LogWarn(ctx, "Failed to publish payout event", slog.String("payout_id", payout.PayoutID), slog.String("error", err.Error()))
	}
}
