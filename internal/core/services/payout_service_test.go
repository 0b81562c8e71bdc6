package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tickethub/payouts_backend/internal/apperrors"
	"github.com/tickethub/payouts_backend/internal/core/domain"
	portssvc "github.com/tickethub/payouts_backend/internal/core/ports/services"
	"github.com/tickethub/payouts_backend/internal/core/services"
	"github.com/tickethub/payouts_backend/internal/dto"
)

// MockPayoutRepository is a mock type for the PayoutRepositoryFacade interface
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) SavePayout(ctx context.Context, payout domain.Payout) error {
	args := m.Called(ctx, payout)
	return args.Error(0)
}

func (m *MockPayoutRepository) ListPayoutsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Payout, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Payout), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayoutRepository) GetFinancialSummary(ctx context.Context, userID string) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}

// MockEventPublisher is a mock type for the EventPublisher interface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, key []byte, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PayoutServiceTestSuite struct {
	suite.Suite
	mockPayoutRepo *MockPayoutRepository
	mockBankRepo   *MockBankAccountRepository
	mockPublisher  *MockEventPublisher
	service        portssvc.PayoutSvcFacade
	userID         string
	accountID      string
}

func (suite *PayoutServiceTestSuite) SetupTest() {
	suite.mockPayoutRepo = new(MockPayoutRepository)
	suite.mockBankRepo = new(MockBankAccountRepository)
	suite.mockPublisher = new(MockEventPublisher)
	suite.service = services.NewPayoutService(
		suite.mockPayoutRepo,
		suite.mockBankRepo,
		services.WithEventPublisher(suite.mockPublisher),
	)
	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
}

func (suite *PayoutServiceTestSuite) activeAccount() *domain.BankAccount {
	return &domain.BankAccount{
		BankAccountID: suite.accountID,
		UserID:        suite.userID,
		Country:       "US",
		IsActive:      true,
	}
}

// --- Test Cases ---

func (suite *PayoutServiceTestSuite) TestInitiatePayout_Success() {
	ctx := context.Background()
	req := dto.InitiatePayoutRequest{BankAccountID: suite.accountID, Amount: decimal.NewFromFloat(150.25)}

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(suite.activeAccount(), nil).Once()
	suite.mockPayoutRepo.On("SavePayout", ctx, mock.AnythingOfType("domain.Payout")).Return(nil).Once()

	var published []byte
	suite.mockPublisher.On("Publish", ctx, []byte(suite.userID), mock.AnythingOfType("[]uint8")).
		Run(func(args mock.Arguments) {
			published = args.Get(2).([]byte)
		}).Return(nil).Once()

	payout, err := suite.service.InitiatePayout(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(payout)
	suite.NotEmpty(payout.PayoutID)
	suite.Equal(domain.PayoutPending, payout.Status)
	suite.True(payout.Amount.Equal(decimal.NewFromFloat(150.25)))
	suite.WithinDuration(time.Now(), payout.CreatedAt, time.Second)

	var event map[string]any
	suite.Require().NoError(json.Unmarshal(published, &event))
	suite.Equal("payout.initiated", event["event"])
	suite.Equal(payout.PayoutID, event["payoutId"])
	suite.Equal("150.25", event["amount"])

	suite.mockPayoutRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestInitiatePayout_ZeroAmount() {
	ctx := context.Background()
	req := dto.InitiatePayoutRequest{BankAccountID: suite.accountID, Amount: decimal.Zero}

	payout, err := suite.service.InitiatePayout(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(payout)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayoutRepo.AssertNotCalled(suite.T(), "SavePayout")
}

func (suite *PayoutServiceTestSuite) TestInitiatePayout_NegativeAmount() {
	ctx := context.Background()
	req := dto.InitiatePayoutRequest{BankAccountID: suite.accountID, Amount: decimal.NewFromInt(-5)}

	_, err := suite.service.InitiatePayout(ctx, suite.userID, req)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayoutServiceTestSuite) TestInitiatePayout_AccountNotOwned() {
	ctx := context.Background()
	other := suite.activeAccount()
	other.UserID = uuid.NewString()

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(other, nil).Once()

	_, err := suite.service.InitiatePayout(ctx, suite.userID, dto.InitiatePayoutRequest{
		BankAccountID: suite.accountID,
		Amount:        decimal.NewFromInt(10),
	})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPayoutRepo.AssertNotCalled(suite.T(), "SavePayout")
}

func (suite *PayoutServiceTestSuite) TestInitiatePayout_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.activeAccount()
	inactive.IsActive = false

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(inactive, nil).Once()

	_, err := suite.service.InitiatePayout(ctx, suite.userID, dto.InitiatePayoutRequest{
		BankAccountID: suite.accountID,
		Amount:        decimal.NewFromInt(10),
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayoutServiceTestSuite) TestInitiatePayout_PublishFailureDoesNotFailRequest() {
	ctx := context.Background()

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(suite.activeAccount(), nil).Once()
	suite.mockPayoutRepo.On("SavePayout", ctx, mock.AnythingOfType("domain.Payout")).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.Anything, mock.Anything).Return(context.DeadlineExceeded).Once()

	payout, err := suite.service.InitiatePayout(ctx, suite.userID, dto.InitiatePayoutRequest{
		BankAccountID: suite.accountID,
		Amount:        decimal.NewFromInt(10),
	})

	suite.Require().NoError(err)
	suite.NotNil(payout)
}

func (suite *PayoutServiceTestSuite) TestInitiatePayout_NoPublisherConfigured() {
	ctx := context.Background()
	service := services.NewPayoutService(suite.mockPayoutRepo, suite.mockBankRepo)

	suite.mockBankRepo.On("FindBankAccountByID", ctx, suite.accountID).Return(suite.activeAccount(), nil).Once()
	suite.mockPayoutRepo.On("SavePayout", ctx, mock.AnythingOfType("domain.Payout")).Return(nil).Once()

	payout, err := service.InitiatePayout(ctx, suite.userID, dto.InitiatePayoutRequest{
		BankAccountID: suite.accountID,
		Amount:        decimal.NewFromInt(10),
	})

	suite.Require().NoError(err)
	suite.NotNil(payout)
}

func (suite *PayoutServiceTestSuite) TestPayoutHistory_NormalizesPagination() {
	ctx := context.Background()

	// page 0 / limit 0 fall back to page 1, limit 20 (offset 0).
	suite.mockPayoutRepo.On("ListPayoutsByUser", ctx, suite.userID, 20, 0).Return([]domain.Payout{}, int64(0), nil).Once()

	payouts, total, err := suite.service.PayoutHistory(ctx, suite.userID, 0, 0)

	suite.Require().NoError(err)
	suite.NotNil(payouts)
	suite.Empty(payouts)
	suite.Equal(int64(0), total)
	suite.mockPayoutRepo.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestPayoutHistory_OffsetFromPage() {
	ctx := context.Background()

	suite.mockPayoutRepo.On("ListPayoutsByUser", ctx, suite.userID, 10, 20).
		Return([]domain.Payout{{PayoutID: uuid.NewString()}}, int64(21), nil).Once()

	payouts, total, err := suite.service.PayoutHistory(ctx, suite.userID, 3, 10)

	suite.Require().NoError(err)
	suite.Len(payouts, 1)
	suite.Equal(int64(21), total)
}

func (suite *PayoutServiceTestSuite) TestPayoutHistory_OversizedLimitFallsBack() {
	ctx := context.Background()

	suite.mockPayoutRepo.On("ListPayoutsByUser", ctx, suite.userID, 20, 0).Return([]domain.Payout{}, int64(0), nil).Once()

	_, _, err := suite.service.PayoutHistory(ctx, suite.userID, 1, 500)
	suite.Require().NoError(err)
	suite.mockPayoutRepo.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestFinancialSummary_FillsBankAccountCount() {
	ctx := context.Background()

	suite.mockPayoutRepo.On("GetFinancialSummary", ctx, suite.userID).Return(&domain.FinancialSummary{
		TotalPaidOut:  decimal.NewFromInt(500),
		PendingAmount: decimal.NewFromInt(120),
		PayoutCount:   7,
	}, nil).Once()
	suite.mockBankRepo.On("CountBankAccountsByUser", ctx, suite.userID).Return(int64(2), nil).Once()

	summary, err := suite.service.FinancialSummary(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.True(summary.TotalPaidOut.Equal(decimal.NewFromInt(500)))
	suite.True(summary.PendingAmount.Equal(decimal.NewFromInt(120)))
	suite.Equal(int64(7), summary.PayoutCount)
	suite.Equal(int64(2), summary.BankAccountCount)
	suite.mockPayoutRepo.AssertExpectations(suite.T())
	suite.mockBankRepo.AssertExpectations(suite.T())
}

func TestPayoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayoutServiceTestSuite))
}
