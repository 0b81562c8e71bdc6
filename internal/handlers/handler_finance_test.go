package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tickethub/payouts_backend/internal/apperrors"
	"github.com/tickethub/payouts_backend/internal/core/domain"
	portssvc "github.com/tickethub/payouts_backend/internal/core/ports/services"
	"github.com/tickethub/payouts_backend/internal/dto"
	"github.com/tickethub/payouts_backend/internal/handlers"
	"github.com/tickethub/payouts_backend/internal/platform/config"
)

// --- Mock BankAccountService ---
type MockBankAccountService struct {
	mock.Mock
}

func (m *MockBankAccountService) ListBankAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) UpdateBankAccount(ctx context.Context, userID string, bankAccountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, bankAccountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountService) DeleteBankAccount(ctx context.Context, userID string, bankAccountID string) error {
	args := m.Called(ctx, userID, bankAccountID)
	return args.Error(0)
}

func (m *MockBankAccountService) SetPrimaryBankAccount(ctx context.Context, userID string, bankAccountID string) error {
	args := m.Called(ctx, userID, bankAccountID)
	return args.Error(0)
}

func (m *MockBankAccountService) SupportedCountries() []dto.SupportedCountry {
	args := m.Called()
	return args.Get(0).([]dto.SupportedCountry)
}

var _ portssvc.BankAccountSvcFacade = (*MockBankAccountService)(nil)

// --- Mock PayoutService ---
type MockPayoutService struct {
	mock.Mock
}

func (m *MockPayoutService) InitiatePayout(ctx context.Context, userID string, req dto.InitiatePayoutRequest) (*domain.Payout, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payout), args.Error(1)
}

func (m *MockPayoutService) PayoutHistory(ctx context.Context, userID string, page int, limit int) ([]domain.Payout, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Payout), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayoutService) FinancialSummary(ctx context.Context, userID string) (*domain.FinancialSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialSummary), args.Error(1)
}

var _ portssvc.PayoutSvcFacade = (*MockPayoutService)(nil)

// --- Test Suite ---
type FinanceHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockBankAccount *MockBankAccountService
	mockPayout      *MockPayoutService
	jwtSecret       string
	userID          string
}

func (suite *FinanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockBankAccount = new(MockBankAccountService)
	suite.mockPayout = new(MockPayoutService)

	cfg := &config.Config{
		JWTSecret:       suite.jwtSecret,
		PublicRateLimit: "1000-S",
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		BankAccount: suite.mockBankAccount,
		Payout:      suite.mockPayout,
	})
}

// generateTestToken creates a dummy JWT for testing.
func (suite *FinanceHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "tickethub-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *FinanceHandlerTestSuite) doRequest(method, url string, body []byte, authenticated bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *FinanceHandlerTestSuite) TestListBankAccounts_Success() {
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		UserID:        suite.userID,
		Country:       "US",
		IsActive:      true,
		Fields: map[string]string{
			"accountHolderName": "John Smith",
			"accountNumber":     "•••• •••• •••• 5678",
		},
	}
	suite.mockBankAccount.On("ListBankAccounts", mock.Anything, suite.userID).
		Return([]domain.BankAccount{account}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/finance/bank-accounts", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListBankAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Require().Len(resp.BankAccounts, 1)
	suite.Equal(account.BankAccountID, resp.BankAccounts[0].ID)
	suite.Equal("•••• •••• •••• 5678", resp.BankAccounts[0].Fields["accountNumber"])
	suite.mockBankAccount.AssertExpectations(suite.T())
}

func (suite *FinanceHandlerTestSuite) TestListBankAccounts_Unauthorized() {
	w := suite.doRequest(http.MethodGet, "/api/v1/finance/bank-accounts", nil, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.NotEmpty(resp.Error)
}

func (suite *FinanceHandlerTestSuite) TestCreateBankAccount_Success() {
	created := &domain.BankAccount{
		BankAccountID: uuid.NewString(),
		UserID:        suite.userID,
		Country:       "US",
		IsActive:      true,
		Fields:        map[string]string{"accountNumber": "•••• •••• •••• 5678"},
	}

	suite.mockBankAccount.On("CreateBankAccount", mock.Anything, suite.userID,
		mock.MatchedBy(func(req dto.CreateBankAccountRequest) bool {
			return req.Country == "US" && req.IsPrimary && req.Fields["accountNumber"] == "12345678"
		})).Return(created, nil).Once()

	body := []byte(`{
		"country": "US",
		"isPrimary": true,
		"accountHolderName": "John Smith",
		"routingNumber": "021000021",
		"accountNumber": "12345678",
		"accountType": "checking",
		"bankName": "Chase"
	}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/finance/bank-accounts", body, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.BankAccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(created.BankAccountID, resp.BankAccount.ID)
	suite.mockBankAccount.AssertExpectations(suite.T())
}

func (suite *FinanceHandlerTestSuite) TestCreateBankAccount_ValidationError() {
	suite.mockBankAccount.On("CreateBankAccount", mock.Anything, suite.userID, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	body := []byte(`{"country": "US", "accountHolderName": "John Smith"}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/finance/bank-accounts", body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.NotEmpty(resp.Error)
}

func (suite *FinanceHandlerTestSuite) TestCreateBankAccount_NonStringFieldRejected() {
	body := []byte(`{"country": "US", "accountNumber": 12345678}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/finance/bank-accounts", body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Contains(resp.Error, "accountNumber must be a string")
	suite.mockBankAccount.AssertNotCalled(suite.T(), "CreateBankAccount")
}

func (suite *FinanceHandlerTestSuite) TestUpdateBankAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockBankAccount.On("UpdateBankAccount", mock.Anything, suite.userID, accountID, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	body := []byte(`{"bankName": "New Bank"}`)
	w := suite.doRequest(http.MethodPut, "/api/v1/finance/bank-accounts/"+accountID, body, true)

	suite.Equal(http.StatusNotFound, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.Equal("Bank account not found", resp.Error)
}

func (suite *FinanceHandlerTestSuite) TestDeleteBankAccount_Success() {
	accountID := uuid.NewString()
	suite.mockBankAccount.On("DeleteBankAccount", mock.Anything, suite.userID, accountID).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/finance/bank-accounts/"+accountID, nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MessageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.mockBankAccount.AssertExpectations(suite.T())
}

func (suite *FinanceHandlerTestSuite) TestSetPrimary_InactiveAccountRejected() {
	accountID := uuid.NewString()
	suite.mockBankAccount.On("SetPrimaryBankAccount", mock.Anything, suite.userID, accountID).
		Return(apperrors.ErrValidation).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/finance/bank-accounts/"+accountID+"/set-primary", nil, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *FinanceHandlerTestSuite) TestSetPrimary_Success() {
	accountID := uuid.NewString()
	suite.mockBankAccount.On("SetPrimaryBankAccount", mock.Anything, suite.userID, accountID).Return(nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/finance/bank-accounts/"+accountID+"/set-primary", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MessageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
}

func (suite *FinanceHandlerTestSuite) TestSupportedCountries_NoAuthRequired() {
	suite.mockBankAccount.On("SupportedCountries").Return([]dto.SupportedCountry{
		{Code: "US", Name: "United States", Fields: dto.CountryFields{
			Required: []string{"accountHolderName", "routingNumber"},
		}},
	}).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/finance/supported-countries", nil, false)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SupportedCountriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Require().Len(resp.Countries, 1)
	suite.Equal("US", resp.Countries[0].Code)
}

func (suite *FinanceHandlerTestSuite) TestInitiatePayout_Success() {
	payout := &domain.Payout{
		PayoutID:      uuid.NewString(),
		UserID:        suite.userID,
		BankAccountID: uuid.NewString(),
		Amount:        decimal.NewFromFloat(99.50),
		Status:        domain.PayoutPending,
	}

	suite.mockPayout.On("InitiatePayout", mock.Anything, suite.userID,
		mock.MatchedBy(func(req dto.InitiatePayoutRequest) bool {
			return req.BankAccountID == payout.BankAccountID && req.Amount.Equal(payout.Amount)
		})).Return(payout, nil).Once()

	body := []byte(`{"bankAccountId": "` + payout.BankAccountID + `", "amount": 99.50}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/finance/initiate-payout", body, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PayoutResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(payout.PayoutID, resp.Payout.ID)
	suite.Equal("PENDING", resp.Payout.Status)
}

func (suite *FinanceHandlerTestSuite) TestInitiatePayout_MissingBankAccountID() {
	body := []byte(`{"amount": 50}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/finance/initiate-payout", body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPayout.AssertNotCalled(suite.T(), "InitiatePayout")
}

func (suite *FinanceHandlerTestSuite) TestInitiatePayout_InvalidAmount() {
	suite.mockPayout.On("InitiatePayout", mock.Anything, suite.userID, mock.Anything).
		Return(nil, apperrors.ErrValidation).Once()

	body := []byte(`{"bankAccountId": "` + uuid.NewString() + `", "amount": 0}`)
	w := suite.doRequest(http.MethodPost, "/api/v1/finance/initiate-payout", body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
}

func (suite *FinanceHandlerTestSuite) TestPayoutHistory_Success() {
	payouts := []domain.Payout{
		{PayoutID: uuid.NewString(), BankAccountID: uuid.NewString(), Amount: decimal.NewFromInt(40), Status: domain.PayoutCompleted},
	}
	suite.mockPayout.On("PayoutHistory", mock.Anything, suite.userID, 2, 10).
		Return(payouts, int64(11), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/finance/payout-history?page=2&limit=10", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PayoutHistoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Len(resp.Payouts, 1)
	suite.Equal(2, resp.Page)
	suite.Equal(10, resp.Limit)
	suite.Equal(int64(11), resp.Total)
}

func (suite *FinanceHandlerTestSuite) TestPayoutHistory_DefaultParams() {
	suite.mockPayout.On("PayoutHistory", mock.Anything, suite.userID, 1, 20).
		Return([]domain.Payout{}, int64(0), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/finance/payout-history", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPayout.AssertExpectations(suite.T())
}

func (suite *FinanceHandlerTestSuite) TestFinancialSummary_Success() {
	suite.mockPayout.On("FinancialSummary", mock.Anything, suite.userID).
		Return(&domain.FinancialSummary{
			TotalPaidOut:     decimal.NewFromInt(300),
			PendingAmount:    decimal.NewFromInt(50),
			PayoutCount:      4,
			BankAccountCount: 2,
		}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/finance/financial-summary", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.FinancialSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.True(resp.Summary.TotalPaidOut.Equal(decimal.NewFromInt(300)))
	suite.Equal(int64(4), resp.Summary.PayoutCount)
	suite.Equal(int64(2), resp.Summary.BankAccountCount)
}

func (suite *FinanceHandlerTestSuite) TestFinancialSummary_RepositoryFailure() {
	suite.mockPayout.On("FinancialSummary", mock.Anything, suite.userID).
		Return(nil, apperrors.NewAppError(500, "db down", nil)).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/finance/financial-summary", nil, true)

	suite.Equal(http.StatusInternalServerError, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	// Internal detail must not leak to the client.
	suite.NotContains(resp.Error, "db down")
}

func TestFinanceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FinanceHandlerTestSuite))
}
