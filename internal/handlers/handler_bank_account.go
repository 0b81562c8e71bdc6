package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tickethub/payouts_backend/internal/apperrors"
	portssvc "github.com/tickethub/payouts_backend/internal/core/ports/services"
	"github.com/tickethub/payouts_backend/internal/dto"
	"github.com/tickethub/payouts_backend/internal/middleware"
)

// bankAccountHandler handles HTTP requests related to bank accounts.
type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
}

// newBankAccountHandler creates a new bankAccountHandler.
func newBankAccountHandler(svc portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{bankAccountService: svc}
}

// registerBankAccountRoutes registers the authenticated bank-account routes.
func registerBankAccountRoutes(rg *gin.RouterGroup, svc portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(svc)

	accounts := rg.Group("/bank-accounts")
	{
		accounts.GET("", h.listBankAccounts)
		accounts.POST("", h.createBankAccount)
		accounts.PUT("/:id", h.updateBankAccount)
		accounts.DELETE("/:id", h.deleteBankAccount)
		accounts.PUT("/:id/set-primary", h.setPrimaryBankAccount)
	}
}

// registerSupportedCountriesRoute registers the public registry projection.
func registerSupportedCountriesRoute(rg *gin.RouterGroup, svc portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(svc)
	rg.GET("/supported-countries", h.supportedCountries)
}

// listBankAccounts godoc
// @Summary List the user's bank accounts
// @Description Retrieves all bank accounts owned by the logged-in user, with sensitive fields masked
// @Tags finance
// @Produce json
// @Success 200 {object} dto.ListBankAccountsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /finance/bank-accounts [get]
func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	accounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list bank accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch bank accounts"})
		return
	}

	data := make([]dto.BankAccountData, len(accounts))
	for i := range accounts {
		data[i] = dto.ToBankAccountData(&accounts[i])
	}
	c.JSON(http.StatusOK, dto.ListBankAccountsResponse{Success: true, BankAccounts: data})
}

// createBankAccount godoc
// @Summary Add a bank account
// @Description Validates, encrypts and stores a new payout destination
// @Tags finance
// @Accept json
// @Produce json
// @Param account body dto.CreateBankAccountRequest true "Country plus country-specific bank fields"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /finance/bank-accounts [post]
func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create bank account"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.BankAccountResponse{Success: true, BankAccount: dto.ToBankAccountData(account)})
}

// updateBankAccount godoc
// @Summary Update a bank account
// @Description Applies a partial update, re-validating when the country or required fields change
// @Tags finance
// @Accept json
// @Produce json
// @Param id path string true "Bank account ID"
// @Param account body dto.UpdateBankAccountRequest true "Fields to update"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /finance/bank-accounts/{id} [put]
func (h *bankAccountHandler) updateBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	account, err := h.bankAccountService.UpdateBankAccount(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Bank account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update bank account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.BankAccountResponse{Success: true, BankAccount: dto.ToBankAccountData(account)})
}

// deleteBankAccount godoc
// @Summary Delete a bank account
// @Tags finance
// @Produce json
// @Param id path string true "Bank account ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /finance/bank-accounts/{id} [delete]
func (h *bankAccountHandler) deleteBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.bankAccountService.DeleteBankAccount(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Bank account not found"})
		} else {
			logger.Error("Failed to delete bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete bank account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Bank account deleted successfully"})
}

// setPrimaryBankAccount godoc
// @Summary Set the primary bank account
// @Description Makes this account the user's single primary payout destination
// @Tags finance
// @Produce json
// @Param id path string true "Bank account ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /finance/bank-accounts/{id}/set-primary [put]
func (h *bankAccountHandler) setPrimaryBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.bankAccountService.SetPrimaryBankAccount(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Bank account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to set primary bank account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to set primary bank account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Primary bank account updated successfully"})
}

// supportedCountries godoc
// @Summary List supported countries
// @Description Returns the bank-account field requirements per supported country
// @Tags finance
// @Produce json
// @Success 200 {object} dto.SupportedCountriesResponse
// @Router /finance/supported-countries [get]
func (h *bankAccountHandler) supportedCountries(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SupportedCountriesResponse{
		Success:   true,
		Countries: h.bankAccountService.SupportedCountries(),
	})
}
