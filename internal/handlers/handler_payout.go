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

// payoutHandler handles HTTP requests related to payouts.
type payoutHandler struct {
	payoutService portssvc.PayoutSvcFacade
}

func newPayoutHandler(svc portssvc.PayoutSvcFacade) *payoutHandler {
	return &payoutHandler{payoutService: svc}
}

// registerPayoutRoutes registers the authenticated payout routes.
func registerPayoutRoutes(rg *gin.RouterGroup, svc portssvc.PayoutSvcFacade) {
	h := newPayoutHandler(svc)

	rg.GET("/financial-summary", h.financialSummary)
	rg.GET("/payout-history", h.payoutHistory)
	rg.POST("/initiate-payout", h.initiatePayout)
}

// financialSummary godoc
// @Summary Get the user's financial summary
// @Description Returns completed and pending payout totals plus account counts
// @Tags finance
// @Produce json
// @Success 200 {object} dto.FinancialSummaryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /finance/financial-summary [get]
func (h *payoutHandler) financialSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.payoutService.FinancialSummary(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to build financial summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch financial summary"})
		return
	}

	c.JSON(http.StatusOK, dto.FinancialSummaryResponse{Success: true, Summary: dto.ToFinancialSummaryData(summary)})
}

// payoutHistory godoc
// @Summary Get the user's payout history
// @Description Returns one page of payouts, newest first
// @Tags finance
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.PayoutHistoryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /finance/payout-history [get]
func (h *payoutHandler) payoutHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.PayoutHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for payoutHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	payouts, total, err := h.payoutService.PayoutHistory(c.Request.Context(), userID, params.Page, params.Limit)
	if err != nil {
		logger.Error("Failed to fetch payout history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch payout history"})
		return
	}

	data := make([]dto.PayoutData, len(payouts))
	for i := range payouts {
		data[i] = dto.ToPayoutData(&payouts[i])
	}
	c.JSON(http.StatusOK, dto.PayoutHistoryResponse{
		Success: true,
		Payouts: data,
		Page:    normalizePage(params.Page),
		Limit:   normalizeLimit(params.Limit),
		Total:   total,
	})
}

// initiatePayout godoc
// @Summary Request a payout
// @Description Records a pending payout against one of the user's bank accounts
// @Tags finance
// @Accept json
// @Produce json
// @Param payout body dto.InitiatePayoutRequest true "Bank account and amount"
// @Success 201 {object} dto.PayoutResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /finance/initiate-payout [post]
func (h *payoutHandler) initiatePayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.InitiatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for initiatePayout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	payout, err := h.payoutService.InitiatePayout(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Bank account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error initiating payout", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to initiate payout", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to initiate payout"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.PayoutResponse{Success: true, Payout: dto.ToPayoutData(payout)})
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizeLimit(limit int) int {
	if limit < 1 || limit > 100 {
		return 20
	}
	return limit
}
