package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agribooks/ledger-core/internal/apperrors"
	portssvc "github.com/agribooks/ledger-core/internal/core/ports/services"
	"github.com/agribooks/ledger-core/internal/dto"
	"github.com/agribooks/ledger-core/internal/middleware"
)

// ledgerHandler handles read-side balance and report requests.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes for balances and reports.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/accounts/:id/balance", h.getAccountBalance)
	rg.GET("/accounts/:id/ledger", h.getAccountLedger)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
	}
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Computes an account's balance as of a date using the normal-balance sign convention
// @Tags ledger
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   asOf query string false "Balance date (YYYY-MM-DD); defaults to all time"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Router /accounts/{id}/balance [get]
func (h *ledgerHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.BalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	balance, err := h.ledgerService.GetAccountBalance(c.Request.Context(), accountID, params.AsOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to compute balance", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		AsOf:      params.AsOf,
		Balance:   balance,
	})
}

// getAccountLedger godoc
// @Summary Get an account ledger
// @Description Replays an account over a date window with running balances
// @Tags ledger
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   start query string false "Window start (YYYY-MM-DD)"
// @Param   end query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.AccountLedger
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to build ledger"
// @Router /accounts/{id}/ledger [get]
func (h *ledgerHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	ledger, err := h.ledgerService.GetAccountLedger(c.Request.Context(), accountID, params.Start, params.End)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to build ledger", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, ledger)
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Proves total debits equal total credits across all accounts as of a date
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (YYYY-MM-DD); defaults to now"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 500 {object} map[string]string "Failed to build trial balance"
// @Router /reports/trial-balance [get]
func (h *ledgerHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.BalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.ledgerService.GetTrialBalance(c.Request.Context(), params.AsOf)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// getProfitAndLoss godoc
// @Summary Get a profit and loss report
// @Description Summarizes revenue and expense activity over a date window
// @Tags reports
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.ProfitAndLossReport
// @Failure 400 {object} map[string]string "Missing or invalid window"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/profit-and-loss [get]
func (h *ledgerHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ProfitAndLossParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.ledgerService.GetProfitAndLoss(c.Request.Context(), params.From, params.To)
	if err != nil {
		logger.Error("Failed to build profit and loss report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
