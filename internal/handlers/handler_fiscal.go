package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agribooks/ledger-core/internal/apperrors"
	portssvc "github.com/agribooks/ledger-core/internal/core/ports/services"
	"github.com/agribooks/ledger-core/internal/dto"
	"github.com/agribooks/ledger-core/internal/middleware"
)

// fiscalHandler handles fiscal period and year-end close requests.
type fiscalHandler struct {
	fiscalService portssvc.FiscalSvcFacade
}

// newFiscalHandler creates a new fiscalHandler.
func newFiscalHandler(fs portssvc.FiscalSvcFacade) *fiscalHandler {
	return &fiscalHandler{fiscalService: fs}
}

// registerFiscalRoutes registers routes related to fiscal periods.
func registerFiscalRoutes(rg *gin.RouterGroup, fiscalService portssvc.FiscalSvcFacade) {
	h := newFiscalHandler(fiscalService)

	fiscal := rg.Group("/fiscal-years")
	{
		fiscal.POST("", h.createFiscalYear)
		fiscal.GET("/:year/periods", h.listPeriods)
		fiscal.POST("/close", h.closeFiscalYear)
	}

	periods := rg.Group("/fiscal-periods")
	{
		periods.GET("/for-date", h.getPeriodForDate)
		periods.POST("/:id/close", h.closePeriod)
	}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Description Generates twelve contiguous monthly periods for the given year
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   year body dto.CreateFiscalYearRequest true "Fiscal year"
// @Success 201 {array} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 409 {object} map[string]string "Fiscal year already exists"
// @Failure 500 {object} map[string]string "Failed to create fiscal year"
// @Router /fiscal-years [post]
func (h *fiscalHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	periods, err := h.fiscalService.CreateFiscalYear(c.Request.Context(), req.Year, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create fiscal year", slog.Int("year", req.Year), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fiscal year"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFiscalPeriodResponses(periods))
}

// listPeriods godoc
// @Summary List a year's fiscal periods
// @Tags fiscal
// @Produce  json
// @Param   year path int true "Fiscal year"
// @Success 200 {array} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Router /fiscal-years/{year}/periods [get]
func (h *fiscalHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	periods, err := h.fiscalService.ListPeriods(c.Request.Context(), year)
	if err != nil {
		logger.Error("Failed to list periods", slog.Int("year", year), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponses(periods))
}

// getPeriodForDate godoc
// @Summary Find the period containing a date
// @Tags fiscal
// @Produce  json
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 400 {object} map[string]string "Missing or invalid date"
// @Failure 404 {object} map[string]string "No period covers the date"
// @Failure 500 {object} map[string]string "Failed to find period"
// @Router /fiscal-periods/for-date [get]
func (h *fiscalHandler) getPeriodForDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dateStr := c.Query("date")
	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	period, err := h.fiscalService.GetPeriodForDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No fiscal period covers this date"})
		} else {
			logger.Error("Failed to find period for date", slog.String("date", dateStr), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Locks a period against postings; closing an already-closed period is a no-op
// @Tags fiscal
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.FiscalPeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Router /fiscal-periods/{id}/close [post]
func (h *fiscalHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	userID := middleware.GetUserIDFromContext(c)
	period, err := h.fiscalService.ClosePeriod(c.Request.Context(), periodID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to close period", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponse(period))
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Zeroes revenue and expense balances into retained earnings with one posted closing entry
// @Tags fiscal
// @Accept  json
// @Produce  json
// @Param   close body dto.CloseFiscalYearRequest true "Year and retained earnings account"
// @Success 200 {object} domain.YearEndCloseResult
// @Failure 400 {object} map[string]string "Invalid request or non-equity target account"
// @Failure 404 {object} map[string]string "Fiscal year or account not found"
// @Failure 409 {object} map[string]string "Target period already closed"
// @Failure 500 {object} map[string]string "Failed to close fiscal year"
// @Router /fiscal-years/close [post]
func (h *fiscalHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	result, err := h.fiscalService.CloseFiscalYear(c.Request.Context(), req.Year, req.RetainedEarningsAccountID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close fiscal year", slog.Int("year", req.Year), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close fiscal year"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
