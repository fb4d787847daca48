package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerline/bookkeeping_app/internal/core/ports/services"
	"github.com/ledgerline/bookkeeping_app/internal/dto"
	"github.com/ledgerline/bookkeeping_app/internal/middleware"
)

// reportingHandler handles HTTP requests for dashboard aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/totals", h.getTotals)
		reports.GET("/monthly", h.getMonthlySummary)
	}
}

// bindReportFilter binds the shared report query parameters. Reports accept
// the same filter vocabulary as the transaction list, minus pagination.
func bindReportFilter(c *gin.Context, logger *slog.Logger) (dto.ListTransactionsParams, bool) {
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return params, false
	}
	return params, true
}

// getTotals godoc
// @Summary Aggregate totals
// @Description Sums income and expense over every record matching the filter; net is income minus expense
// @Tags reports
// @Produce  json
// @Param   from query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param   to query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param   type query string false "Income or Expense"
// @Param   category query string false "Case-insensitive category substring"
// @Success 200 {object} dto.TotalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 502 {object} map[string]string "Store unreachable"
// @Router /reports/totals [get]
func (h *reportingHandler) getTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportFilter(c, logger)
	if !ok {
		return
	}

	filter := params.Filter()
	totals, err := h.reportingService.Totals(c.Request.Context(), filter)
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to compute totals")
		return
	}

	c.JSON(http.StatusOK, dto.ToTotalsResponse(totals, filter))
}

// getMonthlySummary godoc
// @Summary Monthly breakdown
// @Description Groups matching records by month, summing income and expense per group, ascending by month
// @Tags reports
// @Produce  json
// @Param   from query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param   to query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param   type query string false "Income or Expense"
// @Param   category query string false "Case-insensitive category substring"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 502 {object} map[string]string "Store unreachable"
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	params, ok := bindReportFilter(c, logger)
	if !ok {
		return
	}

	rows, err := h.reportingService.MonthlySummary(c.Request.Context(), params.Filter())
	if err != nil {
		respondTransactionError(c, logger, err, "Failed to compute monthly summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(rows))
}
