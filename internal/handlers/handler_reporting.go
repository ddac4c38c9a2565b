package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
	"github.com/bizledger/bizledger_backend/internal/middleware"
)

const defaultTopProductsLimit = 5

// reportingHandler handles HTTP requests for dashboard metrics and reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the dashboard and report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/dashboard", h.getDashboard)

	reports := rg.Group("/reports")
	{
		reports.GET("/monthly-revenue", h.getMonthlyRevenue)
		reports.GET("/top-products", h.getTopProducts)
		reports.GET("/profit", h.getProfit)
		reports.GET("/expense-breakdown", h.getExpenseBreakdown)
	}
}

// yearMonthParams parses the required year and month query parameters.
// Reported errors are written to the response; ok is false when that happened.
func yearMonthParams(c *gin.Context) (year int, month time.Month, ok bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing year parameter"})
		return 0, 0, false
	}
	m, err := strconv.Atoi(c.Query("month"))
	if err != nil || m < 1 || m > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing month parameter (1-12)"})
		return 0, 0, false
	}
	return year, time.Month(m), true
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Returns headline metrics (total paid revenue, customer count, low-stock count, unpaid count) plus the five most recent invoices.
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 500 {object} map[string]string "Failed to compute dashboard"
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, recent, err := h.reportingService.Dashboard(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary, recent))
}

// getMonthlyRevenue godoc
// @Summary Monthly revenue series
// @Description Returns paid revenue bucketed into the 12 calendar months of the given year. Months without revenue are zero.
// @Tags reports
// @Produce  json
// @Param   year query int true "Calendar year"
// @Success 200 {object} dto.MonthlyRevenueResponse
// @Failure 400 {object} map[string]string "Invalid year"
// @Failure 500 {object} map[string]string "Failed to compute monthly revenue"
// @Router /reports/monthly-revenue [get]
func (h *reportingHandler) getMonthlyRevenue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing year parameter"})
		return
	}

	rows, err := h.reportingService.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		logger.Error("Failed to compute monthly revenue", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute monthly revenue"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyRevenueResponse(year, rows))
}

// getTopProducts godoc
// @Summary Best-selling products
// @Description Ranks products by total quantity sold across paid invoices, descending. Defaults to the top 5.
// @Tags reports
// @Produce  json
// @Param   limit query int false "Maximum number of products" default(5)
// @Success 200 {array} dto.ProductSalesRow
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 500 {object} map[string]string "Failed to compute top products"
// @Router /reports/top-products [get]
func (h *reportingHandler) getTopProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := defaultTopProductsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	sales, err := h.reportingService.TopProducts(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to compute top products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute top products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductSalesRows(sales))
}

// getProfit godoc
// @Summary Monthly profit report
// @Description Returns paid revenue, expenses and their difference for one calendar month. Profit may be negative.
// @Tags reports
// @Produce  json
// @Param   year query int true "Calendar year"
// @Param   month query int true "Calendar month (1-12)"
// @Success 200 {object} dto.ProfitResponse
// @Failure 400 {object} map[string]string "Invalid year or month"
// @Failure 500 {object} map[string]string "Failed to compute profit report"
// @Router /reports/profit [get]
func (h *reportingHandler) getProfit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	report, err := h.reportingService.MonthProfit(c.Request.Context(), year, month)
	if err != nil {
		logger.Error("Failed to compute profit report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute profit report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitResponse(report))
}

// getExpenseBreakdown godoc
// @Summary Expense breakdown by category
// @Description Groups one month's expenses by category, sorted by amount descending.
// @Tags reports
// @Produce  json
// @Param   year query int true "Calendar year"
// @Param   month query int true "Calendar month (1-12)"
// @Success 200 {array} dto.CategoryAmountRow
// @Failure 400 {object} map[string]string "Invalid year or month"
// @Failure 500 {object} map[string]string "Failed to compute expense breakdown"
// @Router /reports/expense-breakdown [get]
func (h *reportingHandler) getExpenseBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.ExpenseBreakdown(c.Request.Context(), year, month)
	if err != nil {
		logger.Error("Failed to compute expense breakdown", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute expense breakdown"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryAmountRows(rows))
}
