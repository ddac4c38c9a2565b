package services

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

// ReportingSvcFacade computes dashboard metrics and report views. All
// results are derived from the current projection snapshot on every call.
type ReportingSvcFacade interface {
	Dashboard(ctx context.Context) (*domain.DashboardSummary, []domain.Invoice, error)
	MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenueRow, error)
	TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error)
	MonthProfit(ctx context.Context, year int, month time.Month) (*domain.ProfitReport, error)
	ExpenseBreakdown(ctx context.Context, year int, month time.Month) ([]domain.CategoryAmount, error)
}
