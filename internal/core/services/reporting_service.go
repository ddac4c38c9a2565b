package services

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/core/reporting"
	"github.com/bizledger/bizledger_backend/internal/projection"
)

const recentInvoiceCount = 5

// reportingService derives every metric from the projection snapshot taken
// at call time. Nothing is cached between calls; two calls with no
// intervening mutation return identical results.
type reportingService struct {
	BaseService
	projection projection.Store
}

// NewReportingService creates a new reporting service.
func NewReportingService(proj projection.Store) portssvc.ReportingSvcFacade {
	return &reportingService{projection: proj}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Dashboard returns the headline metrics plus the most recent invoices.
func (s *reportingService) Dashboard(ctx context.Context) (*domain.DashboardSummary, []domain.Invoice, error) {
	snap, err := s.projection.Snapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read projection snapshot for dashboard")
		return nil, nil, err
	}

	summary := &domain.DashboardSummary{
		TotalRevenue:    reporting.TotalRevenue(snap.Invoices),
		ActiveCustomers: len(snap.Customers),
		LowStockCount:   reporting.LowStockCount(snap.Products),
		UnpaidCount:     reporting.UnpaidCount(snap.Invoices),
	}
	recent := reporting.RecentInvoices(snap.Invoices, recentInvoiceCount)
	return summary, recent, nil
}

func (s *reportingService) MonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenueRow, error) {
	snap, err := s.projection.Snapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read projection snapshot for monthly revenue")
		return nil, err
	}
	return reporting.MonthlyRevenue(snap.Invoices, year), nil
}

func (s *reportingService) TopProducts(ctx context.Context, limit int) ([]domain.ProductSales, error) {
	snap, err := s.projection.Snapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read projection snapshot for top products")
		return nil, err
	}
	return reporting.TopSellingProducts(snap.Invoices, limit), nil
}

func (s *reportingService) MonthProfit(ctx context.Context, year int, month time.Month) (*domain.ProfitReport, error) {
	snap, err := s.projection.Snapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read projection snapshot for profit report")
		return nil, err
	}
	report := reporting.MonthProfit(snap.Invoices, snap.Expenses, year, month)
	return &report, nil
}

func (s *reportingService) ExpenseBreakdown(ctx context.Context, year int, month time.Month) ([]domain.CategoryAmount, error) {
	snap, err := s.projection.Snapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read projection snapshot for expense breakdown")
		return nil, err
	}
	return reporting.ExpenseBreakdown(snap.Expenses, year, month), nil
}
