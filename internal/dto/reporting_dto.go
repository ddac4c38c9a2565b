package dto

import (
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/bizledger/bizledger_backend/internal/utils"
)

// DashboardResponse bundles the headline metrics with the most recent
// invoices for the dashboard view.
type DashboardResponse struct {
	TotalRevenue        int64             `json:"totalRevenue"`
	TotalRevenueDisplay string            `json:"totalRevenueDisplay"`
	ActiveCustomers     int               `json:"activeCustomers"`
	LowStockCount       int               `json:"lowStockCount"`
	UnpaidCount         int               `json:"unpaidCount"`
	RecentInvoices      []InvoiceResponse `json:"recentInvoices"`
}

// ToDashboardResponse converts the summary and recent invoices to the
// dashboard DTO.
func ToDashboardResponse(summary *domain.DashboardSummary, recent []domain.Invoice) DashboardResponse {
	return DashboardResponse{
		TotalRevenue:        summary.TotalRevenue,
		TotalRevenueDisplay: utils.MinorUnitsToDisplay(summary.TotalRevenue),
		ActiveCustomers:     summary.ActiveCustomers,
		LowStockCount:       summary.LowStockCount,
		UnpaidCount:         summary.UnpaidCount,
		RecentInvoices:      ToInvoiceResponses(recent),
	}
}

// MonthlyRevenueResponse is the 12-month revenue series for one year.
type MonthlyRevenueResponse struct {
	Year   int                 `json:"year"`
	Months []MonthlyRevenueRow `json:"months"`
}

// MonthlyRevenueRow is one month's revenue with its display rendering.
type MonthlyRevenueRow struct {
	Month          int    `json:"month"`
	Revenue        int64  `json:"revenue"`
	RevenueDisplay string `json:"revenueDisplay"`
}

// ToMonthlyRevenueResponse converts the domain series to its DTO.
func ToMonthlyRevenueResponse(year int, rows []domain.MonthlyRevenueRow) MonthlyRevenueResponse {
	out := MonthlyRevenueResponse{Year: year, Months: make([]MonthlyRevenueRow, len(rows))}
	for i, r := range rows {
		out.Months[i] = MonthlyRevenueRow{
			Month:          r.Month,
			Revenue:        r.Revenue,
			RevenueDisplay: utils.MinorUnitsToDisplay(r.Revenue),
		}
	}
	return out
}

// ProductSalesRow is one ranked product in the best-sellers report.
type ProductSalesRow struct {
	ProductID      string `json:"productID"`
	Name           string `json:"name"`
	QuantitySold   int64  `json:"quantitySold"`
	Revenue        int64  `json:"revenue"`
	RevenueDisplay string `json:"revenueDisplay"`
}

// ToProductSalesRows converts the domain ranking to its DTO rows.
func ToProductSalesRows(sales []domain.ProductSales) []ProductSalesRow {
	out := make([]ProductSalesRow, len(sales))
	for i, s := range sales {
		out[i] = ProductSalesRow{
			ProductID:      s.ProductID,
			Name:           s.Name,
			QuantitySold:   s.QuantitySold,
			Revenue:        s.Revenue,
			RevenueDisplay: utils.MinorUnitsToDisplay(s.Revenue),
		}
	}
	return out
}

// ProfitResponse is the revenue vs expenses comparison for one month.
type ProfitResponse struct {
	Year            int    `json:"year"`
	Month           int    `json:"month"`
	Revenue         int64  `json:"revenue"`
	RevenueDisplay  string `json:"revenueDisplay"`
	Expenses        int64  `json:"expenses"`
	ExpensesDisplay string `json:"expensesDisplay"`
	Profit          int64  `json:"profit"`
	ProfitDisplay   string `json:"profitDisplay"`
}

// ToProfitResponse converts a domain.ProfitReport to its DTO.
func ToProfitResponse(r *domain.ProfitReport) ProfitResponse {
	return ProfitResponse{
		Year:            r.Year,
		Month:           r.Month,
		Revenue:         r.Revenue,
		RevenueDisplay:  utils.MinorUnitsToDisplay(r.Revenue),
		Expenses:        r.Expenses,
		ExpensesDisplay: utils.MinorUnitsToDisplay(r.Expenses),
		Profit:          r.Profit,
		ProfitDisplay:   utils.MinorUnitsToDisplay(r.Profit),
	}
}

// CategoryAmountRow is one category's total in the expense breakdown.
type CategoryAmountRow struct {
	Category      string `json:"category"`
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amountDisplay"`
}

// ToCategoryAmountRows converts the domain breakdown to its DTO rows.
func ToCategoryAmountRows(rows []domain.CategoryAmount) []CategoryAmountRow {
	out := make([]CategoryAmountRow, len(rows))
	for i, r := range rows {
		out[i] = CategoryAmountRow{
			Category:      r.Category,
			Amount:        r.Amount,
			AmountDisplay: utils.MinorUnitsToDisplay(r.Amount),
		}
	}
	return out
}
