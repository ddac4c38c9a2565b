// Package reporting computes dashboard metrics and report views as pure,
// stateless functions over in-memory collection snapshots. Every aggregate
// is recomputed from scratch on each call; determinism is the only
// guarantee, which keeps the functions trivially testable and the results
// independent of store iteration order.
package reporting

import (
	"sort"
	"time"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

// TotalRevenue sums the totals of all paid invoices.
func TotalRevenue(invoices []domain.Invoice) int64 {
	var total int64
	for _, inv := range invoices {
		if inv.Status == domain.StatusPaid {
			total += inv.TotalAmount
		}
	}
	return total
}

// LowStockCount counts products whose stock is below domain.LowStockThreshold.
func LowStockCount(products []domain.Product) int {
	count := 0
	for _, p := range products {
		if p.StockQuantity < domain.LowStockThreshold {
			count++
		}
	}
	return count
}

// UnpaidCount counts invoices in the sent or overdue states.
func UnpaidCount(invoices []domain.Invoice) int {
	count := 0
	for _, inv := range invoices {
		if inv.Status.IsUnpaid() {
			count++
		}
	}
	return count
}

// MonthlyRevenue buckets paid invoice totals into the 12 calendar months of
// year. Attribution uses the invoice's creation timestamp (UTC): the system
// records no separate paid-on date, so revenue is reported against issue
// date even when payment happened later.
func MonthlyRevenue(invoices []domain.Invoice, year int) []domain.MonthlyRevenueRow {
	rows := make([]domain.MonthlyRevenueRow, 12)
	for m := range rows {
		rows[m].Month = m + 1
	}
	for _, inv := range invoices {
		if inv.Status != domain.StatusPaid {
			continue
		}
		created := inv.CreatedAt.UTC()
		if created.Year() == year {
			rows[int(created.Month())-1].Revenue += inv.TotalAmount
		}
	}
	return rows
}

// TopSellingProducts ranks products by total quantity sold across all paid
// invoices' line items, descending. Revenue per product uses the line item
// price snapshots, not current product prices. Ties are broken by product
// ID ascending so the ranking is deterministic for a fixed input set.
func TopSellingProducts(invoices []domain.Invoice, n int) []domain.ProductSales {
	sales := make(map[string]*domain.ProductSales)
	for _, inv := range invoices {
		if inv.Status != domain.StatusPaid {
			continue
		}
		for _, li := range inv.LineItems {
			ps, ok := sales[li.ProductID]
			if !ok {
				ps = &domain.ProductSales{ProductID: li.ProductID, Name: li.Name}
				sales[li.ProductID] = ps
			}
			ps.QuantitySold += li.Quantity
			ps.Revenue += li.Price * li.Quantity
		}
	}

	ranked := make([]domain.ProductSales, 0, len(sales))
	for _, ps := range sales {
		ranked = append(ranked, *ps)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].QuantitySold != ranked[j].QuantitySold {
			return ranked[i].QuantitySold > ranked[j].QuantitySold
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MonthProfit computes paid revenue minus expenses for one calendar month.
// The result may be negative.
func MonthProfit(invoices []domain.Invoice, expenses []domain.Expense, year int, month time.Month) domain.ProfitReport {
	report := domain.ProfitReport{Year: year, Month: int(month)}
	for _, inv := range invoices {
		if inv.Status != domain.StatusPaid {
			continue
		}
		if created := inv.CreatedAt.UTC(); created.Year() == year && created.Month() == month {
			report.Revenue += inv.TotalAmount
		}
	}
	for _, e := range expenses {
		if date := e.Date.UTC(); date.Year() == year && date.Month() == month {
			report.Expenses += e.Amount
		}
	}
	report.Profit = report.Revenue - report.Expenses
	return report
}

// ExpenseBreakdown groups one month's expenses by category and sums their
// amounts, sorted by amount descending with category name as tie breaker.
func ExpenseBreakdown(expenses []domain.Expense, year int, month time.Month) []domain.CategoryAmount {
	byCategory := make(map[string]int64)
	for _, e := range expenses {
		if date := e.Date.UTC(); date.Year() == year && date.Month() == month {
			byCategory[e.Category] += e.Amount
		}
	}

	rows := make([]domain.CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		rows = append(rows, domain.CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// RecentInvoices returns the n most recently created invoices, newest first.
// Ties on creation time fall back to invoice ID for a stable order.
func RecentInvoices(invoices []domain.Invoice, n int) []domain.Invoice {
	recent := make([]domain.Invoice, len(invoices))
	copy(recent, invoices)
	sort.Slice(recent, func(i, j int) bool {
		if !recent[i].CreatedAt.Equal(recent[j].CreatedAt) {
			return recent[i].CreatedAt.After(recent[j].CreatedAt)
		}
		return recent[i].InvoiceID < recent[j].InvoiceID
	})
	if n >= 0 && len(recent) > n {
		recent = recent[:n]
	}
	return recent
}
