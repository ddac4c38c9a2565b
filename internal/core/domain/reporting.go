package domain

// DashboardSummary holds the headline metrics shown on the dashboard.
type DashboardSummary struct {
	TotalRevenue    int64 `json:"totalRevenue"`    // Sum of paid invoice totals, minor units
	ActiveCustomers int   `json:"activeCustomers"` // Total registered customers
	LowStockCount   int   `json:"lowStockCount"`   // Products below LowStockThreshold
	UnpaidCount     int   `json:"unpaidCount"`     // Invoices in sent or overdue
}

// MonthlyRevenueRow is one calendar month's paid revenue for a given year.
type MonthlyRevenueRow struct {
	Month   int   `json:"month"` // 1..12
	Revenue int64 `json:"revenue"`
}

// ProductSales aggregates sales of a single product across paid invoices.
type ProductSales struct {
	ProductID    string `json:"productID"`
	Name         string `json:"name"`
	QuantitySold int64  `json:"quantitySold"`
	Revenue      int64  `json:"revenue"`
}

// ProfitReport compares paid revenue against expenses for one month.
// Profit may be negative.
type ProfitReport struct {
	Year     int   `json:"year"`
	Month    int   `json:"month"` // 1..12
	Revenue  int64 `json:"revenue"`
	Expenses int64 `json:"expenses"`
	Profit   int64 `json:"profit"`
}

// CategoryAmount is one category's expense total within a month.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}
