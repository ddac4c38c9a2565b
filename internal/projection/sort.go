package projection

import "sort"

// Map iteration order (and Redis HGETALL order) is unspecified; snapshots
// are always returned sorted by entity ID.
func sortSnapshot(snap *Snapshot) {
	sort.Slice(snap.Customers, func(i, j int) bool { return snap.Customers[i].CustomerID < snap.Customers[j].CustomerID })
	sort.Slice(snap.Products, func(i, j int) bool { return snap.Products[i].ProductID < snap.Products[j].ProductID })
	sort.Slice(snap.Expenses, func(i, j int) bool { return snap.Expenses[i].ExpenseID < snap.Expenses[j].ExpenseID })
	sort.Slice(snap.Invoices, func(i, j int) bool { return snap.Invoices[i].InvoiceID < snap.Invoices[j].InvoiceID })
}
