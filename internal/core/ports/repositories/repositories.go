package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service layer.
type RepositoryProvider struct {
	CustomerRepo CustomerRepository
	ProductRepo  ProductRepository
	ExpenseRepo  ExpenseRepository
	InvoiceRepo  InvoiceRepository
}
