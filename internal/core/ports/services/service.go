package services

// ServiceContainer bundles all service facades for injection into the
// HTTP layer.
type ServiceContainer struct {
	Customer  CustomerSvcFacade
	Product   ProductSvcFacade
	Expense   ExpenseSvcFacade
	Invoice   InvoiceSvcFacade
	Reporting ReportingSvcFacade
}
