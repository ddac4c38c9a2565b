package services

import (
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/projection"
)

// NewServiceContainer wires repositories and the projection store into the
// full service layer.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, proj projection.Store) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Customer:  NewCustomerService(repos.CustomerRepo, proj),
		Product:   NewProductService(repos.ProductRepo, proj),
		Expense:   NewExpenseService(repos.ExpenseRepo, proj),
		Invoice:   NewInvoiceService(repos.InvoiceRepo, repos.ProductRepo, repos.CustomerRepo, proj),
		Reporting: NewReportingService(proj),
	}
}
