package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo: newPgxCustomerRepository(dbPool),
		ProductRepo:  newPgxProductRepository(dbPool),
		ExpenseRepo:  newPgxExpenseRepository(dbPool),
		InvoiceRepo:  newPgxInvoiceRepository(dbPool),
	}
}
