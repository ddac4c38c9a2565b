// Package projection holds the last-known copy of each entity collection.
// The store is updated only after a mutation is confirmed by the record
// store, never optimistically, so a failed write leaves the projection
// untouched. Reporting reads consistent snapshots from here instead of
// re-querying the store on every aggregate.
package projection

import (
	"context"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

// Snapshot is a point-in-time copy of all four collections. Slices are
// ordered by entity ID so downstream consumers see a deterministic view.
type Snapshot struct {
	Customers []domain.Customer
	Products  []domain.Product
	Expenses  []domain.Expense
	Invoices  []domain.Invoice
}

// Store is an injectable projection of the record store's collections,
// keyed by entity id.
type Store interface {
	PutCustomer(ctx context.Context, customer domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error

	PutProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	// ApplyStockDecrements mirrors the paid-entry stock side effect onto the
	// cached products, flooring each quantity at zero. Unknown product IDs
	// are ignored.
	ApplyStockDecrements(ctx context.Context, decrements map[string]int64) error

	PutExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error

	PutInvoice(ctx context.Context, invoice domain.Invoice) error

	// ReplaceAll swaps in a full snapshot, used to warm the projection from
	// the record store at startup.
	ReplaceAll(ctx context.Context, snap Snapshot) error
	Snapshot(ctx context.Context) (Snapshot, error)
}
