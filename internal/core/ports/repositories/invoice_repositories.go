package repositories

import (
	"context"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

// InvoiceRepository defines persistence operations for invoices.
//
// Invoices are never deleted. The compound operations take an optional map of
// per-product stock decrements which MUST be applied atomically with the
// invoice write: an invoice marked paid with stock unchanged (or the reverse)
// must never become visible after a partial failure. Decrements floor the
// stored stock quantity at zero.
type InvoiceRepository interface {
	// SaveInvoice inserts a new invoice. stockDecrements is non-nil only
	// when the invoice is created directly in the paid state.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, stockDecrements map[string]int64) error
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	// UpdateInvoiceStatus writes the new status. stockDecrements is non-nil
	// only when the transition enters the paid state.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, stockDecrements map[string]int64) error
}
