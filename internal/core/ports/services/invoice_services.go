package services

import (
	"context"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/bizledger/bizledger_backend/internal/dto"
)

// InvoiceSvcFacade defines the invoice lifecycle operations exposed to
// handlers. There is deliberately no delete: issued invoices are part of the
// financial record.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	// TransitionStatus moves the invoice to newStatus. Entry into the paid
	// state decrements stock for every line item, atomically with the
	// status write.
	TransitionStatus(ctx context.Context, invoiceID string, newStatus domain.InvoiceStatus) (*domain.Invoice, error)
}
