package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
	"github.com/bizledger/bizledger_backend/internal/projection"
	"github.com/bizledger/bizledger_backend/internal/utils"
)

var (
	ErrEmptyLineItems   = errors.New("invoice must have at least one line item")
	ErrProductNotFound  = errors.New("line item references unknown product")
	ErrTotalMismatch    = errors.New("invoice total does not match sum of line items")
	ErrInvalidQuantity  = errors.New("line item quantity must be at least one")
	ErrCustomerNotFound = errors.New("invoice references unknown customer")
)

// invoiceService enforces the invoice lifecycle: permissive status
// transitions with a stock decrement side effect on every entry into the
// paid state, applied atomically with the status write by the repository.
type invoiceService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepository
	productRepo  portsrepo.ProductRepository
	customerRepo portsrepo.CustomerRepository
	projection   projection.Store
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepository,
	productRepo portsrepo.ProductRepository,
	customerRepo portsrepo.CustomerRepository,
	proj projection.Store,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		projection:   proj,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice validates and persists a new invoice. The caller supplies
// the product snapshots (name, description, price) for each line; the
// service verifies each referenced product exists and that the supplied
// total equals the sum of line totals. An invoice created directly in the
// paid state fires the stock decrement within the same store transaction
// as the insert.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if len(req.LineItems) == 0 {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, ErrEmptyLineItems)
	}

	dueDate, err := utils.DateToTime(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v: %s", apperrors.ErrValidation, ErrCustomerNotFound, req.CustomerID)
		}
		s.LogError(ctx, err, "Failed to verify invoice customer", slog.String("customer_id", req.CustomerID))
		return nil, err
	}

	lineItems := make([]domain.LineItem, len(req.LineItems))
	productIDs := make([]string, 0, len(req.LineItems))
	for i, li := range req.LineItems {
		if li.Quantity < 1 {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, ErrInvalidQuantity)
		}
		lineItems[i] = domain.LineItem{
			ProductID:   li.ProductID,
			Name:        li.Name,
			Description: li.Description,
			Price:       li.Price,
			Quantity:    li.Quantity,
		}
		productIDs = append(productIDs, li.ProductID)
	}

	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to verify invoice products")
		return nil, err
	}
	for _, id := range productIDs {
		if _, ok := products[id]; !ok {
			return nil, fmt.Errorf("%w: %v: %s", apperrors.ErrValidation, ErrProductNotFound, id)
		}
	}

	invoiceID := req.InvoiceID
	if invoiceID == "" {
		invoiceID = uuid.NewString()
	}

	invoice := domain.Invoice{
		InvoiceID:   invoiceID,
		CustomerID:  req.CustomerID,
		LineItems:   lineItems,
		TotalAmount: req.TotalAmount,
		Status:      req.Status,
		CreatedAt:   time.Now().UTC(),
		DueDate:     dueDate,
	}

	if total := invoice.LineItemsTotal(); total != req.TotalAmount {
		return nil, fmt.Errorf("%w: %v: supplied %d, computed %d", apperrors.ErrValidation, ErrTotalMismatch, req.TotalAmount, total)
	}

	var decrements map[string]int64
	if invoice.Status == domain.StatusPaid {
		decrements = invoice.StockDecrements()
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, decrements); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}

	s.updateProjection(ctx, invoice, decrements)
	s.LogInfo(ctx, "Invoice created successfully",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(invoice.Status)),
		slog.Int64("total_amount", invoice.TotalAmount))
	return &invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice by ID", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, err
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// TransitionStatus moves an invoice to newStatus. Any status may follow any
// other; mistakes get corrected by moving back. The stock decrement fires
// only when the invoice enters paid from a non-paid status: writing paid
// over paid must not decrement twice, while leaving paid and re-entering it
// counts as a fresh entry. No restock happens on the way out of paid.
func (s *invoiceService) TransitionStatus(ctx context.Context, invoiceID string, newStatus domain.InvoiceStatus) (*domain.Invoice, error) {
	invoice, err := s.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	previous := invoice.Status
	entersPaid, err := previous.TransitionTo(newStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %s", apperrors.ErrValidation, err, newStatus)
	}

	var decrements map[string]int64
	if entersPaid {
		decrements = invoice.StockDecrements()
	}

	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, newStatus, decrements); err != nil {
		s.LogError(ctx, err, "Failed to transition invoice status",
			slog.String("invoice_id", invoiceID),
			slog.String("from", string(previous)),
			slog.String("to", string(newStatus)))
		return nil, err
	}

	invoice.Status = newStatus
	s.updateProjection(ctx, *invoice, decrements)
	s.LogInfo(ctx, "Invoice status transitioned",
		slog.String("invoice_id", invoiceID),
		slog.String("from", string(previous)),
		slog.String("to", string(newStatus)),
		slog.Bool("stock_decremented", entersPaid))
	return invoice, nil
}

// updateProjection mirrors a confirmed invoice write (and any stock
// decrement) onto the local cache. A cache failure is logged, not surfaced.
func (s *invoiceService) updateProjection(ctx context.Context, invoice domain.Invoice, decrements map[string]int64) {
	if err := s.projection.PutInvoice(ctx, invoice); err != nil {
		s.LogWarn(ctx, "Failed to update invoice projection", slog.String("invoice_id", invoice.InvoiceID), slog.String("error", err.Error()))
	}
	if len(decrements) > 0 {
		if err := s.projection.ApplyStockDecrements(ctx, decrements); err != nil {
			s.LogWarn(ctx, "Failed to apply stock decrements to projection", slog.String("invoice_id", invoice.InvoiceID), slog.String("error", err.Error()))
		}
	}
}
