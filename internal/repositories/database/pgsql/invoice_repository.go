package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepository = (*PgxInvoiceRepository)(nil)

// SaveInvoice inserts a new invoice, applying any paid-entry stock
// decrements within the same database transaction so the invoice and the
// stock change become visible together or not at all.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, stockDecrements map[string]int64) error {
	lineItems, err := json.Marshal(invoice.LineItems)
	if err != nil {
		return fmt.Errorf("failed to encode line items for invoice %s: %w", invoice.InvoiceID, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed.

	query := `
		INSERT INTO invoices (invoice_id, customer_id, line_items, total_amount, status, created_at, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.CustomerID,
		lineItems,
		invoice.TotalAmount,
		invoice.Status,
		invoice.CreatedAt,
		invoice.DueDate,
	)
	if err != nil {
		if translated := translateError(err); errors.Is(translated, apperrors.ErrDuplicate) {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+invoice.InvoiceID, err)
	}

	if err := applyStockDecrements(ctx, tx, stockDecrements); err != nil {
		return apperrors.NewAppError(500, "failed to decrement stock for invoice "+invoice.InvoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoiceStatus writes the new status and, when the transition enters
// the paid state, decrements stock for the invoice's line items in the same
// transaction.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, stockDecrements map[string]int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `UPDATE invoices SET status = $2 WHERE invoice_id = $1;`, invoiceID, status)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}

	if err := applyStockDecrements(ctx, tx, stockDecrements); err != nil {
		return apperrors.NewAppError(500, "failed to decrement stock for invoice "+invoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// applyStockDecrements queues one stock update per product. GREATEST floors
// the stored quantity at zero; an invoice may legitimately sell more than
// the recorded stock.
func applyStockDecrements(ctx context.Context, tx pgx.Tx, decrements map[string]int64) error {
	if len(decrements) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `UPDATE products SET stock_quantity = GREATEST(stock_quantity - $2, 0) WHERE product_id = $1;`
	for productID, qty := range decrements {
		batch.Queue(query, productID, qty)
	}
	br := tx.SendBatch(ctx, batch)
	return br.Close()
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT invoice_id, customer_id, line_items, total_amount, status, created_at, due_date
		FROM invoices
		WHERE invoice_id = $1;
	`
	inv, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if translated := translateError(err); errors.Is(translated, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return inv, nil
}

// ListInvoices retrieves all invoices ordered by ID.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	query := `
		SELECT invoice_id, customer_id, line_items, total_amount, status, created_at, due_date
		FROM invoices
		ORDER BY invoice_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading invoice rows: %w", err)
	}
	return invoices, nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	var lineItems []byte
	err := row.Scan(
		&inv.InvoiceID,
		&inv.CustomerID,
		&lineItems,
		&inv.TotalAmount,
		&inv.Status,
		&inv.CreatedAt,
		&inv.DueDate,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lineItems, &inv.LineItems); err != nil {
		return nil, fmt.Errorf("failed to decode line items of invoice %s: %w", inv.InvoiceID, err)
	}
	return &inv, nil
}
