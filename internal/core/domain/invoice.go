package domain

import "time"

// InvoiceStatus indicates the state of an invoice.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusSent    InvoiceStatus = "sent"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// IsValid reports whether s is one of the known invoice statuses.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// IsUnpaid reports whether the invoice counts towards the unpaid metric.
// Draft invoices are excluded: they have not been issued to the customer yet.
func (s InvoiceStatus) IsUnpaid() bool {
	return s == StatusSent || s == StatusOverdue
}

// TransitionTo models the status state machine. Any status may move to any
// other status directly; humans correct mistakes in a small-business tool.
// entersPaid is true only when the transition is an entry into paid from a
// non-paid status, which is the single trigger for the stock decrement side
// effect. Reassigning paid over paid does not re-trigger it.
func (s InvoiceStatus) TransitionTo(next InvoiceStatus) (entersPaid bool, err error) {
	if !next.IsValid() {
		return false, ErrInvalidStatus
	}
	return s != StatusPaid && next == StatusPaid, nil
}

// LineItem is an embedded snapshot of a product at invoice creation time.
// Subsequent edits to the referenced product never alter an existing invoice.
type LineItem struct {
	ProductID   string `json:"productID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`    // Minor units, snapshot of product price
	Quantity    int64  `json:"quantity"` // >= 1
}

// Invoice represents a customer invoice with its frozen line items.
type Invoice struct {
	InvoiceID   string        `json:"invoiceID"` // Primary Key
	CustomerID  string        `json:"customerID"`
	LineItems   []LineItem    `json:"lineItems"`
	TotalAmount int64         `json:"totalAmount"` // Minor units, equals sum of line totals
	Status      InvoiceStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	DueDate     time.Time     `json:"dueDate"`
}

// LineItemsTotal recomputes the invoice total from its line items.
func (inv Invoice) LineItemsTotal() int64 {
	var total int64
	for _, li := range inv.LineItems {
		total += li.Price * li.Quantity
	}
	return total
}

// StockDecrements returns the per-product quantity decrements the invoice
// causes when it enters the paid state. Quantities for the same product
// across multiple line items accumulate.
func (inv Invoice) StockDecrements() map[string]int64 {
	decrements := make(map[string]int64, len(inv.LineItems))
	for _, li := range inv.LineItems {
		decrements[li.ProductID] += li.Quantity
	}
	return decrements
}
