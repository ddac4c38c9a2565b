package dto

import (
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/bizledger/bizledger_backend/internal/utils"
)

// LineItemRequest is one invoice line. Name, description and price are the
// caller's snapshot of the referenced product at invoice creation time; the
// server validates that the product exists but stores the snapshot verbatim
// so later product edits never alter the invoice.
type LineItemRequest struct {
	ProductID   string `json:"productID" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"gte=0"`
	Quantity    int64  `json:"quantity" binding:"required,gte=1"`
}

// CreateInvoiceRequest defines the data needed to issue an invoice.
// TotalAmount must equal the sum of price*quantity over the line items;
// the server recomputes and rejects mismatches. DueDate is YYYY-MM-DD.
type CreateInvoiceRequest struct {
	InvoiceID   string               `json:"invoiceID"`
	CustomerID  string               `json:"customerID" binding:"required"`
	LineItems   []LineItemRequest    `json:"lineItems" binding:"required,min=1,dive"`
	TotalAmount int64                `json:"totalAmount" binding:"gte=0"`
	Status      domain.InvoiceStatus `json:"status" binding:"required,invoicestatus"`
	DueDate     string               `json:"dueDate" binding:"required"`
}

// UpdateInvoiceStatusRequest carries the target status for a transition.
type UpdateInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,invoicestatus"`
}

// LineItemResponse mirrors a stored line item.
type LineItemResponse struct {
	ProductID   string `json:"productID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
}

// InvoiceResponse defines the data returned for an invoice. Timestamps are
// integer nanoseconds since epoch; DueDateDisplay is the calendar rendering.
type InvoiceResponse struct {
	InvoiceID          string               `json:"invoiceID"`
	CustomerID         string               `json:"customerID"`
	LineItems          []LineItemResponse   `json:"lineItems"`
	TotalAmount        int64                `json:"totalAmount"`
	TotalAmountDisplay string               `json:"totalAmountDisplay"`
	Status             domain.InvoiceStatus `json:"status"`
	CreatedAt          int64                `json:"createdAt"`
	DueDate            int64                `json:"dueDate"`
	DueDateDisplay     string               `json:"dueDateDisplay"`
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.LineItems))
	for i, li := range inv.LineItems {
		items[i] = LineItemResponse{
			ProductID:   li.ProductID,
			Name:        li.Name,
			Description: li.Description,
			Price:       li.Price,
			Quantity:    li.Quantity,
		}
	}
	return InvoiceResponse{
		InvoiceID:          inv.InvoiceID,
		CustomerID:         inv.CustomerID,
		LineItems:          items,
		TotalAmount:        inv.TotalAmount,
		TotalAmountDisplay: utils.MinorUnitsToDisplay(inv.TotalAmount),
		Status:             inv.Status,
		CreatedAt:          utils.TimeToNanos(inv.CreatedAt),
		DueDate:            utils.TimeToNanos(inv.DueDate),
		DueDateDisplay:     utils.TimeToDate(inv.DueDate),
	}
}

// ToInvoiceResponses converts a slice of invoices.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return out
}
