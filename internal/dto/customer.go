package dto

import (
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/bizledger/bizledger_backend/internal/utils"
)

// CreateCustomerRequest defines the data needed to register a new customer.
// CustomerID is optional: callers may supply their own opaque identifier,
// which doubles as an idempotency key for retried creates; when absent a
// UUID is minted server-side.
type CreateCustomerRequest struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// UpdateCustomerRequest replaces the full mutable field set of a customer.
// Identity fields (id, createdAt) never change.
type UpdateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerResponse defines the data returned for a customer. CreatedAt is
// integer nanoseconds since epoch, matching the record-store convention.
type CustomerResponse struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	CreatedAt  int64  `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		CreatedAt:  utils.TimeToNanos(c.CreatedAt),
	}
}

// ToCustomerResponses converts a slice of customers.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}
