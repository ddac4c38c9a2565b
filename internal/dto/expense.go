package dto

import (
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/bizledger/bizledger_backend/internal/utils"
)

// CreateExpenseRequest defines the data needed to record an expense.
// Date is a YYYY-MM-DD calendar date; Amount is integer minor units.
type CreateExpenseRequest struct {
	ExpenseID   string `json:"expenseID"`
	Date        string `json:"date" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
}

// UpdateExpenseRequest replaces the full mutable field set of an expense.
type UpdateExpenseRequest struct {
	Date        string `json:"date" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
}

// ExpenseResponse defines the data returned for an expense. Date is both
// integer nanoseconds since epoch and its calendar rendering.
type ExpenseResponse struct {
	ExpenseID     string `json:"expenseID"`
	Date          int64  `json:"date"`
	DateDisplay   string `json:"dateDisplay"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amountDisplay"`
}

// ToExpenseResponse converts a domain.Expense to its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		Date:          utils.TimeToNanos(e.Date),
		DateDisplay:   utils.TimeToDate(e.Date),
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		AmountDisplay: utils.MinorUnitsToDisplay(e.Amount),
	}
}

// ToExpenseResponses converts a slice of expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out
}
