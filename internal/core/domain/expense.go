package domain

import "time"

// Expense represents a business expense entry.
// Identity is immutable; category, amount, date and description are editable.
type Expense struct {
	ExpenseID   string    `json:"expenseID"` // Primary Key
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"` // Minor units
}
