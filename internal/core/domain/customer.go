package domain

import "time"

// Customer represents a business customer within the core domain.
// This is the primary representation used by services.
type Customer struct {
	CustomerID string    `json:"customerID"` // Primary Key (client-generated or UUID)
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"createdAt"`
}
