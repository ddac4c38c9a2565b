package domain

// Product represents an inventory item.
// Price is stored in integer minor currency units (e.g. paise/cents)
// to avoid floating-point rounding in arithmetic.
type Product struct {
	ProductID     string `json:"productID"` // Primary Key
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`         // Minor units, >= 0
	StockQuantity int64  `json:"stockQuantity"` // >= 0, floored at zero on decrement
}
