package domain

import "errors"

// ErrInvalidStatus indicates an unknown invoice status value.
var ErrInvalidStatus = errors.New("invalid invoice status")

// LowStockThreshold is the stock level below which a product is flagged on
// the dashboard.
const LowStockThreshold = 5
