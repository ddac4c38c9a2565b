package dto

import (
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	"github.com/bizledger/bizledger_backend/internal/utils"
)

// CreateProductRequest defines the data needed to add an inventory product.
// Price is integer minor currency units.
type CreateProductRequest struct {
	ProductID     string `json:"productID"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Price         int64  `json:"price" binding:"gte=0"`
	StockQuantity int64  `json:"stockQuantity" binding:"gte=0"`
}

// UpdateProductRequest replaces the full mutable field set of a product.
type UpdateProductRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Price         int64  `json:"price" binding:"gte=0"`
	StockQuantity int64  `json:"stockQuantity" binding:"gte=0"`
}

// ProductResponse defines the data returned for a product. PriceDisplay is
// the decimal rendering of the minor-unit price for presentation.
type ProductResponse struct {
	ProductID     string `json:"productID"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`
	PriceDisplay  string `json:"priceDisplay"`
	StockQuantity int64  `json:"stockQuantity"`
	LowStock      bool   `json:"lowStock"`
}

// ToProductResponse converts a domain.Product to its response DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		PriceDisplay:  utils.MinorUnitsToDisplay(p.Price),
		StockQuantity: p.StockQuantity,
		LowStock:      p.StockQuantity < domain.LowStockThreshold,
	}
}

// ToProductResponses converts a slice of products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
