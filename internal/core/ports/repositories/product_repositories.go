package repositories

import (
	"context"

	"github.com/bizledger/bizledger_backend/internal/core/domain"
)

// ProductRepository defines persistence operations for inventory products.
type ProductRepository interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	// FindProductsByIDs returns the products that exist, keyed by ID.
	// Missing IDs are simply absent from the map.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}
