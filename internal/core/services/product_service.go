package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_backend/internal/apperrors"
	"github.com/bizledger/bizledger_backend/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_backend/internal/core/ports/services"
	"github.com/bizledger/bizledger_backend/internal/dto"
	"github.com/bizledger/bizledger_backend/internal/projection"
)

// productService implements the ProductSvcFacade interface
type productService struct {
	BaseService
	productRepo portsrepo.ProductRepository
	projection  projection.Store
}

// NewProductService creates a new product service.
func NewProductService(repo portsrepo.ProductRepository, proj projection.Store) portssvc.ProductSvcFacade {
	return &productService{productRepo: repo, projection: proj}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	productID := req.ProductID
	if productID == "" {
		productID = uuid.NewString()
	}

	product := domain.Product{
		ProductID:     productID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save product", slog.String("product_id", productID))
		}
		return nil, err
	}

	s.updateProjection(ctx, product)
	s.LogInfo(ctx, "Product created successfully", slog.String("product_id", productID))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find product by ID", slog.String("product_id", productID))
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, err
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	// Existing invoices keep their line item snapshots; edits here never
	// propagate backwards.
	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = req.Price
	product.StockQuantity = req.StockQuantity

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product", slog.String("product_id", productID))
		return nil, err
	}

	s.updateProjection(ctx, *product)
	s.LogInfo(ctx, "Product updated successfully", slog.String("product_id", productID))
	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete product", slog.String("product_id", productID))
		}
		return err
	}

	if err := s.projection.DeleteProduct(ctx, productID); err != nil {
		s.LogWarn(ctx, "Failed to remove product from projection", slog.String("product_id", productID), slog.String("error", err.Error()))
	}
	s.LogInfo(ctx, "Product deleted successfully", slog.String("product_id", productID))
	return nil
}

func (s *productService) updateProjection(ctx context.Context, product domain.Product) {
	if err := s.projection.PutProduct(ctx, product); err != nil {
		s.LogWarn(ctx, "Failed to update product projection", slog.String("product_id", product.ProductID), slog.String("error", err.Error()))
	}
}
