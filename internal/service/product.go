package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/msomdec/product-catalog/internal/domain"
)

// ProductService implements catalog CRUD on top of a ProductRepository.
type ProductService struct {
	products domain.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(products domain.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create stores a new product. Fields are stored as given.
func (s *ProductService) Create(ctx context.Context, name string, price float64, description string) (*domain.Product, error) {
	p := &domain.Product{
		Name:        name,
		Price:       price,
		Description: description,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns a single product or domain.ErrNotFound.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Update applies patch to the product with the given id and returns the
// result. Returns domain.ErrNotFound when no such product exists; a missing
// product is never created.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if patch.Empty() {
		return s.products.GetByID(ctx, id)
	}
	return s.products.Update(ctx, id, patch)
}

// Delete removes the product if it exists. Deleting an absent product succeeds.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	removed, err := s.products.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !removed {
		slog.Debug("delete of absent product", "product_id", id)
	}
	return nil
}
