package ports

import (
	"context"

	"fundashop-api/internal/features/catalog/domain"
)

// CreateProductInput is the typed product-creation request.
type CreateProductInput struct {
	Name        string
	SKU         string
	Description string
	Image       string
	Price       float64
	Stock       int
	// Active is nil when the client did not send the flag; it defaults to true.
	Active *bool
}

// ProductService defines the primary port for catalog operations.
type ProductService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	FindActiveBySKU(ctx context.Context, sku string) (*domain.Product, error)
}

// ProductRepository defines the secondary port for product storage.
type ProductRepository interface {
	// Create persists a product; returns domain.ErrSKUTaken on a duplicate SKU.
	Create(ctx context.Context, product *domain.Product) error
	// FindBySKU returns the product for a normalized SKU, or nil when absent.
	FindBySKU(ctx context.Context, sku string) (*domain.Product, error)
	// List returns every stored product.
	List(ctx context.Context) ([]domain.Product, error)
}
