package service

import (
	"context"
	"fmt"
	"sort"

	"fundashop-api/internal/features/catalog/domain"
	"fundashop-api/internal/features/catalog/ports"

	"github.com/google/uuid"
)

// ProductServiceImpl implements ports.ProductService.
type ProductServiceImpl struct {
	repo ports.ProductRepository
}

// NewProductService creates a new ProductServiceImpl.
func NewProductService(repo ports.ProductRepository) *ProductServiceImpl {
	return &ProductServiceImpl{
		repo: repo,
	}
}

// CreateProduct validates, sanitizes and persists a new catalog product.
func (s *ProductServiceImpl) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	product, err := domain.NewProduct(
		uuid.NewString(),
		input.Name,
		input.SKU,
		input.Description,
		input.Image,
		input.Price,
		input.Stock,
		active,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("service: failed to create product: %w", err)
	}

	return product, nil
}

// ListActive returns active products, newest first.
func (s *ProductServiceImpl) ListActive(ctx context.Context) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}

	active := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Active {
			active = append(active, p)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	return active, nil
}

// FindActiveBySKU returns the active product matching a client-supplied SKU,
// or nil when the SKU is empty, unknown or inactive. The order lifecycle uses
// this lookup to override client-submitted prices.
func (s *ProductServiceImpl) FindActiveBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	normalized := domain.NormalizeSKU(sku)
	if normalized == "" {
		return nil, nil
	}

	product, err := s.repo.FindBySKU(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find product: %w", err)
	}

	if product == nil || !product.Active {
		return nil, nil
	}

	return product, nil
}
