package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fundashop-api/internal/core/store"
	"fundashop-api/internal/features/catalog/domain"
)

const (
	productKeyPrefix = "product:sku:"
	productIndexKey  = "products:index"
)

// RedisProductRepository implements ports.ProductRepository on the KV store.
// Products are JSON documents keyed by SKU, with a set index for listing.
type RedisProductRepository struct {
	store store.Store
}

// NewRedisProductRepository creates a new RedisProductRepository.
func NewRedisProductRepository(s store.Store) *RedisProductRepository {
	return &RedisProductRepository{
		store: s,
	}
}

// Create persists a product. The SETNX-backed Create enforces SKU uniqueness.
func (r *RedisProductRepository) Create(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	if err := r.store.Create(ctx, productKeyPrefix+product.SKU, data); err != nil {
		if errors.Is(err, store.ErrKeyExists) {
			return fmt.Errorf("%w: %s", domain.ErrSKUTaken, product.SKU)
		}
		return fmt.Errorf("failed to store product: %w", err)
	}

	if err := r.store.AddToIndex(ctx, productIndexKey, product.SKU); err != nil {
		return fmt.Errorf("failed to index product: %w", err)
	}

	return nil
}

// FindBySKU returns the stored product, or nil when the SKU is unknown.
func (r *RedisProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	data, err := r.store.Get(ctx, productKeyPrefix+sku)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product %s: %w", sku, err)
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product %s: %w", sku, err)
	}

	return &product, nil
}

// List returns every stored product by walking the SKU index.
func (r *RedisProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	skus, err := r.store.IndexMembers(ctx, productIndexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]domain.Product, 0, len(skus))
	for _, sku := range skus {
		product, err := r.FindBySKU(ctx, sku)
		if err != nil {
			return nil, err
		}
		if product != nil {
			products = append(products, *product)
		}
	}

	return products, nil
}
