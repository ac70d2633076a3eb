package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fundashop-api/internal/core/store"
	"fundashop-api/internal/features/orders/domain"
)

const orderKeyPrefix = "order:id:"

// RedisOrderRepository implements ports.OrderRepository on the KV store.
// Orders are JSON documents keyed by their external identifier.
type RedisOrderRepository struct {
	store store.Store
}

// NewRedisOrderRepository creates a new RedisOrderRepository.
func NewRedisOrderRepository(s store.Store) *RedisOrderRepository {
	return &RedisOrderRepository{
		store: s,
	}
}

// Create persists a new order. The SETNX-backed Create is the uniqueness
// constraint behind order identifiers; collisions surface as ErrOrderIDTaken.
func (r *RedisOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := r.store.Create(ctx, orderKeyPrefix+order.OrderID, data); err != nil {
		if errors.Is(err, store.ErrKeyExists) {
			return fmt.Errorf("%w: %s", domain.ErrOrderIDTaken, order.OrderID)
		}
		return fmt.Errorf("failed to store order: %w", err)
	}

	return nil
}

// Update overwrites the stored order. Concurrent webhook deliveries are
// last-write-wins.
func (r *RedisOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	if err := r.store.Set(ctx, orderKeyPrefix+order.OrderID, data); err != nil {
		return fmt.Errorf("failed to update order %s: %w", order.OrderID, err)
	}

	return nil
}

// FindByOrderID returns the stored order, or nil when unknown.
func (r *RedisOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	data, err := r.store.Get(ctx, orderKeyPrefix+orderID)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order %s: %w", orderID, err)
	}

	return &order, nil
}
