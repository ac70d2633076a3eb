package adapters

import (
	"context"
	"testing"
	"time"

	"fundashop-api/internal/core/store"
	"fundashop-api/internal/features/orders/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderRepo(t *testing.T) *RedisOrderRepository {
	t.Helper()

	mr := miniredis.RunT(t)
	adapter, err := store.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisOrderRepository(adapter)
}

func sampleOrder(orderID string) *domain.Order {
	return &domain.Order{
		OrderID: orderID,
		Item: domain.OrderItem{
			SKU:       "FS-IP13-TR",
			Name:      "Clear Case iPhone 13",
			Quantity:  2,
			UnitPrice: 450,
			Subtotal:  900,
		},
		Customer: domain.Customer{
			FullName: "Ana Perez",
			Email:    "ana@example.com",
		},
		Shipping: domain.Shipping{
			Method: domain.ShippingHomeDelivery,
			Cost:   120,
		},
		PaymentMethod: domain.PaymentMethodGateway,
		PaymentStatus: domain.PaymentStatusPending,
		OrderStatus:   domain.OrderStatusPaymentPending,
		Totals: domain.Totals{
			Subtotal: 900,
			Shipping: 120,
			Total:    1020,
			Currency: "UYU",
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestRedisOrderRepository_CreateAndFind(t *testing.T) {
	repo := newTestOrderRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleOrder("FS-20240709-1234")))

	found, err := repo.FindByOrderID(ctx, "FS-20240709-1234")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 1020.0, found.Totals.Total)
	assert.Equal(t, domain.OrderStatusPaymentPending, found.OrderStatus)
}

func TestRedisOrderRepository_CreateCollision(t *testing.T) {
	repo := newTestOrderRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleOrder("FS-20240709-1234")))

	err := repo.Create(ctx, sampleOrder("FS-20240709-1234"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOrderIDTaken)
}

func TestRedisOrderRepository_Update(t *testing.T) {
	repo := newTestOrderRepo(t)
	ctx := context.Background()

	order := sampleOrder("FS-20240709-1234")
	require.NoError(t, repo.Create(ctx, order))

	order.PaymentStatus = domain.PaymentStatusApproved
	order.OrderStatus = domain.OrderStatusPaid
	order.Gateway.PaymentID = "99887766"
	require.NoError(t, repo.Update(ctx, order))

	found, err := repo.FindByOrderID(ctx, "FS-20240709-1234")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, domain.PaymentStatusApproved, found.PaymentStatus)
	assert.Equal(t, domain.OrderStatusPaid, found.OrderStatus)
	assert.Equal(t, "99887766", found.Gateway.PaymentID)
}

func TestRedisOrderRepository_FindByOrderID_NotFound(t *testing.T) {
	repo := newTestOrderRepo(t)

	found, err := repo.FindByOrderID(context.Background(), "FS-00000000-0000")
	require.NoError(t, err)
	assert.Nil(t, found)
}
