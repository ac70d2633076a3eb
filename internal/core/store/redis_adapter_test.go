package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *RedisAdapter {
	t.Helper()

	mr := miniredis.RunT(t)
	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter
}

func TestRedisAdapter_GetSet(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	err := adapter.Set(ctx, "order:id:FS-20240101-1234", []byte(`{"orderId":"FS-20240101-1234"}`))
	assert.NoError(t, err)

	val, err := adapter.Get(ctx, "order:id:FS-20240101-1234")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"orderId":"FS-20240101-1234"}`), val)
}

func TestRedisAdapter_GetNotFound(t *testing.T) {
	adapter := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisAdapter_CreateEnforcesUniqueness(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	err := adapter.Create(ctx, "product:sku:FS-IP13-TR", []byte(`{"sku":"FS-IP13-TR"}`))
	require.NoError(t, err)

	err = adapter.Create(ctx, "product:sku:FS-IP13-TR", []byte(`{"sku":"FS-IP13-TR"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyExists)

	// The original value must survive the collision.
	val, err := adapter.Get(ctx, "product:sku:FS-IP13-TR")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"sku":"FS-IP13-TR"}`), val)
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", []byte("v")))
	assert.NoError(t, adapter.Delete(ctx, "k"))

	_, err := adapter.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisAdapter_Index(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.AddToIndex(ctx, "products:index", "SKU-A"))
	require.NoError(t, adapter.AddToIndex(ctx, "products:index", "SKU-B"))
	require.NoError(t, adapter.AddToIndex(ctx, "products:index", "SKU-A"))

	members, err := adapter.IndexMembers(ctx, "products:index")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"SKU-A", "SKU-B"}, members)
}

func TestRedisAdapter_IndexMembers_Empty(t *testing.T) {
	adapter := newTestAdapter(t)

	members, err := adapter.IndexMembers(context.Background(), "empty:index")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestRedisAdapter_Ping(t *testing.T) {
	adapter := newTestAdapter(t)
	assert.NoError(t, adapter.Ping(context.Background()))
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url")
	assert.Error(t, err)
}
