package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("REDIS_URL")
	os.Unsetenv("SHIPPING_FLAT_FEE")

	os.Setenv("MP_ACCESS_TOKEN", "TEST-token")
	defer os.Unsetenv("MP_ACCESS_TOKEN")

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "https://api.mercadopago.com", cfg.MercadoPago.BaseURL)
	assert.Equal(t, "FS", cfg.Orders.IDPrefix)
	assert.Equal(t, 120.0, cfg.Orders.ShippingFlatFee)
	assert.Equal(t, "UYU", cfg.Orders.Currency)
	assert.Equal(t, "storefront.orders", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Brokers)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("REDIS_URL", "redis://cache.internal:6380/1")
	os.Setenv("MP_ACCESS_TOKEN", "APP_USR-123")
	os.Setenv("MP_BASE_URL", "https://gateway.test")
	os.Setenv("PUBLIC_FRONTEND_URL", "https://shop.example.com")
	os.Setenv("SHIPPING_FLAT_FEE", "150")
	os.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("REDIS_URL")
		os.Unsetenv("MP_ACCESS_TOKEN")
		os.Unsetenv("MP_BASE_URL")
		os.Unsetenv("PUBLIC_FRONTEND_URL")
		os.Unsetenv("SHIPPING_FLAT_FEE")
		os.Unsetenv("KAFKA_BROKERS")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "redis://cache.internal:6380/1", cfg.RedisURL)
	assert.Equal(t, "APP_USR-123", cfg.MercadoPago.AccessToken)
	assert.Equal(t, "https://gateway.test", cfg.MercadoPago.BaseURL)
	assert.Equal(t, "https://shop.example.com", cfg.MercadoPago.PublicFrontendURL)
	assert.Equal(t, 150.0, cfg.Orders.ShippingFlatFee)
	assert.Equal(t, "kafka-1:9092,kafka-2:9092", cfg.Kafka.Brokers)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
SERVER_PORT=7070
MP_ACCESS_TOKEN=TEST-file-token
ORDER_ID_PREFIX=QA
`)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), content, 0o600))

	os.Unsetenv("APP_ENV")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("MP_ACCESS_TOKEN")
	os.Unsetenv("ORDER_ID_PREFIX")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "TEST-file-token", cfg.MercadoPago.AccessToken)
	assert.Equal(t, "QA", cfg.Orders.IDPrefix)
}

// TestLoad_MissingRequired verifies that a missing gateway credential fails loading.
func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("MP_ACCESS_TOKEN")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MP_ACCESS_TOKEN")
}
