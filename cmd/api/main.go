package main

import (
	"context"
	"log"
	"time"

	"fundashop-api/internal/core/config"
	"fundashop-api/internal/core/events"
	"fundashop-api/internal/core/logger"
	"fundashop-api/internal/core/server"
	"fundashop-api/internal/core/store"
	catalogadapter "fundashop-api/internal/features/catalog/adapters"
	cataloghandler "fundashop-api/internal/features/catalog/handler"
	catalogservice "fundashop-api/internal/features/catalog/service"
	orderadapter "fundashop-api/internal/features/orders/adapters"
	orderdomain "fundashop-api/internal/features/orders/domain"
	orderhandler "fundashop-api/internal/features/orders/handler"
	orderservice "fundashop-api/internal/features/orders/service"

	"go.uber.org/zap"
)

// @title Funda Shop API
// @version 1.0
// @description Storefront backend: product catalog, order lifecycle and payment gateway integration.
// @contact.name API Support
// @contact.email support@fundashop.uy
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize the store and verify connectivity
	redisStore, err := store.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisStore.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisStore.Ping(pingCtx); err != nil {
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Order event publisher; a no-op when no brokers are configured
	publisher := events.NewFromConfig(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer publisher.Close()

	// Catalog feature
	productRepo := catalogadapter.NewRedisProductRepository(redisStore)
	productService := catalogservice.NewProductService(productRepo)
	productHandler := cataloghandler.NewProductHandler(productService)

	// Orders feature
	orderRepo := orderadapter.NewRedisOrderRepository(redisStore)
	gateway := orderadapter.NewMercadoPagoAdapter(cfg.MercadoPago, cfg.Orders.Currency)
	ids := orderdomain.NewIDGenerator(cfg.Orders.IDPrefix, nil, nil)

	orderSvc := orderservice.NewOrderService(
		orderRepo,
		productService,
		gateway,
		publisher,
		ids,
		cfg.Orders.ShippingFlatFee,
		cfg.Orders.Currency,
	)
	orderHdl := orderhandler.NewOrderHandler(orderSvc)

	srv := server.New(cfg)
	srv.RegisterHealth(redisStore)

	// Register Routes
	srv.App.Get("/products", productHandler.ListProducts)
	srv.App.Post("/products", productHandler.CreateProduct)
	srv.App.Post("/orders", orderHdl.CreateOrder)
	srv.App.Get("/orders/:orderId", orderHdl.GetOrder)
	srv.App.Post("/payment-webhook", orderHdl.PaymentWebhook)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
