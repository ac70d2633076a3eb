package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fundashop-api/internal/core/events"
	"fundashop-api/internal/core/logger"
	"fundashop-api/internal/features/orders/domain"
	"fundashop-api/internal/features/orders/ports"

	"go.uber.org/zap"
)

// ErrMissingOrderBlocks is returned when the customer, shipping, payment or
// item block is absent from an order submission.
var ErrMissingOrderBlocks = errors.New("missing required blocks: customer, shipping, payment or item")

// ErrOrderNotFound is returned when the order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderIDConflict is returned when identifier generation kept colliding
// with stored orders. The whole creation call is safe to retry.
var ErrOrderIDConflict = errors.New("could not allocate a unique order id")

// Fallbacks applied when the client submits no usable item data.
const (
	fallbackItemName = "Funda Shop Product"
	fallbackSKU      = "NO-SKU"
)

// maxIDAttempts bounds identifier regeneration on store collisions.
const maxIDAttempts = 3

// webhookPaymentTopic is the only notification topic that triggers reconciliation.
const webhookPaymentTopic = "payment"

// OrderService orchestrates the order lifecycle: creation with authoritative
// pricing, gateway checkout preferences, and webhook payment reconciliation.
type OrderService struct {
	repo      ports.OrderRepository
	catalog   ports.ProductCatalog
	gateway   ports.PaymentGateway
	publisher events.Publisher
	ids       *domain.IDGenerator

	shippingFlatFee float64
	currency        string
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	repo ports.OrderRepository,
	catalog ports.ProductCatalog,
	gateway ports.PaymentGateway,
	publisher events.Publisher,
	ids *domain.IDGenerator,
	shippingFlatFee float64,
	currency string,
) *OrderService {
	return &OrderService{
		repo:            repo,
		catalog:         catalog,
		gateway:         gateway,
		publisher:       publisher,
		ids:             ids,
		shippingFlatFee: shippingFlatFee,
		currency:        currency,
	}
}

// CreateOrder validates the submission, prices it against the catalog,
// persists it and, for the online gateway method, opens a checkout preference.
// A gateway failure after persistence leaves the order stored in
// payment_pending with no payment link; payment can be retried later.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*ports.CreateOrderResult, error) {
	if input.Customer == nil || input.Shipping == nil || input.Payment == nil || input.Item == nil {
		return nil, ErrMissingOrderBlocks
	}

	item, err := s.resolveItem(ctx, input.Item)
	if err != nil {
		return nil, err
	}

	shippingMethod := domain.ParseShippingMethod(input.Shipping.Method)
	paymentMethod := domain.ParsePaymentMethod(input.Payment.Method)

	quote := domain.ComputeQuote(item.UnitPrice, input.Item.Quantity, shippingMethod, input.Shipping.Cost, s.shippingFlatFee)
	item.Quantity = domain.ClampQuantity(input.Item.Quantity)
	item.Subtotal = quote.Subtotal

	now := time.Now()
	order := &domain.Order{
		Item: item,
		Customer: domain.Customer{
			FullName:   strings.TrimSpace(input.Customer.FullName),
			Email:      strings.ToLower(strings.TrimSpace(input.Customer.Email)),
			Phone:      strings.TrimSpace(input.Customer.Phone),
			Department: strings.TrimSpace(input.Customer.Department),
			Address:    strings.TrimSpace(input.Customer.Address),
		},
		Notes: strings.TrimSpace(input.Notes),
		Shipping: domain.Shipping{
			Method: shippingMethod,
			Cost:   quote.ShippingCost,
		},
		PaymentMethod: paymentMethod,
		PaymentStatus: domain.PaymentStatusPending,
		OrderStatus:   domain.OrderStatusPaymentPending,
		Totals: domain.Totals{
			Subtotal: quote.Subtotal,
			Shipping: quote.ShippingCost,
			Total:    quote.Total,
			Currency: s.currency,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.persistWithFreshID(ctx, order); err != nil {
		return nil, err
	}

	if order.PaymentMethod == domain.PaymentMethodGateway {
		preference, err := s.gateway.CreatePreference(order)
		if err != nil {
			// The order stays persisted in payment_pending; a later
			// notification can still reconcile it.
			return nil, fmt.Errorf("failed to create payment preference for %s: %w", order.OrderID, err)
		}

		order.Gateway.PreferenceID = preference.ID
		order.Gateway.PaymentURL = preference.PaymentURL
		order.UpdatedAt = time.Now()

		if err := s.repo.Update(ctx, order); err != nil {
			return nil, fmt.Errorf("failed to store payment preference for %s: %w", order.OrderID, err)
		}
	}

	s.publishCreated(order)

	return &ports.CreateOrderResult{
		OrderID:       order.OrderID,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		OrderStatus:   order.OrderStatus,
		Total:         order.Totals.Total,
		PaymentURL:    order.Gateway.PaymentURL,
	}, nil
}

// GetOrder returns the full order record.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// HandleNotification reconciles an asynchronous payment notification.
// Irrelevant topics, payments without an external reference, and unknown
// orders are acknowledged as no-ops so the provider stops retrying; real
// failures return an error so the provider's at-least-once retry redelivers.
// Re-applying the same mapped status is a no-op in effect, so duplicate and
// concurrent deliveries are safe.
func (s *OrderService) HandleNotification(ctx context.Context, topic, paymentID string) (*ports.NotificationResult, error) {
	if topic != webhookPaymentTopic || strings.TrimSpace(paymentID) == "" {
		return &ports.NotificationResult{Ignored: true, Reason: "not a payment event"}, nil
	}

	payment, err := s.gateway.GetPayment(paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment %s: %w", paymentID, err)
	}

	reference := strings.TrimSpace(payment.ExternalReference)
	if reference == "" {
		return &ports.NotificationResult{Ignored: true, Reason: "payment has no external reference"}, nil
	}

	order, err := s.repo.FindByOrderID(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", reference, err)
	}
	if order == nil {
		return &ports.NotificationResult{Ignored: true, Reason: "order not found"}, nil
	}

	paymentStatus, orderStatus := domain.MapProviderStatus(payment.Status)
	order.PaymentStatus = paymentStatus
	order.OrderStatus = orderStatus
	order.Gateway.PaymentID = payment.ID
	if order.Gateway.PaymentID == "" {
		order.Gateway.PaymentID = paymentID
	}
	order.Gateway.StatusDetail = payment.StatusDetail
	order.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", order.OrderID, err)
	}

	s.publishStatusChanged(order)

	return &ports.NotificationResult{Order: order}, nil
}

// resolveItem applies the anti-tampering rule: an active catalog product
// matching the normalized SKU overrides client-submitted price, name, image
// and product reference.
func (s *OrderService) resolveItem(ctx context.Context, input *ports.ItemInput) (domain.OrderItem, error) {
	sku := strings.ToUpper(strings.TrimSpace(input.SKU))

	item := domain.OrderItem{
		SKU:       sku,
		Name:      strings.TrimSpace(input.Name),
		Image:     strings.TrimSpace(input.Image),
		UnitPrice: domain.NonNegativeAmount(input.UnitPrice, 0),
	}

	if sku != "" {
		product, err := s.catalog.FindActiveBySKU(ctx, sku)
		if err != nil {
			return domain.OrderItem{}, fmt.Errorf("failed to look up product %s: %w", sku, err)
		}
		if product != nil {
			item.ProductID = product.ID
			item.SKU = product.SKU
			item.Name = product.Name
			item.Image = product.Image
			item.UnitPrice = domain.NonNegativeAmount(product.Price, 0)
		}
	}

	if item.SKU == "" {
		item.SKU = fallbackSKU
	}
	if item.Name == "" {
		item.Name = fallbackItemName
	}

	return item, nil
}

func (s *OrderService) persistWithFreshID(ctx context.Context, order *domain.Order) error {
	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		order.OrderID = s.ids.Next()

		lastErr = s.repo.Create(ctx, order)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, domain.ErrOrderIDTaken) {
			return fmt.Errorf("failed to persist order: %w", lastErr)
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrOrderIDConflict, maxIDAttempts, lastErr)
}

func (s *OrderService) publishCreated(order *domain.Order) {
	payload := domain.OrderCreatedPayload{
		OrderID:       order.OrderID,
		SKU:           order.Item.SKU,
		Quantity:      order.Item.Quantity,
		Total:         order.Totals.Total,
		Currency:      order.Totals.Currency,
		PaymentMethod: order.PaymentMethod,
	}

	value, err := domain.NewEnvelope(domain.EventOrderCreated, order.OrderID, payload)
	if err != nil {
		logger.Get().Warn("Failed to build order created event", zap.String("order_id", order.OrderID), zap.Error(err))
		return
	}

	s.publisher.Publish([]byte(order.OrderID), value)
}

func (s *OrderService) publishStatusChanged(order *domain.Order) {
	payload := domain.OrderStatusChangedPayload{
		OrderID:       order.OrderID,
		PaymentStatus: order.PaymentStatus,
		OrderStatus:   order.OrderStatus,
		StatusDetail:  order.Gateway.StatusDetail,
	}

	value, err := domain.NewEnvelope(domain.EventOrderStatusChanged, order.OrderID, payload)
	if err != nil {
		logger.Get().Warn("Failed to build status changed event", zap.String("order_id", order.OrderID), zap.Error(err))
		return
	}

	s.publisher.Publish([]byte(order.OrderID), value)
}
