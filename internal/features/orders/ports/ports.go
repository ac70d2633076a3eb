package ports

import (
	"context"

	catalogdomain "fundashop-api/internal/features/catalog/domain"
	"fundashop-api/internal/features/orders/domain"
)

// CustomerInput is the customer block of an order request.
type CustomerInput struct {
	FullName   string
	Email      string
	Phone      string
	Department string
	Address    string
}

// ShippingInput is the shipping block of an order request.
type ShippingInput struct {
	Method string
	// Cost is nil when the client omitted it; home delivery then uses the
	// configured flat fee.
	Cost *float64
}

// PaymentInput is the payment block of an order request.
type PaymentInput struct {
	Method string
}

// ItemInput is the item block of an order request. Price and name are
// overridden by the catalog when the SKU matches an active product.
type ItemInput struct {
	SKU       string
	Name      string
	Image     string
	Quantity  int
	UnitPrice float64
}

// CreateOrderInput carries a validated order submission. Nil blocks mean the
// client omitted them, which fails validation.
type CreateOrderInput struct {
	Customer *CustomerInput
	Shipping *ShippingInput
	Payment  *PaymentInput
	Item     *ItemInput
	Notes    string
}

// CreateOrderResult is what the client needs to continue checkout.
type CreateOrderResult struct {
	OrderID       string
	PaymentMethod domain.PaymentMethod
	PaymentStatus domain.PaymentStatus
	OrderStatus   domain.OrderStatus
	Total         float64
	// PaymentURL is empty for bank transfers or when no preference exists yet.
	PaymentURL string
}

// NotificationResult reports how a webhook notification was handled.
type NotificationResult struct {
	// Ignored is true for events the service acknowledged without reconciling.
	Ignored bool
	// Reason explains why a notification was ignored.
	Reason string
	// Order is the reconciled order, nil when ignored.
	Order *domain.Order
}

// OrderService defines the primary port for the order lifecycle.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	HandleNotification(ctx context.Context, topic, paymentID string) (*NotificationResult, error)
}

// OrderRepository defines the secondary port for order storage.
type OrderRepository interface {
	// Create persists a new order; returns domain.ErrOrderIDTaken when the
	// identifier is already in use.
	Create(ctx context.Context, order *domain.Order) error
	// Update overwrites an existing order (last write wins).
	Update(ctx context.Context, order *domain.Order) error
	// FindByOrderID returns the order, or nil when unknown.
	FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
}

// PaymentGateway defines the secondary port for the payment provider.
type PaymentGateway interface {
	// CreatePreference opens a gateway checkout session for the order.
	CreatePreference(order *domain.Order) (*domain.CheckoutPreference, error)
	// GetPayment fetches the canonical payment record by gateway payment id.
	GetPayment(paymentID string) (*domain.PaymentRecord, error)
}

// ProductCatalog is the slice of the catalog the order lifecycle needs to
// override client-submitted item data.
type ProductCatalog interface {
	FindActiveBySKU(ctx context.Context, sku string) (*catalogdomain.Product, error)
}
