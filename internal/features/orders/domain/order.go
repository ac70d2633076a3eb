package domain

import (
	"errors"
	"time"
)

// ShippingMethod selects how an order is delivered.
type ShippingMethod string

const (
	// ShippingHomeDelivery ships the order to the customer's address for a flat fee.
	ShippingHomeDelivery ShippingMethod = "home-delivery"
	// ShippingPickup has the customer collect the order; shipping cost is always 0.
	ShippingPickup ShippingMethod = "pickup"
)

// PaymentMethod selects how an order is paid.
type PaymentMethod string

const (
	// PaymentMethodGateway pays through the online checkout gateway.
	PaymentMethodGateway PaymentMethod = "online-gateway"
	// PaymentMethodBankTransfer pays by manual bank transfer; no gateway involved.
	PaymentMethodBankTransfer PaymentMethod = "bank-transfer"
)

// PaymentStatus is the provider-facing payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusInProcess PaymentStatus = "in_process"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusRejected  PaymentStatus = "rejected"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// OrderStatus is the business-facing state of an order.
type OrderStatus string

const (
	OrderStatusCreated        OrderStatus = "created"
	OrderStatusPaymentPending OrderStatus = "payment_pending"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusPaymentFailed  OrderStatus = "payment_failed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// ErrOrderIDTaken is returned by the repository when the generated order
// identifier collided with an existing order. Callers retry with a fresh one.
var ErrOrderIDTaken = errors.New("order id already taken")

// Order represents a customer order in the system.
type Order struct {
	// OrderID is the externally visible unique identifier (PREFIX-YYYYMMDD-RRRR).
	OrderID string `json:"orderId"`
	// Item is the purchased item snapshot, priced at order time.
	Item OrderItem `json:"item"`
	// Customer is the contact and delivery snapshot captured at order time.
	Customer Customer `json:"customer"`
	// Notes holds free-text instructions from the customer.
	Notes string `json:"notes"`
	// Shipping holds the selected delivery method and its cost.
	Shipping Shipping `json:"shipping"`
	// PaymentMethod is how the order is paid.
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	// PaymentStatus is the provider-facing payment state.
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	// OrderStatus is the business-facing order state.
	OrderStatus OrderStatus `json:"orderStatus"`
	// Totals holds the computed monetary totals.
	Totals Totals `json:"totals"`
	// Gateway holds payment-gateway metadata (preference, payment, redirect URL).
	Gateway GatewayInfo `json:"gateway"`
	// CreatedAt is when the order was submitted.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the order was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem is the snapshot of the purchased product.
type OrderItem struct {
	// ProductID references the catalog product, when the SKU matched one.
	ProductID string `json:"productId,omitempty"`
	// SKU is the stock keeping unit identifier.
	SKU string `json:"sku"`
	// Name is the product name at order time.
	Name string `json:"name"`
	// Image is the product image URL.
	Image string `json:"image"`
	// Quantity is the number of units purchased.
	Quantity int `json:"quantity"`
	// UnitPrice is the price per unit at order time.
	UnitPrice float64 `json:"unitPrice"`
	// Subtotal is UnitPrice times Quantity.
	Subtotal float64 `json:"subtotal"`
}

// Customer is the contact snapshot; there are no user accounts.
type Customer struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Address    string `json:"address"`
}

// Shipping holds the delivery selection.
type Shipping struct {
	Method ShippingMethod `json:"method"`
	Cost   float64        `json:"cost"`
}

// Totals holds the computed monetary totals of an order.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// GatewayInfo holds the payment-gateway metadata attached to an order.
type GatewayInfo struct {
	// PreferenceID identifies the gateway checkout session.
	PreferenceID string `json:"preferenceId"`
	// PaymentID identifies the gateway payment, once one exists.
	PaymentID string `json:"paymentId"`
	// PaymentURL is where the customer completes the payment.
	PaymentURL string `json:"paymentUrl"`
	// StatusDetail is the gateway's free-text sub-status (e.g., rejection reason).
	StatusDetail string `json:"statusDetail"`
}

// CheckoutPreference is a gateway-side checkout session.
type CheckoutPreference struct {
	ID         string
	PaymentURL string
}

// PaymentRecord is the canonical payment detail fetched from the gateway.
type PaymentRecord struct {
	ID                string
	Status            string
	StatusDetail      string
	ExternalReference string
}

// ParseShippingMethod maps a client-supplied method string to a known method.
// Anything that is not pickup is treated as home delivery.
func ParseShippingMethod(s string) ShippingMethod {
	if s == string(ShippingPickup) {
		return ShippingPickup
	}
	return ShippingHomeDelivery
}

// ParsePaymentMethod maps a client-supplied method string to a known method.
// Anything that is not a bank transfer goes through the online gateway.
func ParsePaymentMethod(s string) PaymentMethod {
	if s == string(PaymentMethodBankTransfer) {
		return PaymentMethodBankTransfer
	}
	return PaymentMethodGateway
}
