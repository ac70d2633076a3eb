package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the order lifecycle.
const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// eventProducer identifies this service in event envelopes.
const eventProducer = "fundashop-api"

// Envelope wraps an order event payload with delivery metadata.
// CorrelationID is the orderId and doubles as the partition key so all
// events of one order keep their order.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id"`
	Payload       json.RawMessage `json:"payload"`
}

// OrderCreatedPayload describes a newly submitted order.
type OrderCreatedPayload struct {
	OrderID       string        `json:"order_id"`
	SKU           string        `json:"sku"`
	Quantity      int           `json:"quantity"`
	Total         float64       `json:"total"`
	Currency      string        `json:"currency"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// OrderStatusChangedPayload describes a reconciled payment status update.
type OrderStatusChangedPayload struct {
	OrderID       string        `json:"order_id"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	OrderStatus   OrderStatus   `json:"order_status"`
	StatusDetail  string        `json:"status_detail,omitempty"`
}

// NewEnvelope builds and serializes an event envelope around payload.
func NewEnvelope(eventType, orderID string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      eventProducer,
		CorrelationID: orderID,
		Payload:       raw,
	})
}
