package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fundashop-api/internal/core/config"
	"fundashop-api/internal/core/httpclient"
	"fundashop-api/internal/features/orders/domain"
)

// MercadoPagoAdapter implements the PaymentGateway port using the Mercado
// Pago Checkout Pro REST API.
type MercadoPagoAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the gateway credentials and endpoints.
	config config.MercadoPagoConfig
	// currency is the currency code attached to preference line items.
	currency string
}

// NewMercadoPagoAdapter creates a new instance of MercadoPagoAdapter.
func NewMercadoPagoAdapter(cfg config.MercadoPagoConfig, currency string) *MercadoPagoAdapter {
	return &MercadoPagoAdapter{
		client:   httpclient.NewClient(10 * time.Second),
		config:   cfg,
		currency: currency,
	}
}

// CreatePreference opens a checkout session for the order and returns its id
// and redirect URL. Back-urls are only attached when the configured public
// frontend URL is a non-loopback http(s) address; the gateway rejects
// localhost return URLs.
func (a *MercadoPagoAdapter) CreatePreference(order *domain.Order) (*domain.CheckoutPreference, error) {
	payload := mpPreferenceRequest{
		ExternalReference: order.OrderID,
		Items: []mpPreferenceItem{
			{
				Title:       order.Item.Name,
				Description: fmt.Sprintf("SKU: %s", order.Item.SKU),
				Quantity:    order.Item.Quantity,
				CurrencyID:  a.currency,
				UnitPrice:   order.Item.UnitPrice,
			},
		},
		Payer: mpPayer{
			Name:  order.Customer.FullName,
			Email: order.Customer.Email,
		},
	}

	if canUseBackURLs(a.config.PublicFrontendURL) {
		base := a.config.PublicFrontendURL
		payload.BackURLs = &mpBackURLs{
			Success: base + "/checkout.html?status=success",
			Failure: base + "/checkout.html?status=failure",
			Pending: base + "/checkout.html?status=pending",
		}
		payload.AutoReturn = "approved"
	}

	if order.Shipping.Cost > 0 {
		payload.Items = append(payload.Items, mpPreferenceItem{
			Title:       "Shipping",
			Description: "Shipping cost",
			Quantity:    1,
			CurrencyID:  a.currency,
			UnitPrice:   order.Shipping.Cost,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preference: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, a.config.BaseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("gateway rejected the preference (status %d): %s", resp.StatusCode, detail)
	}

	var pref mpPreferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("failed to decode preference response: %w", err)
	}

	return &domain.CheckoutPreference{
		ID:         pref.ID,
		PaymentURL: pref.InitPoint,
	}, nil
}

// GetPayment fetches the canonical payment record by gateway payment id.
func (a *MercadoPagoAdapter) GetPayment(paymentID string) (*domain.PaymentRecord, error) {
	req, err := http.NewRequest(http.MethodGet, a.config.BaseURL+"/v1/payments/"+url.PathEscape(paymentID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.config.AccessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("could not fetch payment %s (status %d): %s", paymentID, resp.StatusCode, detail)
	}

	var payment mpPayment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	id := payment.ID.String()
	if id == "" {
		id = paymentID
	}

	return &domain.PaymentRecord{
		ID:                id,
		Status:            payment.Status,
		StatusDetail:      payment.StatusDetail,
		ExternalReference: payment.ExternalReference,
	}, nil
}

// canUseBackURLs reports whether the gateway will accept the configured
// frontend URL as a return address.
func canUseBackURLs(base string) bool {
	parsed, err := url.Parse(base)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	switch parsed.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return false
	}
	return parsed.Hostname() != ""
}

// internal structs for the gateway wire format

// mpPreferenceRequest is the Checkout Pro preference creation payload.
type mpPreferenceRequest struct {
	ExternalReference string             `json:"external_reference"`
	Items             []mpPreferenceItem `json:"items"`
	Payer             mpPayer            `json:"payer"`
	BackURLs          *mpBackURLs        `json:"back_urls,omitempty"`
	AutoReturn        string             `json:"auto_return,omitempty"`
}

// mpPreferenceItem is a checkout line item.
type mpPreferenceItem struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	CurrencyID  string  `json:"currency_id"`
	UnitPrice   float64 `json:"unit_price"`
}

// mpPayer identifies the paying customer.
type mpPayer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// mpBackURLs are the post-checkout return addresses.
type mpBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// mpPreferenceResponse is the subset of the preference response we use.
type mpPreferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// mpPayment is the subset of the payment detail response we use.
// The gateway returns numeric payment ids.
type mpPayment struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	StatusDetail      string      `json:"status_detail"`
	ExternalReference string      `json:"external_reference"`
}
