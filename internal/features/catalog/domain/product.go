package domain

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	// ErrMissingProductFields is returned when name or sku is absent.
	ErrMissingProductFields = errors.New("name and sku are required")
	// ErrSKUTaken is returned when a product with the same SKU already exists.
	ErrSKUTaken = errors.New("sku already taken")
)

// Product is a catalog entry. Its stored price and name are authoritative over
// anything a client submits with an order.
type Product struct {
	// ID is the internal product identifier.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// SKU is the unique stock keeping unit, stored trimmed and uppercased.
	SKU string `json:"sku"`
	// Description is optional display text.
	Description string `json:"description"`
	// Image is the product image URL.
	Image string `json:"image"`
	// Price is the unit price, never negative.
	Price float64 `json:"price"`
	// Stock is the available quantity, never negative.
	Stock int `json:"stock"`
	// Active controls whether the product is listed and purchasable.
	Active bool `json:"active"`
	// CreatedAt is when the product was created.
	CreatedAt time.Time `json:"createdAt"`
}

// NewProduct builds and sanitizes a product. Name and SKU are required;
// everything else defaults. Price and stock are coerced to non-negative values
// rather than rejected.
func NewProduct(id, name, sku, description, image string, price float64, stock int, active bool) (*Product, error) {
	name = strings.TrimSpace(name)
	sku = NormalizeSKU(sku)

	if name == "" || sku == "" {
		return nil, ErrMissingProductFields
	}

	return &Product{
		ID:          id,
		Name:        name,
		SKU:         sku,
		Description: strings.TrimSpace(description),
		Image:       strings.TrimSpace(image),
		Price:       nonNegative(price),
		Stock:       max(stock, 0),
		Active:      active,
		CreatedAt:   time.Now(),
	}, nil
}

// NormalizeSKU trims and uppercases a SKU so lookups are case-insensitive.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
