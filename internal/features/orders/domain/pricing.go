package domain

import "math"

const (
	minQuantity = 1
	maxQuantity = 10
)

// Quote holds the monetary breakdown computed for an order.
type Quote struct {
	Subtotal     float64
	ShippingCost float64
	Total        float64
}

// ComputeQuote derives an order's totals from the unit price, quantity and
// shipping selection. Inputs are sanitized rather than rejected: quantities are
// clamped to [1,10] and amounts coerced to non-negative finite numbers.
// clientCost is the shipping cost the client sent, nil when omitted; flatFee
// applies for home delivery when the client omitted the cost.
func ComputeQuote(unitPrice float64, quantity int, method ShippingMethod, clientCost *float64, flatFee float64) Quote {
	price := NonNegativeAmount(unitPrice, 0)
	qty := ClampQuantity(quantity)

	subtotal := price * float64(qty)

	var shipping float64
	if method == ShippingHomeDelivery {
		if clientCost == nil {
			shipping = NonNegativeAmount(flatFee, 0)
		} else {
			shipping = NonNegativeAmount(*clientCost, flatFee)
		}
	}

	return Quote{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        subtotal + shipping,
	}
}

// NonNegativeAmount coerces a monetary amount to a non-negative finite number,
// substituting fallback for NaN, infinities and negatives.
func NonNegativeAmount(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fallback
	}
	return v
}

// ClampQuantity restricts a purchase quantity to the allowed range.
func ClampQuantity(q int) int {
	if q < minQuantity {
		return minQuantity
	}
	if q > maxQuantity {
		return maxQuantity
	}
	return q
}
