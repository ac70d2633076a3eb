package domain

import "strings"

// MapProviderStatus maps a gateway payment status to the internal
// (PaymentStatus, OrderStatus) pair. The function is total: every input,
// including unknown or empty strings, maps to a defined fallback, so a new
// provider status can never break reconciliation.
func MapProviderStatus(status string) (PaymentStatus, OrderStatus) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved":
		return PaymentStatusApproved, OrderStatusPaid
	case "in_process":
		return PaymentStatusInProcess, OrderStatusPaymentPending
	case "rejected", "cancelled":
		return PaymentStatusRejected, OrderStatusPaymentFailed
	case "refunded", "charged_back":
		return PaymentStatusRefunded, OrderStatusCancelled
	default:
		return PaymentStatusPending, OrderStatusPaymentPending
	}
}
