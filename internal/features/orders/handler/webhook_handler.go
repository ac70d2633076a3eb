package handler

import (
	"encoding/json"
	"net/http"

	"fundashop-api/internal/core/logger"
	"fundashop-api/internal/core/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// webhookPayload mirrors the provider's notification body. Payment ids arrive
// as JSON numbers, so json.Number keeps them lossless.
type webhookPayload struct {
	Type  string      `json:"type"`
	Topic string      `json:"topic"`
	ID    json.Number `json:"id"`
	Data  struct {
		ID json.Number `json:"id"`
	} `json:"data"`
}

// PaymentWebhook handles POST /payment-webhook.
// The provider delivers notifications at least once and retries on any non-2xx
// response, so ignorable events must be acknowledged with 200 and only real
// processing failures may return 500.
// @Summary Payment provider webhook
// @Description Reconciles an asynchronous payment notification from the gateway.
// @Tags Orders
// @Accept json
// @Produce json
// @Param type query string false "Notification topic"
// @Param data.id query string false "Gateway payment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /payment-webhook [post]
func (h *OrderHandler) PaymentWebhook(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	// Topic and payment id may arrive in the query string, the body, or both.
	var body webhookPayload
	if err := c.BodyParser(&body); err != nil {
		// A malformed body alone is not a failure; the query string may still
		// carry everything needed.
		body = webhookPayload{}
	}

	topic := firstNonEmpty(c.Query("type"), c.Query("topic"), body.Type, body.Topic)
	paymentID := firstNonEmpty(c.Query("data.id"), body.Data.ID.String(), body.ID.String())

	result, err := h.service.HandleNotification(c.Context(), topic, paymentID)
	if err != nil {
		metrics.RecordOrderOperation("reconcile", false)

		logger.Get().Error("Failed to process payment notification",
			zap.String("topic", topic),
			zap.String("payment_id", paymentID),
			zap.String("ray_id", rayID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:  "Could not process the notification",
			Detail: err.Error(),
			RayID:  rayID,
		})
	}

	if result.Ignored {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"ok":      true,
			"ignored": true,
			"reason":  result.Reason,
		})
	}

	metrics.RecordOrderOperation("reconcile", true)

	logger.Get().Info("Payment notification reconciled",
		zap.String("order_id", result.Order.OrderID),
		zap.String("payment_status", string(result.Order.PaymentStatus)),
		zap.String("order_status", string(result.Order.OrderStatus)),
		zap.String("ray_id", rayID),
	)

	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
