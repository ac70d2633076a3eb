package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fundashop-api/internal/features/orders/domain"
	"fundashop-api/internal/features/orders/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaymentWebhook(t *testing.T) {
	t.Run("QueryParameters", func(t *testing.T) {
		mockService := new(MockOrderService)
		app := setupOrderApp(mockService)

		mockService.On("HandleNotification", mock.Anything, "payment", "99887766").Return(&ports.NotificationResult{
			Order: &domain.Order{
				OrderID:       "FS-20240709-1234",
				PaymentStatus: domain.PaymentStatusApproved,
				OrderStatus:   domain.OrderStatusPaid,
			},
		}, nil).Once()

		req := httptest.NewRequest("POST", "/payment-webhook?type=payment&data.id=99887766", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["ok"])
		mockService.AssertExpectations(t)
	})

	t.Run("BodyFallback", func(t *testing.T) {
		mockService := new(MockOrderService)
		app := setupOrderApp(mockService)

		mockService.On("HandleNotification", mock.Anything, "payment", "99887766").Return(&ports.NotificationResult{
			Order: &domain.Order{OrderID: "FS-20240709-1234"},
		}, nil).Once()

		payload := []byte(`{"type":"payment","data":{"id":99887766}}`)
		req := httptest.NewRequest("POST", "/payment-webhook", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("TopicFieldAndTopLevelID", func(t *testing.T) {
		mockService := new(MockOrderService)
		app := setupOrderApp(mockService)

		mockService.On("HandleNotification", mock.Anything, "payment", "555").Return(&ports.NotificationResult{
			Order: &domain.Order{OrderID: "FS-20240709-1234"},
		}, nil).Once()

		payload := []byte(`{"topic":"payment","id":555}`)
		req := httptest.NewRequest("POST", "/payment-webhook", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("IgnoredEventAcknowledged", func(t *testing.T) {
		mockService := new(MockOrderService)
		app := setupOrderApp(mockService)

		mockService.On("HandleNotification", mock.Anything, "merchant_order", "777").Return(&ports.NotificationResult{
			Ignored: true,
			Reason:  "not a payment event",
		}, nil).Once()

		req := httptest.NewRequest("POST", "/payment-webhook?topic=merchant_order&data.id=777", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["ignored"])
		assert.Equal(t, "not a payment event", body["reason"])
	})

	t.Run("MalformedBodyStillUsesQuery", func(t *testing.T) {
		mockService := new(MockOrderService)
		app := setupOrderApp(mockService)

		mockService.On("HandleNotification", mock.Anything, "payment", "888").Return(&ports.NotificationResult{
			Order: &domain.Order{OrderID: "FS-20240709-1234"},
		}, nil).Once()

		req := httptest.NewRequest("POST", "/payment-webhook?type=payment&data.id=888", bytes.NewReader([]byte(`not json`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("ProcessingFailure", func(t *testing.T) {
		mockService := new(MockOrderService)
		app := setupOrderApp(mockService)

		mockService.On("HandleNotification", mock.Anything, "payment", "999").
			Return(nil, errors.New("gateway timeout")).Once()

		req := httptest.NewRequest("POST", "/payment-webhook?type=payment&data.id=999", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Could not process the notification", body.Error)
		assert.Contains(t, body.Detail, "gateway timeout")
	})
}
