package handler

import (
	"errors"
	"net/http"

	"fundashop-api/internal/core/logger"
	"fundashop-api/internal/core/metrics"
	"fundashop-api/internal/features/orders/ports"
	"fundashop-api/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the order lifecycle service.
	service ports.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s ports.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// CreateOrderRequest is the order submission body. The nested blocks are
// pointers so a missing block is distinguishable from an empty one.
type CreateOrderRequest struct {
	Customer *CustomerPayload `json:"customer"`
	Shipping *ShippingPayload `json:"shipping"`
	Payment  *PaymentPayload  `json:"payment"`
	Item     *ItemPayload     `json:"item"`
	Notes    string           `json:"notes"`
}

// CustomerPayload carries the customer contact snapshot.
type CustomerPayload struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Address    string `json:"address"`
}

// ShippingPayload carries the delivery selection.
type ShippingPayload struct {
	Method string `json:"method"`
	// Cost is optional; home delivery falls back to the configured flat fee.
	Cost *float64 `json:"cost"`
}

// PaymentPayload carries the payment selection.
type PaymentPayload struct {
	Method string `json:"method"`
}

// ItemPayload carries the purchased item submission.
type ItemPayload struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// CreateOrderResponse is what the client needs to continue checkout.
type CreateOrderResponse struct {
	OrderID       string  `json:"orderId"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	OrderStatus   string  `json:"orderStatus"`
	Total         float64 `json:"total"`
	PaymentURL    string  `json:"paymentUrl"`
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Error is the short error description.
	Error string `json:"error"`
	// Detail is the failure detail, when safe to expose.
	Detail string `json:"detail,omitempty"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id,omitempty"`
}

// CreateOrder handles POST /orders.
// @Summary Create an order
// @Description Submits an order, computes totals and, for gateway payments, returns a checkout URL.
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "Order submission"
// @Success 201 {object} CreateOrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
			RayID: rayID,
		})
	}

	result, err := h.service.CreateOrder(c.Context(), toCreateOrderInput(req))
	if err != nil {
		metrics.RecordOrderOperation("create", false)

		if errors.Is(err, service.ErrMissingOrderBlocks) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error: "Missing required blocks: customer, shipping, payment or item",
				RayID: rayID,
			})
		}

		logger.Get().Error("Failed to create order",
			zap.String("ray_id", rayID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:  "Could not create the order",
			Detail: err.Error(),
			RayID:  rayID,
		})
	}

	metrics.RecordOrderOperation("create", true)

	return c.Status(http.StatusCreated).JSON(CreateOrderResponse{
		OrderID:       result.OrderID,
		PaymentMethod: string(result.PaymentMethod),
		PaymentStatus: string(result.PaymentStatus),
		OrderStatus:   string(result.OrderStatus),
		Total:         result.Total,
		PaymentURL:    result.PaymentURL,
	})
}

// GetOrder handles GET /orders/:orderId.
// @Summary Get an order
// @Description Returns the full order record by its external identifier.
// @Tags Orders
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /orders/{orderId} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	rayID := rayIDFrom(c)
	orderID := c.Params("orderId")

	order, err := h.service.GetOrder(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Error: "Order not found",
				RayID: rayID,
			})
		}

		logger.Get().Error("Failed to fetch order",
			zap.String("order_id", orderID),
			zap.String("ray_id", rayID),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:  "Could not fetch the order",
			Detail: err.Error(),
			RayID:  rayID,
		})
	}

	return c.Status(http.StatusOK).JSON(order)
}

func toCreateOrderInput(req CreateOrderRequest) ports.CreateOrderInput {
	input := ports.CreateOrderInput{
		Notes: req.Notes,
	}

	if req.Customer != nil {
		input.Customer = &ports.CustomerInput{
			FullName:   req.Customer.FullName,
			Email:      req.Customer.Email,
			Phone:      req.Customer.Phone,
			Department: req.Customer.Department,
			Address:    req.Customer.Address,
		}
	}
	if req.Shipping != nil {
		input.Shipping = &ports.ShippingInput{
			Method: req.Shipping.Method,
			Cost:   req.Shipping.Cost,
		}
	}
	if req.Payment != nil {
		input.Payment = &ports.PaymentInput{
			Method: req.Payment.Method,
		}
	}
	if req.Item != nil {
		input.Item = &ports.ItemInput{
			SKU:       req.Item.SKU,
			Name:      req.Item.Name,
			Image:     req.Item.Image,
			Quantity:  req.Item.Quantity,
			UnitPrice: req.Item.UnitPrice,
		}
	}

	return input
}

func rayIDFrom(c *fiber.Ctx) string {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return rayID
}
