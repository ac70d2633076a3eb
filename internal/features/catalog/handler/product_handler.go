package handler

import (
	"errors"
	"net/http"

	"fundashop-api/internal/core/logger"
	"fundashop-api/internal/features/catalog/domain"
	"fundashop-api/internal/features/catalog/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service ports.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Active      *bool   `json:"active"`
}

// ListProducts handles GET /products.
// @Summary List active products
// @Description Returns the active catalog products, newest first.
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Product
// @Failure 500 {object} map[string]string
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListActive(c.Context())
	if err != nil {
		logger.Get().Error("Failed to list products", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":  "Could not fetch products",
			"detail": err.Error(),
		})
	}

	return c.Status(http.StatusOK).JSON(products)
}

// CreateProduct handles POST /products.
// @Summary Create a product
// @Description Creates a catalog product. Name and SKU are required; price and stock are coerced to non-negative values.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param product body CreateProductRequest true "Product details"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	product, err := h.service.CreateProduct(c.Context(), ports.CreateProductInput{
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      req.Active,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingProductFields) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "name and sku are required",
			})
		}
		if errors.Is(err, domain.ErrSKUTaken) {
			return c.Status(http.StatusConflict).JSON(fiber.Map{
				"error": "A product with this SKU already exists",
			})
		}

		logger.Get().Error("Failed to create product", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":  "Could not create the product",
			"detail": err.Error(),
		})
	}

	return c.Status(http.StatusCreated).JSON(product)
}
