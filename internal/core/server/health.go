package server

import (
	"net/http"

	"fundashop-api/internal/core/store"

	"github.com/gofiber/fiber/v2"
)

// RegisterHealth adds the health endpoint. The store status is reported but
// never fails the check; the process itself being up is what load balancers
// probe for.
func (s *Server) RegisterHealth(st store.Store) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		storeStatus := "up"
		if err := st.Ping(c.Context()); err != nil {
			storeStatus = "down"
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"ok":    true,
			"store": storeStatus,
		})
	})
}
