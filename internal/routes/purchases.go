package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nibchat/nibchat-server/internal/purchase"
)

// RegisterPurchaseRoutes wires purchase-request endpoints.
func RegisterPurchaseRoutes(r fiber.Router, h *purchase.Handler) {
	r.Get("/purchases", h.List)
	r.Post("/purchases", h.Create)
}
