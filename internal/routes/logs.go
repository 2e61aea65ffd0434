package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nibchat/nibchat-server/internal/audit"
)

// RegisterLogRoutes wires audit-log endpoints.
func RegisterLogRoutes(r fiber.Router, h *audit.Handler) {
	r.Get("/logs", h.List)
	r.Post("/logs", h.Append)
}
