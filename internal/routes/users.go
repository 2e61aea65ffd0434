package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nibchat/nibchat-server/internal/user"
)

// RegisterUserRoutes wires user listing and upsert endpoints.
func RegisterUserRoutes(r fiber.Router, h *user.Handler) {
	r.Get("/users", h.List)
	r.Post("/users", h.Upsert)
}
