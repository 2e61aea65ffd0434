package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nibchat/nibchat-server/internal/admin"
)

// RegisterAdminRoutes wires the privileged mutation endpoints. The caller
// is responsible for guarding the group with AdminAuth.
func RegisterAdminRoutes(r fiber.Router, h *admin.Handler) {
	r.Post("/mint", h.Mint)
	r.Post("/ban", h.ToggleBan)
	r.Post("/purchases/:id/resolve", h.ResolvePurchase)
}
