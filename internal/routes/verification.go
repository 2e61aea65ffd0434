package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nibchat/nibchat-server/internal/verification"
)

// RegisterVerificationRoutes wires the one-time code endpoints.
func RegisterVerificationRoutes(r fiber.Router, h *verification.Handler, rateLimiter fiber.Handler) {
	if rateLimiter != nil {
		r.Post("/request-verification", rateLimiter, h.RequestCode)
	} else {
		r.Post("/request-verification", h.RequestCode)
	}
	r.Post("/verify-code", h.VerifyCode)
	r.Post("/check-phone", h.CheckPhone)
}
