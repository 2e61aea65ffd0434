package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const adminTokenHeader = "X-Admin-Token"

// AdminAuth gates privileged mutation endpoints behind a server-validated
// credential. The check happens here, on every call, never in client logic.
func AdminAuth(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		presented := c.Get(adminTokenHeader)
		if presented == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing admin token")
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return fiber.NewError(http.StatusUnauthorized, "invalid admin token")
		}
		return c.Next()
	}
}
