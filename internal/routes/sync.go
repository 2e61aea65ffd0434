package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/nibchat/nibchat-server/internal/syncstore"
)

// RegisterSyncRoutes wires the session-sync read path. Without Redis the
// projection does not exist and the endpoint reports the store unavailable.
func RegisterSyncRoutes(r fiber.Router, store *syncstore.Store) {
	if store == nil {
		r.Get("/user/sync", func(c *fiber.Ctx) error {
			return fiber.NewError(http.StatusInternalServerError, "sync store unavailable")
		})
		return
	}
	h := syncstore.NewHandler(store)
	r.Get("/user/sync", h.Get)
}
