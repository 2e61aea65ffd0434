package syncstore

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the session-sync read path.
type Handler struct {
	store *Store
}

// NewHandler builds a sync HTTP handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Get returns the raw stored JSON for the requested user id.
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return fiber.NewError(http.StatusBadRequest, "id is required")
	}

	payload, err := h.store.GetRaw(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(http.StatusOK).Send(payload)
}
