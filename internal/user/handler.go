package user

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes user HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List returns every user, newest registration first.
func (h *Handler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(users)
}

// Upsert writes the full user row, replacing any existing record.
func (h *Handler) Upsert(c *fiber.Ctx) error {
	var u User
	if err := c.BodyParser(&u); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if u.ID == "" {
		return fiber.NewError(http.StatusBadRequest, "user id is required")
	}

	if _, err := h.service.Upsert(c.UserContext(), u); err != nil {
		if errors.Is(err, ErrInvalidBalance) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true})
}
