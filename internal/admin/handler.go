package admin

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nibchat/nibchat-server/internal/purchase"
	"github.com/nibchat/nibchat-server/internal/user"
)

var validate = validator.New()

// Handler exposes the privileged admin endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an admin HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type mintRequest struct {
	UserID string `json:"userId" validate:"required"`
	Amount string `json:"amount" validate:"required"`
}

type banRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type resolveRequest struct {
	Decision string `json:"decision" validate:"required"`
}

// Mint credits coins to a user.
func (h *Handler) Mint(c *fiber.Ctx) error {
	var req mintRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "userId and amount are required")
	}

	u, err := h.service.MintCoins(c.UserContext(), req.UserID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, user.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "user": u})
}

// ToggleBan flips a user's ban flag.
func (h *Handler) ToggleBan(c *fiber.Ctx) error {
	var req banRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "userId is required")
	}

	u, err := h.service.ToggleBan(c.UserContext(), req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "user": u})
}

// ResolvePurchase applies an approve/reject decision to a pending request.
func (h *Handler) ResolvePurchase(c *fiber.Ctx) error {
	requestID := c.Params("id")
	if requestID == "" {
		return fiber.NewError(http.StatusBadRequest, "request id is required")
	}

	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "decision is required")
	}

	resolved, err := h.service.ResolvePurchase(c.UserContext(), requestID, req.Decision)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDecision), errors.Is(err, ErrInvalidAmount):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, purchase.ErrNotFound), errors.Is(err, user.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrAlreadyResolved):
			return fiber.NewError(http.StatusConflict, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "request": resolved})
}
