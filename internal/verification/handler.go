package verification

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Handler exposes verification HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a verification HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type requestCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// RequestCode issues a one-time code for the submitted phone.
func (h *Handler) RequestCode(c *fiber.Ctx) error {
	var req requestCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "phone is required")
	}

	if err := h.service.RequestCode(c.UserContext(), req.Phone); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true})
}

// VerifyCode validates and consumes a one-time code.
func (h *Handler) VerifyCode(c *fiber.Ctx) error {
	var req verifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "phone and code are required")
	}

	if err := h.service.ValidateCode(c.UserContext(), req.Phone, req.Code); err != nil {
		switch {
		case errors.Is(err, ErrNotFoundOrExpired), errors.Is(err, ErrCodeMismatch):
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true})
}

// CheckPhone reports whether a live code exists for the phone. The code
// itself is never returned here; delivery has its own channel.
func (h *Handler) CheckPhone(c *fiber.Ctx) error {
	var req requestCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "phone is required")
	}

	valid, err := h.service.CheckPhone(c.UserContext(), req.Phone)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"valid": valid})
}
