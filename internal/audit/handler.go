package audit

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Handler exposes audit-log HTTP endpoints.
type Handler struct {
	repo Repository
	now  func() time.Time
}

// NewHandler builds an audit HTTP handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo, now: time.Now}
}

type appendRequest struct {
	ID        string    `json:"id" validate:"required"`
	Type      string    `json:"type" validate:"required"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	Delta     string    `json:"delta"`
}

// List returns all log entries, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	entries, err := h.repo.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(entries)
}

// Append records a log entry.
func (h *Handler) Append(c *fiber.Ctx) error {
	var req appendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "id, type and content are required")
	}
	if !ValidType(req.Type) {
		return fiber.NewError(http.StatusBadRequest, "unknown log type "+req.Type)
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = h.now().UTC()
	}

	entry := Entry{
		ID:        req.ID,
		Type:      req.Type,
		Sender:    req.Sender,
		Content:   req.Content,
		Timestamp: req.Timestamp,
		Delta:     req.Delta,
	}

	if err := h.repo.Append(c.UserContext(), entry); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true})
}
