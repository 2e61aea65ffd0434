package purchase

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Handler exposes purchase-request HTTP endpoints. Decisions on requests
// live in the admin gateway; this surface only records and lists them.
type Handler struct {
	repo Repository
	now  func() time.Time
}

// NewHandler builds a purchase HTTP handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo, now: time.Now}
}

type createRequest struct {
	ID          string    `json:"id" validate:"required"`
	UserID      string    `json:"userId" validate:"required"`
	Username    string    `json:"username"`
	Amount      string    `json:"amount"`
	Method      string    `json:"method"`
	Timestamp   time.Time `json:"timestamp"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// List returns all purchase requests, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	requests, err := h.repo.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(requests)
}

// Create records a pending purchase request. Amount defaults to "0", the
// status to pending and both timestamps to now.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "id and userId are required")
	}

	if req.Amount == "" {
		req.Amount = "0"
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return fiber.NewError(http.StatusBadRequest, "amount must be a non-negative decimal")
	}

	now := h.now().UTC()
	if req.Timestamp.IsZero() {
		req.Timestamp = now
	}
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = now
	}

	record := Request{
		ID:          req.ID,
		UserID:      req.UserID,
		Username:    req.Username,
		Amount:      req.Amount,
		Method:      req.Method,
		Timestamp:   req.Timestamp,
		Status:      StatusPending,
		SubmittedAt: req.SubmittedAt,
	}

	if err := h.repo.Create(c.UserContext(), record); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true})
}
