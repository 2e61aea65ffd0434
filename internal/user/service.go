package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nibchat/nibchat-server/internal/phone"
)

// ErrInvalidBalance indicates the submitted wallet balance is not a
// non-negative decimal string.
var ErrInvalidBalance = errors.New("invalid wallet balance")

// Projection is the key/value view of a user kept for cheap session sync.
// It is derived from the relational store and refreshed on every write;
// it is never an independent write target.
type Projection interface {
	Put(ctx context.Context, u User) error
}

// Service owns the single write path for user rows: it normalizes input,
// enforces the balance invariant, persists the row and refreshes the sync
// projection.
type Service struct {
	repo       Repository
	projection Projection
	logger     *slog.Logger
	now        func() time.Time
}

// NewService builds a user service.
func NewService(repo Repository, projection Projection, logger *slog.Logger) *Service {
	return &Service{repo: repo, projection: projection, logger: logger, now: time.Now}
}

// Upsert validates and writes the full user row. Optional fields default to
// zero values; a missing balance becomes "0"; timestamps default to now.
func (s *Service) Upsert(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		return User{}, fmt.Errorf("user id is required")
	}

	if u.Phone != "" {
		u.Phone = phone.Normalize(u.Phone)
	}

	if u.WalletBalance == "" {
		u.WalletBalance = "0"
	}
	balance, err := u.Balance()
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidBalance, err)
	}
	if balance.IsNegative() {
		return User{}, fmt.Errorf("%w: must be non-negative, got %s", ErrInvalidBalance, u.WalletBalance)
	}

	now := s.now().UTC()
	if u.RegistrationDate.IsZero() {
		u.RegistrationDate = now
	}
	u.UpdatedAt = now

	if err := s.repo.Upsert(ctx, u); err != nil {
		return User{}, err
	}

	s.refreshProjection(ctx, u)

	return u, nil
}

// Get fetches a user by id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.Get(ctx, id)
}

// List returns all users, newest registration first.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) refreshProjection(ctx context.Context, u User) {
	if s.projection == nil {
		return
	}
	// The projection is a cache; a failed refresh must not fail the write.
	if err := s.projection.Put(ctx, u); err != nil {
		s.logger.Warn("refresh user projection", "user_id", u.ID, "error", err)
	}
}
