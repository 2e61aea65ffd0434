package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nibchat/nibchat-server/internal/notification"
	"github.com/nibchat/nibchat-server/internal/purchase"
	"github.com/nibchat/nibchat-server/internal/user"
)

// Service is the privileged mutation gateway. It delegates the atomic write
// to the store, then refreshes the session-sync projection so the next
// reconciliation poll observes the change, and emits credit notifications.
type Service struct {
	store      Store
	projection user.Projection
	notifier   notification.Notifier
	logger     *slog.Logger
}

// NewService builds the admin gateway service.
func NewService(store Store, projection user.Projection, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{store: store, projection: projection, notifier: notifier, logger: logger}
}

// MintCoins credits amount to the user, with the audit entry committed
// atomically alongside the balance change.
func (s *Service) MintCoins(ctx context.Context, userID, amount string) (user.User, error) {
	u, err := s.store.MintCoins(ctx, userID, amount)
	if err != nil {
		return user.User{}, err
	}

	s.refreshProjection(ctx, u)
	s.notifyCredit(ctx, u.ID, amount)

	s.logger.Info("minted coins", "user_id", u.ID, "amount", amount, "balance", u.WalletBalance)
	return u, nil
}

// ToggleBan flips the ban flag. The refreshed projection is how the ban
// reaches a live session: the client poller adopts it and tears down.
func (s *Service) ToggleBan(ctx context.Context, userID string) (user.User, error) {
	u, err := s.store.ToggleBan(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	s.refreshProjection(ctx, u)

	s.logger.Info("toggled ban", "user_id", u.ID, "banned", u.IsBanned)
	return u, nil
}

// ResolvePurchase applies an approve/reject decision exactly once.
func (s *Service) ResolvePurchase(ctx context.Context, requestID, decision string) (purchase.Request, error) {
	req, u, err := s.store.ResolvePurchase(ctx, requestID, decision)
	if err != nil {
		return purchase.Request{}, err
	}

	if req.Status == purchase.StatusApproved {
		s.refreshProjection(ctx, u)
		s.notifyCredit(ctx, u.ID, req.Amount)
	}

	s.logger.Info("resolved purchase", "request_id", req.ID, "decision", req.Status)
	return req, nil
}

func (s *Service) refreshProjection(ctx context.Context, u user.User) {
	if s.projection == nil {
		return
	}
	if err := s.projection.Put(ctx, u); err != nil {
		s.logger.Warn("refresh user projection", "user_id", u.ID, "error", err)
	}
}

func (s *Service) notifyCredit(ctx context.Context, userID, amount string) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Send(ctx, notification.Message{
		Kind:        notification.KindWalletCredit,
		Destination: userID,
		Body:        fmt.Sprintf("+%s NIB", amount),
	})
	if err != nil {
		// The credit is already committed; delivery is best effort.
		s.logger.Warn("credit notification failed", "user_id", userID, "error", err)
	}
}
