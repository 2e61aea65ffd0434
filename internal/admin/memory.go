package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nibchat/nibchat-server/internal/audit"
	"github.com/nibchat/nibchat-server/internal/purchase"
	"github.com/nibchat/nibchat-server/internal/user"
)

// MemoryStore applies admin mutations against in-memory repositories,
// serialized by a single mutex. Test use only.
type MemoryStore struct {
	mu        sync.Mutex
	users     user.Repository
	purchases *purchase.MemoryRepository
	logs      audit.Repository
	now       func() time.Time
}

// NewMemoryStore builds an in-memory admin store over shared repositories.
func NewMemoryStore(users user.Repository, purchases *purchase.MemoryRepository, logs audit.Repository) *MemoryStore {
	return &MemoryStore{users: users, purchases: purchases, logs: logs, now: time.Now}
}

// MintCoins credits amount to the user and appends the LIQUIDITY entry.
func (s *MemoryStore) MintCoins(ctx context.Context, userID, amount string) (user.User, error) {
	delta, err := parseAmount(amount)
	if err != nil {
		return user.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	balance, err := u.Balance()
	if err != nil {
		return user.User{}, err
	}

	now := s.now().UTC()
	u.WalletBalance = balance.Add(delta).String()
	u.UpdatedAt = now

	if err := s.users.Upsert(ctx, u); err != nil {
		return user.User{}, err
	}

	entry := audit.Entry{
		ID:        uuid.NewString(),
		Type:      audit.TypeLiquidity,
		Sender:    "admin",
		Content:   fmt.Sprintf("minted %s NIB to %s", amount, u.Username),
		Timestamp: now,
		Delta:     fmt.Sprintf("+%s NIB", amount),
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		return user.User{}, err
	}

	return u, nil
}

// ToggleBan flips the ban flag on the user.
func (s *MemoryStore) ToggleBan(ctx context.Context, userID string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	u.IsBanned = !u.IsBanned
	u.UpdatedAt = s.now().UTC()

	if err := s.users.Upsert(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// ResolvePurchase writes the decision and credits the user on approval.
func (s *MemoryStore) ResolvePurchase(ctx context.Context, requestID, decision string) (purchase.Request, user.User, error) {
	if decision != purchase.StatusApproved && decision != purchase.StatusRejected {
		return purchase.Request{}, user.User{}, ErrInvalidDecision
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.purchases.Get(ctx, requestID)
	if err != nil {
		return purchase.Request{}, user.User{}, err
	}
	if req.Status != purchase.StatusPending {
		return purchase.Request{}, user.User{}, ErrAlreadyResolved
	}

	req.Status = decision
	if err := s.purchases.Update(ctx, req); err != nil {
		return purchase.Request{}, user.User{}, err
	}

	if decision != purchase.StatusApproved {
		return req, user.User{}, nil
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return purchase.Request{}, user.User{}, err
	}

	u, err := s.users.Get(ctx, req.UserID)
	if err != nil {
		return purchase.Request{}, user.User{}, err
	}
	balance, err := u.Balance()
	if err != nil {
		return purchase.Request{}, user.User{}, err
	}
	u.WalletBalance = balance.Add(amount).String()
	u.UpdatedAt = s.now().UTC()

	if err := s.users.Upsert(ctx, u); err != nil {
		return purchase.Request{}, user.User{}, err
	}

	return req, u, nil
}
