package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibchat/nibchat-server/internal/audit"
	"github.com/nibchat/nibchat-server/internal/logging"
	"github.com/nibchat/nibchat-server/internal/notification"
	"github.com/nibchat/nibchat-server/internal/purchase"
	"github.com/nibchat/nibchat-server/internal/user"
)

type fixture struct {
	svc       *Service
	users     user.Repository
	purchases *purchase.MemoryRepository
	logs      audit.Repository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users := user.NewMemoryRepository()
	purchases := purchase.NewMemoryRepository()
	logs := audit.NewMemoryRepository()
	store := NewMemoryStore(users, purchases, logs)
	svc := NewService(store, nil, nil, logging.Discard())
	return fixture{svc: svc, users: users, purchases: purchases, logs: logs}
}

func seedUser(t *testing.T, f fixture, id, balance string) user.User {
	t.Helper()
	u := user.User{
		ID:               id,
		Username:         "abel",
		WalletBalance:    balance,
		RegistrationDate: time.Now().UTC(),
	}
	require.NoError(t, f.users.Upsert(context.Background(), u))
	return u
}

func TestMintCoinsCreditsAndLogs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedUser(t, f, "phone:+251911234567", "100")

	u, err := f.svc.MintCoins(ctx, "phone:+251911234567", "25.5")
	require.NoError(t, err)
	assert.Equal(t, "125.5", u.WalletBalance)

	entries, err := f.logs.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.TypeLiquidity, entries[0].Type)
	assert.Equal(t, "+25.5 NIB", entries[0].Delta)
}

type failingNotifier struct{}

func (failingNotifier) Send(context.Context, notification.Message) error {
	return errors.New("sms gateway down")
}

func TestMintCoinsSurvivesNotifierFailure(t *testing.T) {
	users := user.NewMemoryRepository()
	purchases := purchase.NewMemoryRepository()
	logs := audit.NewMemoryRepository()
	store := NewMemoryStore(users, purchases, logs)
	svc := NewService(store, nil, failingNotifier{}, logging.Discard())

	ctx := context.Background()
	require.NoError(t, users.Upsert(ctx, user.User{ID: "u1", WalletBalance: "100"}))

	u, err := svc.MintCoins(ctx, "u1", "10")
	require.NoError(t, err)
	assert.Equal(t, "110", u.WalletBalance)
}

func TestMintCoinsRejectsBadAmount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedUser(t, f, "u1", "100")

	_, err := f.svc.MintCoins(ctx, "u1", "abc")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.MintCoins(ctx, "u1", "-5")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// No partial effect: balance untouched, no log written.
	u, err := f.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "100", u.WalletBalance)

	entries, err := f.logs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMintCoinsUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.MintCoins(context.Background(), "missing", "10")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestToggleBanFlips(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedUser(t, f, "u1", "0")

	u, err := f.svc.ToggleBan(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, u.IsBanned)

	u, err = f.svc.ToggleBan(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, u.IsBanned)
}

func seedPurchase(t *testing.T, f fixture, id, userID, amount string) purchase.Request {
	t.Helper()
	req := purchase.Request{
		ID:          id,
		UserID:      userID,
		Username:    "abel",
		Amount:      amount,
		Method:      "telebirr",
		Timestamp:   time.Now().UTC(),
		Status:      purchase.StatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	require.NoError(t, f.purchases.Create(context.Background(), req))
	return req
}

func TestResolvePurchaseApprovedCreditsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedUser(t, f, "u1", "100")
	seedPurchase(t, f, "p1", "u1", "50")

	req, err := f.svc.ResolvePurchase(ctx, "p1", purchase.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, purchase.StatusApproved, req.Status)

	u, err := f.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "150", u.WalletBalance)

	// A decision applies exactly once; the retry must not double-credit.
	_, err = f.svc.ResolvePurchase(ctx, "p1", purchase.StatusApproved)
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	u, err = f.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "150", u.WalletBalance)
}

func TestResubmittedRequestCannotBeCreditedTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedUser(t, f, "u1", "100")
	seedPurchase(t, f, "p1", "u1", "50")

	_, err := f.svc.ResolvePurchase(ctx, "p1", purchase.StatusApproved)
	require.NoError(t, err)

	// A client retry of the original submission arrives after the decision.
	seedPurchase(t, f, "p1", "u1", "50")

	_, err = f.svc.ResolvePurchase(ctx, "p1", purchase.StatusApproved)
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	u, err := f.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "150", u.WalletBalance)
}

func TestResolvePurchaseRejectedLeavesBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seedUser(t, f, "u1", "100")
	seedPurchase(t, f, "p1", "u1", "50")

	req, err := f.svc.ResolvePurchase(ctx, "p1", purchase.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, purchase.StatusRejected, req.Status)

	u, err := f.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "100", u.WalletBalance)

	// Rejected is final: it cannot be re-resolved to approved.
	_, err = f.svc.ResolvePurchase(ctx, "p1", purchase.StatusApproved)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestResolvePurchaseInvalidDecision(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "u1", "100")
	seedPurchase(t, f, "p1", "u1", "50")

	_, err := f.svc.ResolvePurchase(context.Background(), "p1", "maybe")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestResolvePurchaseUnknownRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ResolvePurchase(context.Background(), "missing", purchase.StatusApproved)
	assert.ErrorIs(t, err, purchase.ErrNotFound)
}
