package admin

import (
	"context"
	"errors"

	"github.com/nibchat/nibchat-server/internal/purchase"
	"github.com/nibchat/nibchat-server/internal/user"
)

var (
	// ErrInvalidAmount indicates the mint or credit amount is not a
	// non-negative decimal string.
	ErrInvalidAmount = errors.New("amount must be a non-negative decimal")

	// ErrAlreadyResolved indicates the purchase request left pending before
	// this call; a decision applies exactly once.
	ErrAlreadyResolved = errors.New("purchase request already resolved")

	// ErrInvalidDecision indicates the decision is neither approved nor rejected.
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)

// Store applies privileged mutations. Each operation is a single atomic
// unit: a mint commits the balance change together with its audit entry, a
// resolution commits the status change together with the credit, so a crash
// can never leave a silent half-applied decision.
type Store interface {
	MintCoins(ctx context.Context, userID, amount string) (user.User, error)
	ToggleBan(ctx context.Context, userID string) (user.User, error)
	ResolvePurchase(ctx context.Context, requestID, decision string) (purchase.Request, user.User, error)
}
