package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(id, status string) Request {
	return Request{
		ID:          id,
		UserID:      "u1",
		Username:    "abel",
		Amount:      "50",
		Method:      "telebirr",
		Timestamp:   time.Now().UTC(),
		Status:      status,
		SubmittedAt: time.Now().UTC(),
	}
}

func TestCreateReplacesPendingRow(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRequest("p1", StatusPending)))

	retry := newRequest("p1", StatusPending)
	retry.Amount = "75"
	require.NoError(t, repo.Create(ctx, retry))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "75", got.Amount)
}

func TestCreateDoesNotReopenResolvedRow(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newRequest("p1", StatusPending)))

	resolved := newRequest("p1", StatusApproved)
	require.NoError(t, repo.Update(ctx, resolved))

	// A client retry of the submission must not flip the row back to pending.
	require.NoError(t, repo.Create(ctx, newRequest("p1", StatusPending)))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got.Status)
}
