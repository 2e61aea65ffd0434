package syncstore

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibchat/nibchat-server/internal/user"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return New(client)
}

func TestPutAndGetRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	u := user.User{
		ID:               "phone:+251911234567",
		Username:         "abel",
		WalletBalance:    "125.50",
		IsVerified:       true,
		LoginMethod:      "phone",
		RegistrationDate: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Put(ctx, u))

	got, err := store.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, u.WalletBalance, got.WalletBalance)
	assert.True(t, got.IsVerified)
}

func TestGetMissingProjection(t *testing.T) {
	store := setupStore(t)

	_, err := store.Get(context.Background(), "phone:+251900000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutReplacesPriorProjection(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	u := user.User{ID: "u1", WalletBalance: "100"}
	require.NoError(t, store.Put(ctx, u))

	u.WalletBalance = "150"
	require.NoError(t, store.Put(ctx, u))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "150", got.WalletBalance)
}

func TestDelete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, user.User{ID: "u1"}))
	require.NoError(t, store.Delete(ctx, "u1"))

	_, err := store.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}
