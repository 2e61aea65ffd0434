package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibchat/nibchat-server/internal/logging"
	"github.com/nibchat/nibchat-server/internal/notification"
)

type captureNotifier struct {
	messages []notification.Message
}

func (n *captureNotifier) Send(_ context.Context, m notification.Message) error {
	n.messages = append(n.messages, m)
	return nil
}

func (n *captureNotifier) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, n.messages, "expected a delivered code")
	return n.messages[len(n.messages)-1].Body
}

func newTestService() (*Service, *captureNotifier) {
	notifier := &captureNotifier{}
	svc := NewService(NewMemoryRepository(), notifier, 5*time.Minute, logging.Discard())
	return svc, notifier
}

func TestCodeValidatesExactlyOnce(t *testing.T) {
	svc, notifier := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "0911234567"))

	code := notifier.lastCode(t)
	require.Len(t, code, 7)
	assert.Equal(t, "+251911234567", notifier.messages[0].Destination)

	require.NoError(t, svc.ValidateCode(ctx, "+251911234567", code))

	err := svc.ValidateCode(ctx, "+251911234567", code)
	assert.ErrorIs(t, err, ErrNotFoundOrExpired)
}

func TestMismatchKeepsRecordAlive(t *testing.T) {
	svc, notifier := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "0911234567"))
	code := notifier.lastCode(t)

	err := svc.ValidateCode(ctx, "0911234567", "0000000")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	// The record survives a mismatch, so the correct code still works.
	require.NoError(t, svc.ValidateCode(ctx, "0911234567", code))
}

func TestExpiredCodeRejected(t *testing.T) {
	svc, notifier := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "0911234567"))
	code := notifier.lastCode(t)

	svc.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	err := svc.ValidateCode(ctx, "0911234567", code)
	assert.ErrorIs(t, err, ErrNotFoundOrExpired)
}

func TestSecondRequestInvalidatesFirstCode(t *testing.T) {
	svc, notifier := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "0911234567"))
	first := notifier.lastCode(t)

	require.NoError(t, svc.RequestCode(ctx, "0911234567"))
	second := notifier.lastCode(t)

	if first != second {
		err := svc.ValidateCode(ctx, "0911234567", first)
		assert.ErrorIs(t, err, ErrCodeMismatch)
	}
	require.NoError(t, svc.ValidateCode(ctx, "0911234567", second))
}

func TestCheckPhone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	valid, err := svc.CheckPhone(ctx, "0911234567")
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, svc.RequestCode(ctx, "0911234567"))

	valid, err = svc.CheckPhone(ctx, "+251911234567")
	require.NoError(t, err)
	assert.True(t, valid)

	svc.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	valid, err = svc.CheckPhone(ctx, "0911234567")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestSweepExpired(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, "0911234567"))
	require.NoError(t, svc.RequestCode(ctx, "0922345678"))

	svc.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	removed, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)
}

func TestGeneratedCodeRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 7)
		assert.GreaterOrEqual(t, code[0], byte('1'))
	}
}
