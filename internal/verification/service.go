package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/nibchat/nibchat-server/internal/notification"
	"github.com/nibchat/nibchat-server/internal/phone"
)

var (
	// ErrNotFoundOrExpired indicates no live code exists for the phone.
	ErrNotFoundOrExpired = errors.New("verification code not found or expired")

	// ErrCodeMismatch indicates a live code exists but the submitted value is wrong.
	// The stored record survives a mismatch so the caller may retry until expiry.
	ErrCodeMismatch = errors.New("verification code mismatch")
)

// Codes are 7-digit numeric strings drawn uniformly from [1000000, 9999999].
const (
	codeMin  = 1_000_000
	codeSpan = 9_000_000
)

// Service manages the one-time code lifecycle: issue, validate (single use),
// and liveness checks.
type Service struct {
	repo     Repository
	notifier notification.Notifier
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewService builds a verification service issuing codes valid for ttl.
func NewService(repo Repository, notifier notification.Notifier, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, ttl: ttl, logger: logger, now: time.Now}
}

// RequestCode issues a fresh code for the phone, replacing any outstanding
// one, and hands it to the out-of-band delivery channel.
func (s *Service) RequestCode(ctx context.Context, rawPhone string) error {
	canonical := phone.Normalize(rawPhone)

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	rec := Record{
		Phone:     canonical,
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindCodeDelivery,
			Destination: canonical,
			Body:        code,
		}); err != nil {
			// Delivery is best effort; the record is already live.
			s.logger.Warn("code delivery failed", "phone", canonical, "error", err)
		}
	}

	return nil
}

// ValidateCode checks the submitted code against the live record and, on an
// exact match, consumes the record so the code can never validate twice.
func (s *Service) ValidateCode(ctx context.Context, rawPhone, code string) error {
	canonical := phone.Normalize(rawPhone)

	rec, err := s.repo.FindLive(ctx, canonical, s.now())
	if err != nil {
		if errors.Is(err, ErrNoLiveRecord) {
			return ErrNotFoundOrExpired
		}
		return err
	}

	if rec.Code != code {
		return ErrCodeMismatch
	}

	if err := s.repo.Delete(ctx, canonical); err != nil {
		return fmt.Errorf("consume code: %w", err)
	}

	return nil
}

// CheckPhone reports whether a live code exists for the phone. It never
// reveals the code itself.
func (s *Service) CheckPhone(ctx context.Context, rawPhone string) (bool, error) {
	canonical := phone.Normalize(rawPhone)

	_, err := s.repo.FindLive(ctx, canonical, s.now())
	if err != nil {
		if errors.Is(err, ErrNoLiveRecord) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SweepExpired removes stale rows left behind by codes that were never
// consumed. Validity is enforced at read time regardless; this is storage
// hygiene only.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("swept expired verification codes", "removed", removed)
	}
	return removed, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}
