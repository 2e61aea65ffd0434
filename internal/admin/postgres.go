package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nibchat/nibchat-server/internal/audit"
	"github.com/nibchat/nibchat-server/internal/purchase"
	"github.com/nibchat/nibchat-server/internal/user"
)

// PostgresStore applies admin mutations inside PostgreSQL transactions with
// row locks, so concurrent decisions on the same user or request serialize
// instead of double-crediting.
type PostgresStore struct {
	db    *pgxpool.Pool
	users user.Repository
}

// NewPostgresStore builds a Postgres-backed admin store. The user
// repository is used to re-read full rows after commit.
func NewPostgresStore(db *pgxpool.Pool, users user.Repository) *PostgresStore {
	return &PostgresStore{db: db, users: users}
}

// MintCoins credits amount to the user and appends the LIQUIDITY audit
// entry in the same transaction.
func (s *PostgresStore) MintCoins(ctx context.Context, userID, amount string) (user.User, error) {
	delta, err := parseAmount(amount)
	if err != nil {
		return user.User{}, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return user.User{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	balance, username, err := lockUserBalance(ctx, tx, userID)
	if err != nil {
		return user.User{}, err
	}

	newBalance := balance.Add(delta)
	now := time.Now().UTC()

	if _, err := tx.Exec(ctx, `UPDATE users SET wallet_balance = $1, updated_at = $2 WHERE id = $3`,
		newBalance.String(), now, userID); err != nil {
		return user.User{}, err
	}

	entry := audit.Entry{
		ID:        uuid.NewString(),
		Type:      audit.TypeLiquidity,
		Sender:    "admin",
		Content:   fmt.Sprintf("minted %s NIB to %s", amount, username),
		Timestamp: now,
		Delta:     fmt.Sprintf("+%s NIB", amount),
	}
	if _, err := tx.Exec(ctx, `INSERT INTO logs (id, type, sender, content, ts, delta)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Type, entry.Sender, entry.Content, entry.Timestamp, entry.Delta); err != nil {
		return user.User{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return user.User{}, err
	}

	return s.users.Get(ctx, userID)
}

// ToggleBan flips the ban flag on the user row.
func (s *PostgresStore) ToggleBan(ctx context.Context, userID string) (user.User, error) {
	cmd, err := s.db.Exec(ctx, `UPDATE users SET is_banned = 1 - is_banned, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), userID)
	if err != nil {
		return user.User{}, err
	}
	if cmd.RowsAffected() == 0 {
		return user.User{}, user.ErrNotFound
	}
	return s.users.Get(ctx, userID)
}

// ResolvePurchase writes the decision and, on approval, credits the
// referenced user, all in one transaction. The request must still be
// pending; a second resolution fails with ErrAlreadyResolved.
func (s *PostgresStore) ResolvePurchase(ctx context.Context, requestID, decision string) (purchase.Request, user.User, error) {
	if decision != purchase.StatusApproved && decision != purchase.StatusRejected {
		return purchase.Request{}, user.User{}, ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return purchase.Request{}, user.User{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	row := tx.QueryRow(ctx, `SELECT id, user_id, username, amount, method, ts, status, submitted_at
        FROM purchases WHERE id = $1 FOR UPDATE`, requestID)
	var req purchase.Request
	var ts, submittedAt time.Time
	if err := row.Scan(&req.ID, &req.UserID, &req.Username, &req.Amount,
		&req.Method, &ts, &req.Status, &submittedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return purchase.Request{}, user.User{}, purchase.ErrNotFound
		}
		return purchase.Request{}, user.User{}, err
	}
	req.Timestamp = ts.UTC()
	req.SubmittedAt = submittedAt.UTC()

	if req.Status != purchase.StatusPending {
		return purchase.Request{}, user.User{}, ErrAlreadyResolved
	}

	if _, err := tx.Exec(ctx, `UPDATE purchases SET status = $1 WHERE id = $2`, decision, requestID); err != nil {
		return purchase.Request{}, user.User{}, err
	}
	req.Status = decision

	if decision == purchase.StatusApproved {
		amount, err := parseAmount(req.Amount)
		if err != nil {
			return purchase.Request{}, user.User{}, err
		}

		balance, _, err := lockUserBalance(ctx, tx, req.UserID)
		if err != nil {
			return purchase.Request{}, user.User{}, err
		}

		if _, err := tx.Exec(ctx, `UPDATE users SET wallet_balance = $1, updated_at = $2 WHERE id = $3`,
			balance.Add(amount).String(), time.Now().UTC(), req.UserID); err != nil {
			return purchase.Request{}, user.User{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return purchase.Request{}, user.User{}, err
	}

	if decision != purchase.StatusApproved {
		return req, user.User{}, nil
	}

	updated, err := s.users.Get(ctx, req.UserID)
	if err != nil {
		return req, user.User{}, err
	}
	return req, updated, nil
}

func lockUserBalance(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, string, error) {
	row := tx.QueryRow(ctx, `SELECT wallet_balance, username FROM users WHERE id = $1 FOR UPDATE`, userID)
	var raw, username string
	if err := row.Scan(&raw, &username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, "", user.ErrNotFound
		}
		return decimal.Zero, "", err
	}
	if raw == "" {
		return decimal.Zero, username, nil
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("stored balance %q: %w", raw, err)
	}
	return balance, username, nil
}

func parseAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
