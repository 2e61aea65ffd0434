package purchase

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no purchase request exists for the id.
var ErrNotFound = errors.New("purchase request not found")

// Repository persists purchase requests. Requests form an append-style
// ledger: status changes are the only mutation and rows are never deleted.
type Repository interface {
	Create(ctx context.Context, req Request) error
	Get(ctx context.Context, id string) (Request, error)
	List(ctx context.Context) ([]Request, error)
}

// PostgresRepository stores purchase requests in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed purchase repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const requestColumns = `id, user_id, username, amount, method, ts, status, submitted_at`

// Create inserts the request, replacing a still-pending row with the same id
// so a client retry of the submission is harmless. A resolved row is final:
// resubmitting its id must not reopen it, or a second approval would credit
// the user again.
func (r *PostgresRepository) Create(ctx context.Context, req Request) error {
	_, err := r.db.Exec(ctx, `INSERT INTO purchases (`+requestColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (id) DO UPDATE SET
            user_id = EXCLUDED.user_id,
            username = EXCLUDED.username,
            amount = EXCLUDED.amount,
            method = EXCLUDED.method,
            ts = EXCLUDED.ts,
            status = EXCLUDED.status,
            submitted_at = EXCLUDED.submitted_at
        WHERE purchases.status = 'pending'`,
		req.ID, req.UserID, req.Username, req.Amount, req.Method,
		req.Timestamp.UTC(), req.Status, req.SubmittedAt.UTC())
	return err
}

// Get fetches a purchase request by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Request, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM purchases WHERE id = $1`, id)
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Request{}, ErrNotFound
		}
		return Request{}, err
	}
	return req, nil
}

// List returns all purchase requests, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Request, error) {
	rows, err := r.db.Query(ctx, `SELECT `+requestColumns+` FROM purchases ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (Request, error) {
	var req Request
	var ts, submittedAt time.Time
	if err := row.Scan(&req.ID, &req.UserID, &req.Username, &req.Amount,
		&req.Method, &ts, &req.Status, &submittedAt); err != nil {
		return Request{}, err
	}
	req.Timestamp = ts.UTC()
	req.SubmittedAt = submittedAt.UTC()
	return req, nil
}
