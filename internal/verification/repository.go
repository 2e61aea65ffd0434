package verification

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoLiveRecord indicates no unexpired record exists for the phone.
var ErrNoLiveRecord = errors.New("no live verification record")

// Repository persists one-time code records.
type Repository interface {
	Upsert(ctx context.Context, rec Record) error
	FindLive(ctx context.Context, phone string, now time.Time) (Record, error)
	Delete(ctx context.Context, phone string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PostgresRepository stores verification records in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed verification repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert writes the record, replacing any prior code for the same phone.
func (r *PostgresRepository) Upsert(ctx context.Context, rec Record) error {
	_, err := r.db.Exec(ctx, `INSERT INTO verification (phone, code, expires_at) VALUES ($1, $2, $3)
        ON CONFLICT (phone) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at`,
		rec.Phone, rec.Code, rec.ExpiresAt.UTC())
	return err
}

// FindLive fetches the record for phone iff it has not expired at now.
func (r *PostgresRepository) FindLive(ctx context.Context, phone string, now time.Time) (Record, error) {
	row := r.db.QueryRow(ctx, `SELECT phone, code, expires_at FROM verification
        WHERE phone = $1 AND expires_at > $2`, phone, now.UTC())
	var rec Record
	var expiresAt time.Time
	if err := row.Scan(&rec.Phone, &rec.Code, &expiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNoLiveRecord
		}
		return Record{}, err
	}
	rec.ExpiresAt = expiresAt.UTC()
	return rec, nil
}

// Delete removes the record for phone regardless of expiry.
func (r *PostgresRepository) Delete(ctx context.Context, phone string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM verification WHERE phone = $1`, phone)
	return err
}

// DeleteExpired removes rows whose expiry has passed and reports how many.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM verification WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
