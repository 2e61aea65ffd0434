package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists the append-only audit trail.
type Repository interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context) ([]Entry, error)
}

// PostgresRepository stores audit entries in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed audit repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Append inserts an entry. Entries are write-once.
func (r *PostgresRepository) Append(ctx context.Context, e Entry) error {
	_, err := r.db.Exec(ctx, `INSERT INTO logs (id, type, sender, content, ts, delta)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Type, e.Sender, e.Content, e.Timestamp.UTC(), e.Delta)
	return err
}

// List returns all entries, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type, sender, content, ts, delta
        FROM logs ORDER BY ts DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var ts time.Time
		if err := rows.Scan(&e.ID, &e.Type, &e.Sender, &e.Content, &ts, &e.Delta); err != nil {
			return nil, err
		}
		e.Timestamp = ts.UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
