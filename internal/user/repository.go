package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no user exists for the requested id.
var ErrNotFound = errors.New("user not found")

// Repository persists users. Writes are full-row replace-on-conflict; there
// is no field-level merge.
type Repository interface {
	Upsert(ctx context.Context, u User) error
	Get(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
}

// PostgresRepository stores users in PostgreSQL. Boolean fields are kept as
// 0/1 smallints and normalized back to bool on read.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, display_name, phone, email, avatar_url,
        is_profile_complete, wallet_balance, is_banned, is_verified,
        login_method, registration_date, updated_at`

// Upsert writes the full user row, replacing any existing record.
func (r *PostgresRepository) Upsert(ctx context.Context, u User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        ON CONFLICT (id) DO UPDATE SET
            username = EXCLUDED.username,
            display_name = EXCLUDED.display_name,
            phone = EXCLUDED.phone,
            email = EXCLUDED.email,
            avatar_url = EXCLUDED.avatar_url,
            is_profile_complete = EXCLUDED.is_profile_complete,
            wallet_balance = EXCLUDED.wallet_balance,
            is_banned = EXCLUDED.is_banned,
            is_verified = EXCLUDED.is_verified,
            login_method = EXCLUDED.login_method,
            registration_date = EXCLUDED.registration_date,
            updated_at = EXCLUDED.updated_at`,
		u.ID, u.Username, u.DisplayName, u.Phone, u.Email, u.AvatarURL,
		boolToInt(u.IsProfileComplete), u.WalletBalance, boolToInt(u.IsBanned),
		boolToInt(u.IsVerified), u.LoginMethod, u.RegistrationDate.UTC(), u.UpdatedAt.UTC())
	return err
}

// Get fetches a single user by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// List returns all users, newest registration first.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY registration_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		u                              User
		profileComplete, banned, verif int16
		registrationDate, updatedAt    time.Time
	)
	if err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Phone, &u.Email,
		&u.AvatarURL, &profileComplete, &u.WalletBalance, &banned, &verif,
		&u.LoginMethod, &registrationDate, &updatedAt); err != nil {
		return User{}, err
	}
	u.IsProfileComplete = profileComplete != 0
	u.IsBanned = banned != 0
	u.IsVerified = verif != 0
	u.RegistrationDate = registrationDate.UTC()
	u.UpdatedAt = updatedAt.UTC()
	return u, nil
}

func boolToInt(b bool) int16 {
	if b {
		return 1
	}
	return 0
}
