package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores users in the users table.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("users: db required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row. A unique violation on username maps to
// ErrUsernameTaken.
func (r *PostgresRepository) Create(ctx context.Context, username, password string) (*User, error) {
	var id int
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id`,
		username, password,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("users: insert failed: %w", err)
	}
	return &User{ID: id, Username: username, Password: password}, nil
}

// GetByID fetches a user by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*User, error) {
	return r.get(ctx, `SELECT id, username, password FROM users WHERE id = $1`, id)
}

// GetByUsername fetches a user by unique username.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.get(ctx, `SELECT id, username, password FROM users WHERE username = $1`, username)
}

func (r *PostgresRepository) get(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	if err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Password); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("users: select failed: %w", err)
	}
	return &u, nil
}

var _ Repository = (*PostgresRepository)(nil)
var _ Repository = (*InMemoryRepository)(nil)
