package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed credential store.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	if user == nil {
		return 0, domain.ErrInvalidPayload
	}

	// The unique index on username makes the insert the uniqueness check.
	const query = `
	INSERT INTO users (username, password_hash)
	VALUES ($1, $2)
	RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, user.Username, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt); err != nil {
		return 0, insertError("create user", err, domain.ErrDuplicateUser)
	}
	return user.ID, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.StoreError("get user", err)
	}
	return &user, nil
}
