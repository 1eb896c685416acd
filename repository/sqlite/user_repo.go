package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

type userRow struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
}

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository instantiates a SQLite-backed credential store.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	if user == nil {
		return 0, domain.ErrInvalidPayload
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query, args, err := builder.Insert("users").
		Columns("username", "password_hash", "created_at").
		Values(user.Username, user.PasswordHash, user.CreatedAt.Format(timestampLayout)).
		ToSql()
	if err != nil {
		return 0, domain.StoreError("build user insert", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateUser
		}
		return 0, domain.StoreError("create user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.StoreError("create user", err)
	}
	user.ID = id
	return id, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query, args, err := builder.Select("id", "username", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, domain.StoreError("build user select", err)
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.StoreError("get user", err)
	}

	created, err := time.Parse(timestampLayout, row.CreatedAt)
	if err != nil {
		return nil, domain.StoreError("parse stored created_at", err)
	}
	return &domain.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		CreatedAt:    created,
	}, nil
}
