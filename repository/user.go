package repository

import (
	"context"

	"github.com/fastygo/progress/domain"
)

// UserRepository is the credential store. Create must fail with
// domain.ErrDuplicateUser on a username uniqueness violation and with a
// distinct error for any other failure.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
