package repository

import (
	"context"

	"github.com/fastygo/progress/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (int64, error)
	ListByUser(ctx context.Context, username string) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, username string, id int64, status domain.Status) error
}
