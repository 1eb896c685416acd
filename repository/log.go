package repository

import (
	"context"

	"github.com/fastygo/progress/domain"
)

type LogRepository interface {
	Create(ctx context.Context, entry *domain.LogEntry) (int64, error)
	ListByUser(ctx context.Context, username string) ([]domain.LogEntry, error)
}
