// Package activity records and lists daily activity logs.
package activity

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

// Input is the daily-log form. Date is optional (YYYY-MM-DD, default today).
type Input struct {
	Hours float64 `json:"hours"`
	Notes string  `json:"notes"`
	Mood  int     `json:"mood"`
	Date  string  `json:"date,omitempty"`
}

type UseCase struct {
	logs   repository.LogRepository
	clock  domain.Clock
	logger *zap.Logger
}

func New(logs repository.LogRepository, clock domain.Clock, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{logs: logs, clock: clock, logger: logger}
}

func (uc *UseCase) CreateLog(ctx context.Context, username string, in Input) (*domain.LogEntry, error) {
	date := uc.clock.Today()
	if s := strings.TrimSpace(in.Date); s != "" {
		parsed, err := domain.ParseDate(s)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	entry := &domain.LogEntry{
		Username: username,
		Hours:    in.Hours,
		Notes:    in.Notes,
		Mood:     in.Mood,
		Date:     date,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.logs.Create(ctx, entry); err != nil {
		uc.logger.Error("create log failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return entry, nil
}

func (uc *UseCase) ListLogs(ctx context.Context, username string) ([]domain.LogEntry, error) {
	if username == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.logs.ListByUser(ctx, username)
}
