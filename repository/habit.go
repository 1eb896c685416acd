package repository

import (
	"context"
	"time"

	"github.com/fastygo/progress/domain"
)

type HabitRepository interface {
	Create(ctx context.Context, habit *domain.Habit) (int64, error)
	ListByUser(ctx context.Context, username string) ([]domain.Habit, error)
	// CheckIn marks the user's habit done on date. It reports false when the
	// date was already checked in, and ErrHabitNotFound for foreign ids.
	CheckIn(ctx context.Context, username string, id int64, date time.Time) (bool, error)
	// CheckIns returns the user's check-in dates keyed by habit id.
	CheckIns(ctx context.Context, username string) (map[int64][]time.Time, error)
}
