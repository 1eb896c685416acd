// Package dashboard computes a user's productivity metrics on demand.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logs   repository.LogRepository
	habits repository.HabitRepository
	clock  domain.Clock
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logs repository.LogRepository, clock domain.Clock, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{tasks: tasks, logs: logs, clock: clock, logger: logger}
}

// WithHabits adds habit counts to the dashboard.
func (uc *UseCase) WithHabits(habits repository.HabitRepository) *UseCase {
	uc.habits = habits
	return uc
}

// Dashboard reads the user's tasks and logs fresh and aggregates them.
func (uc *UseCase) Dashboard(ctx context.Context, username string) (*domain.Dashboard, error) {
	if username == "" {
		return nil, domain.ErrUnauthorized
	}
	tasks, err := uc.tasks.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	logs, err := uc.logs.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	today := uc.clock.Today()
	d := Compute(username, tasks, logs, today)
	if uc.habits != nil {
		if err := uc.countHabits(ctx, &d, today); err != nil {
			return nil, err
		}
	}
	return &d, nil
}

func (uc *UseCase) countHabits(ctx context.Context, d *domain.Dashboard, today time.Time) error {
	habits, err := uc.habits.ListByUser(ctx, d.Username)
	if err != nil {
		return err
	}
	checkIns, err := uc.habits.CheckIns(ctx, d.Username)
	if err != nil {
		return err
	}
	d.HabitCount = len(habits)
	for _, h := range habits {
		for _, day := range checkIns[h.ID] {
			if day.Equal(today) {
				d.HabitsDoneToday++
				break
			}
		}
	}
	return nil
}
