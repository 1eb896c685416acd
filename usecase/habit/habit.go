// Package habit tracks recurring activities checked off once per day.
package habit

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
	"github.com/fastygo/progress/usecase/dashboard"
)

type UseCase struct {
	habits repository.HabitRepository
	clock  domain.Clock
	logger *zap.Logger
}

func New(habits repository.HabitRepository, clock domain.Clock, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{habits: habits, clock: clock, logger: logger}
}

// CreateHabit stores a new habit dated today.
func (uc *UseCase) CreateHabit(ctx context.Context, username, title string) (*domain.Habit, error) {
	habit := &domain.Habit{
		Username:    username,
		Title:       strings.TrimSpace(title),
		CreatedDate: uc.clock.Today(),
	}
	if err := habit.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.habits.Create(ctx, habit); err != nil {
		uc.logger.Error("create habit failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return habit, nil
}

// ListHabits returns the user's habits with today's state and streaks.
func (uc *UseCase) ListHabits(ctx context.Context, username string) ([]domain.HabitStatus, error) {
	if username == "" {
		return nil, domain.ErrUnauthorized
	}
	habits, err := uc.habits.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	checkIns, err := uc.habits.CheckIns(ctx, username)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Today()
	out := make([]domain.HabitStatus, 0, len(habits))
	for _, h := range habits {
		out = append(out, status(h, checkIns[h.ID], today))
	}
	return out, nil
}

// MarkDone checks the habit in for today. Marking it twice on one day
// changes nothing.
func (uc *UseCase) MarkDone(ctx context.Context, username string, id int64) (*domain.HabitStatus, error) {
	if username == "" {
		return nil, domain.ErrUnauthorized
	}
	added, err := uc.habits.CheckIn(ctx, username, id, uc.clock.Today())
	if err != nil {
		return nil, err
	}
	if added {
		uc.logger.Debug("habit checked in", zap.String("username", username), zap.Int64("habit_id", id))
	}

	all, err := uc.ListHabits(ctx, username)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, domain.ErrHabitNotFound
}

func status(h domain.Habit, dates []time.Time, today time.Time) domain.HabitStatus {
	st := domain.HabitStatus{Habit: h, Streak: dashboard.StreakOf(dates, today)}
	for _, d := range dates {
		if d.Equal(today) {
			st.DoneToday = true
			break
		}
	}
	return st
}
