package habit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository/memory"
	"github.com/fastygo/progress/usecase/dashboard"
)

type movableClock struct{ now time.Time }

func (c *movableClock) clock() domain.Clock {
	return domain.Clock{Location: time.UTC, Now: func() time.Time { return c.now }}
}

func TestCreateHabit(t *testing.T) {
	ctx := context.Background()
	mc := &movableClock{now: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
	uc := New(memory.NewStore().Habits(), mc.clock(), nil)

	h, err := uc.CreateHabit(ctx, "alice", "  Stretch ")
	require.NoError(t, err)
	assert.Equal(t, "Stretch", h.Title)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), h.CreatedDate)

	_, err = uc.CreateHabit(ctx, "alice", " ")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	_, err = uc.CreateHabit(ctx, "", "Read")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMarkDoneBuildsStreak(t *testing.T) {
	ctx := context.Background()
	mc := &movableClock{now: time.Date(2026, 10, 17, 21, 0, 0, 0, time.UTC)}
	uc := New(memory.NewStore().Habits(), mc.clock(), nil)

	h, err := uc.CreateHabit(ctx, "alice", "Stretch")
	require.NoError(t, err)

	st, err := uc.MarkDone(ctx, "alice", h.ID)
	require.NoError(t, err)
	assert.True(t, st.DoneToday)
	assert.Equal(t, 1, st.Streak)

	again, err := uc.MarkDone(ctx, "alice", h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Streak)

	mc.now = mc.now.Add(24 * time.Hour)
	list, err := uc.ListHabits(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].DoneToday)
	assert.Equal(t, 0, list[0].Streak)

	st, err = uc.MarkDone(ctx, "alice", h.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Streak)

	// A skipped day resets the streak.
	mc.now = mc.now.Add(48 * time.Hour)
	st, err = uc.MarkDone(ctx, "alice", h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Streak)
}

func TestHabitsAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	mc := &movableClock{now: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
	store := memory.NewStore()
	uc := New(store.Habits(), mc.clock(), nil)

	h, err := uc.CreateHabit(ctx, "alice", "Stretch")
	require.NoError(t, err)

	_, err = uc.MarkDone(ctx, "bob", h.ID)
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	_, err = uc.MarkDone(ctx, "alice", 999)
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)

	bobs, err := uc.ListHabits(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobs)

	_, err = uc.CreateHabit(ctx, "alice", "Read")
	require.NoError(t, err)
	_, err = uc.MarkDone(ctx, "alice", h.ID)
	require.NoError(t, err)

	d, err := dashboard.New(store.Tasks(), store.Logs(), mc.clock(), nil).WithHabits(store.Habits()).Dashboard(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, d.HabitCount)
	assert.Equal(t, 1, d.HabitsDoneToday)
}
