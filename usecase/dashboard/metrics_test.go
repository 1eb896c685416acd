package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository/memory"
)

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return today.AddDate(0, 0, -n) }

func logsOn(days ...int) []domain.LogEntry {
	logs := make([]domain.LogEntry, 0, len(days))
	for _, d := range days {
		logs = append(logs, domain.LogEntry{Username: "alice", Hours: 1, Mood: 3, Date: daysAgo(d)})
	}
	return logs
}

func TestComputeEmpty(t *testing.T) {
	d := Compute("alice", nil, nil, today)

	assert.Zero(t, d.CompletedCount)
	assert.Zero(t, d.TotalCount)
	assert.Zero(t, d.CompletionPercent)
	assert.Zero(t, d.TotalHours)
	assert.Zero(t, d.AverageMood)
	assert.Zero(t, d.ProductivityScore)
	assert.Zero(t, d.CurrentStreak)
	assert.Equal(t, map[domain.Status]int{domain.StatusPending: 0, domain.StatusCompleted: 0}, d.StatusCounts)
}

func TestComputeAggregates(t *testing.T) {
	tasks := []domain.Task{
		{Status: domain.StatusCompleted},
		{Status: domain.StatusCompleted},
		{Status: domain.StatusPending},
		{Status: domain.StatusCompleted},
	}
	logs := []domain.LogEntry{
		{Hours: 2.5, Mood: 4, Date: today},
		{Hours: 1.5, Mood: 2, Date: daysAgo(1)},
		{Hours: 0, Mood: 5, Date: daysAgo(3)},
	}

	d := Compute("alice", tasks, logs, today)

	assert.Equal(t, 3, d.CompletedCount)
	assert.Equal(t, 4, d.TotalCount)
	assert.InDelta(t, 75.0, d.CompletionPercent, 1e-9)
	assert.InDelta(t, 4.0, d.TotalHours, 1e-9)
	assert.InDelta(t, 11.0/3.0, d.AverageMood, 1e-9)
	assert.InDelta(t, 10.0, d.ProductivityScore, 1e-9)
	assert.Equal(t, 2, d.CurrentStreak)
	assert.Equal(t, 1, d.StatusCounts[domain.StatusPending])
	assert.Equal(t, 3, d.StatusCounts[domain.StatusCompleted])
}

func TestComputeProperties(t *testing.T) {
	statuses := []domain.Status{domain.StatusPending, domain.StatusCompleted}
	for total := 0; total <= 6; total++ {
		for completed := 0; completed <= total; completed++ {
			tasks := make([]domain.Task, 0, total)
			for i := 0; i < total; i++ {
				s := statuses[0]
				if i < completed {
					s = statuses[1]
				}
				tasks = append(tasks, domain.Task{Status: s})
			}
			logs := logsOn(0, 1, 5)[:total%4]

			d := Compute("alice", tasks, logs, today)

			assert.GreaterOrEqual(t, d.CompletionPercent, 0.0)
			assert.LessOrEqual(t, d.CompletionPercent, 100.0)
			if total == 0 {
				assert.Zero(t, d.CompletionPercent)
			}
			assert.Equal(t, completed == 0, d.CompletionPercent == 0)
			assert.GreaterOrEqual(t, d.TotalHours, 0.0)
			assert.Equal(t, len(logs) == 0, d.TotalHours == 0)
			assert.InDelta(t, float64(d.CompletedCount*2)+d.TotalHours, d.ProductivityScore, 1e-9)
		}
	}
}

func TestCurrentStreak(t *testing.T) {
	cases := []struct {
		name string
		days []int
		want int
	}{
		{"three consecutive days ending today", []int{0, 1, 2}, 3},
		{"nothing logged today", []int{1}, 0},
		{"gap yesterday", []int{0, 2}, 1},
		{"duplicates on the same day", []int{0, 0, 1, 1}, 2},
		{"unordered input", []int{2, 0, 1, 4}, 3},
		{"future entries are ignored", []int{-1, 0}, 1},
		{"only future entries", []int{-2}, 0},
		{"no logs", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CurrentStreak(logsOn(tc.days...), today))
		})
	}
}

func TestCurrentStreakNormalizesTimeOfDay(t *testing.T) {
	logs := []domain.LogEntry{{Date: today.Add(15 * time.Hour)}, {Date: daysAgo(1).Add(time.Minute)}}
	assert.Equal(t, 2, CurrentStreak(logs, today.Add(23*time.Hour)))
}

func TestDashboardUseCase(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clock := domain.Clock{Location: time.UTC, Now: func() time.Time { return today.Add(9 * time.Hour) }}
	uc := New(store.Tasks(), store.Logs(), clock, nil)

	_, err := store.Tasks().Create(ctx, &domain.Task{Username: "alice", Status: domain.StatusCompleted, CreatedDate: today})
	require.NoError(t, err)
	_, err = store.Tasks().Create(ctx, &domain.Task{Username: "bob", Status: domain.StatusCompleted, CreatedDate: today})
	require.NoError(t, err)
	_, err = store.Logs().Create(ctx, &domain.LogEntry{Username: "alice", Hours: 3, Mood: 4, Date: today})
	require.NoError(t, err)
	_, err = store.Logs().Create(ctx, &domain.LogEntry{Username: "bob", Hours: 8, Mood: 1, Date: daysAgo(1)})
	require.NoError(t, err)

	d, err := uc.Dashboard(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, d.TotalCount)
	assert.InDelta(t, 3.0, d.TotalHours, 1e-9)
	assert.InDelta(t, 5.0, d.ProductivityScore, 1e-9)
	assert.Equal(t, 1, d.CurrentStreak)

	empty, err := uc.Dashboard(ctx, "carol")
	require.NoError(t, err)
	assert.Zero(t, empty.TotalCount)
	assert.Zero(t, empty.CurrentStreak)

	_, err = uc.Dashboard(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestStreakOfIgnoresDuplicatesAndFuture(t *testing.T) {
	dates := []time.Time{today, today, daysAgo(1), today.AddDate(0, 0, 3)}
	assert.Equal(t, 2, StreakOf(dates, today))
	assert.Zero(t, StreakOf(nil, today))
}
