package dashboard

import (
	"time"

	"github.com/fastygo/progress/domain"
)

// completedWeight is how much one completed task adds to the productivity
// score; each logged hour adds 1.
const completedWeight = 2

// Compute derives the dashboard aggregates from one user's records. Empty
// inputs produce zero values.
func Compute(username string, tasks []domain.Task, logs []domain.LogEntry, today time.Time) domain.Dashboard {
	d := domain.Dashboard{
		Username: username,
		StatusCounts: map[domain.Status]int{
			domain.StatusPending:   0,
			domain.StatusCompleted: 0,
		},
	}

	for i := range tasks {
		d.TotalCount++
		d.StatusCounts[tasks[i].Status]++
		if tasks[i].IsCompleted() {
			d.CompletedCount++
		}
	}
	if d.TotalCount > 0 {
		d.CompletionPercent = float64(d.CompletedCount) / float64(d.TotalCount) * 100
	}

	moodSum := 0
	for i := range logs {
		d.TotalHours += logs[i].Hours
		moodSum += logs[i].Mood
	}
	if len(logs) > 0 {
		d.AverageMood = float64(moodSum) / float64(len(logs))
	}

	d.ProductivityScore = float64(d.CompletedCount*completedWeight) + d.TotalHours
	d.CurrentStreak = CurrentStreak(logs, today)
	return d
}

// CurrentStreak counts consecutive days with at least one log, walking back
// from today. No entry today means a streak of zero.
func CurrentStreak(logs []domain.LogEntry, today time.Time) int {
	dates := make([]time.Time, len(logs))
	for i := range logs {
		dates[i] = logs[i].Date
	}
	return StreakOf(dates, today)
}

// StreakOf counts consecutive calendar days ending today that appear in dates.
// Duplicates and future dates do not extend it.
func StreakOf(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	days := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		days[domain.DateOf(d)] = struct{}{}
	}

	day := domain.DateOf(today)
	streak := 0
	for streak < len(days) {
		if _, ok := days[day]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
