package domain

// Dashboard holds the aggregates derived from a user's tasks and logs.
type Dashboard struct {
	Username          string         `json:"username"`
	CompletedCount    int            `json:"completed_count"`
	TotalCount        int            `json:"total_count"`
	CompletionPercent float64        `json:"completion_percent"`
	TotalHours        float64        `json:"total_hours"`
	AverageMood       float64        `json:"average_mood"`
	ProductivityScore float64        `json:"productivity_score"`
	CurrentStreak     int            `json:"current_streak"`
	StatusCounts      map[Status]int `json:"status_counts"`
	HabitCount        int            `json:"habit_count"`
	HabitsDoneToday   int            `json:"habits_done_today"`
}
