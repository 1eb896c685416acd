package domain

import (
	"strings"
	"time"
)

// Habit is a recurring activity a user ticks off at most once per day.
type Habit struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Title       string    `json:"title"`
	CreatedDate time.Time `json:"created_date"`
}

func (h *Habit) Validate() error {
	if h == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(h.Username) == "" {
		return ErrUnauthorized
	}
	if strings.TrimSpace(h.Title) == "" {
		return Invalid("habit title is required")
	}
	if h.CreatedDate.IsZero() {
		return Invalid("date is required")
	}
	return nil
}

// HabitStatus is a habit together with what its check-ins say about today.
type HabitStatus struct {
	Habit
	DoneToday bool `json:"done_today"`
	Streak    int  `json:"streak"`
}
