package domain

import (
	"math"
	"strings"
	"time"
)

const (
	MinMood = 1
	MaxMood = 5
)

// LogEntry is one daily activity record. Entries are immutable once stored.
type LogEntry struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Hours    float64   `json:"hours"`
	Notes    string    `json:"notes"`
	Mood     int       `json:"mood"`
	Date     time.Time `json:"date"`
}

func (l *LogEntry) Validate() error {
	if l == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(l.Username) == "" {
		return ErrUnauthorized
	}
	if l.Hours < 0 || math.IsNaN(l.Hours) || math.IsInf(l.Hours, 0) {
		return Invalid("hours must be a non-negative number")
	}
	if l.Mood < MinMood || l.Mood > MaxMood {
		return Invalid("mood must be between %d and %d", MinMood, MaxMood)
	}
	if l.Date.IsZero() {
		return Invalid("date is required")
	}
	return nil
}
