package domain

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryStudy    Category = "Study"
	CategoryFitness  Category = "Fitness"
	CategoryProject  Category = "Project"
	CategoryPersonal Category = "Personal"
)

// Categories lists the selectable categories in display order.
var Categories = []Category{CategoryStudy, CategoryFitness, CategoryProject, CategoryPersonal}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

var Statuses = []Status{StatusPending, StatusCompleted}

// Task represents a user-owned activity item.
type Task struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	CreatedDate time.Time `json:"created_date"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// Validate checks the user-supplied fields of a task.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if strings.TrimSpace(t.Username) == "" {
		return ErrUnauthorized
	}
	if strings.TrimSpace(t.Name) == "" {
		return Invalid("task name is required")
	}
	if !ParseCategory(string(t.Category)).valid() {
		return Invalid("unknown category %q", t.Category)
	}
	if !ParsePriority(string(t.Priority)).valid() {
		return Invalid("unknown priority %q", t.Priority)
	}
	if !ParseStatus(string(t.Status)).Valid() {
		return Invalid("unknown status %q", t.Status)
	}
	return nil
}

// ParseCategory resolves a category case-insensitively. Unknown values are
// returned unchanged and fail validation.
func ParseCategory(v string) Category {
	for _, c := range Categories {
		if strings.EqualFold(v, string(c)) {
			return c
		}
	}
	return Category(v)
}

func (c Category) valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func ParsePriority(v string) Priority {
	for _, p := range Priorities {
		if strings.EqualFold(v, string(p)) {
			return p
		}
	}
	return Priority(v)
}

func (p Priority) valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

func ParseStatus(v string) Status {
	for _, s := range Statuses {
		if strings.EqualFold(v, string(s)) {
			return s
		}
	}
	return Status(v)
}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}
