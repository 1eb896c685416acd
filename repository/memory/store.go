// Package memory holds process-local repository implementations used by the
// "memory" storage driver and by use-case tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

// Store keeps users, tasks, logs and habits in maps guarded by one mutex.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	users    map[string]domain.User
	tasks    map[int64]domain.Task
	logs     map[int64]domain.LogEntry
	habits   map[int64]domain.Habit
	checkIns map[int64]map[time.Time]struct{}
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		tasks:    make(map[int64]domain.Task),
		logs:     make(map[int64]domain.LogEntry),
		habits:   make(map[int64]domain.Habit),
		checkIns: make(map[int64]map[time.Time]struct{}),
	}
}

func (s *Store) Users() repository.UserRepository { return userRepository{s} }
func (s *Store) Tasks() repository.TaskRepository { return taskRepository{s} }
func (s *Store) Logs() repository.LogRepository { return logRepository{s} }
func (s *Store) Habits() repository.HabitRepository { return habitRepository{s} }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type userRepository struct{ s *Store }

func (r userRepository) Create(_ context.Context, user *domain.User) (int64, error) {
	if user == nil {
		return 0, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.users[user.Username]; exists {
		return 0, domain.ErrDuplicateUser
	}
	user.ID = r.s.id()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.s.users[user.Username] = *user
	return user.ID, nil
}

func (r userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

type taskRepository struct{ s *Store }

func (r taskRepository) Create(_ context.Context, task *domain.Task) (int64, error) {
	if task == nil {
		return 0, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	task.ID = r.s.id()
	r.s.tasks[task.ID] = *task
	return task.ID, nil
}

func (r taskRepository) ListByUser(_ context.Context, username string) ([]domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tasks := []domain.Task{}
	for _, t := range r.s.tasks {
		if t.Username == username {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (r taskRepository) UpdateStatus(_ context.Context, username string, id int64, status domain.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.Username != username {
		return domain.ErrTaskNotFound
	}
	t.Status = status
	r.s.tasks[id] = t
	return nil
}

type logRepository struct{ s *Store }

func (r logRepository) Create(_ context.Context, entry *domain.LogEntry) (int64, error) {
	if entry == nil {
		return 0, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry.ID = r.s.id()
	r.s.logs[entry.ID] = *entry
	return entry.ID, nil
}

func (r logRepository) ListByUser(_ context.Context, username string) ([]domain.LogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	entries := []domain.LogEntry{}
	for _, e := range r.s.logs {
		if e.Username == username {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

type habitRepository struct{ s *Store }

func (r habitRepository) Create(_ context.Context, habit *domain.Habit) (int64, error) {
	if habit == nil {
		return 0, domain.ErrInvalidPayload
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	habit.ID = r.s.id()
	r.s.habits[habit.ID] = *habit
	return habit.ID, nil
}

func (r habitRepository) ListByUser(_ context.Context, username string) ([]domain.Habit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	habits := []domain.Habit{}
	for _, h := range r.s.habits {
		if h.Username == username {
			habits = append(habits, h)
		}
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })
	return habits, nil
}

func (r habitRepository) CheckIn(_ context.Context, username string, id int64, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.habits[id]
	if !ok || h.Username != username {
		return false, domain.ErrHabitNotFound
	}
	day := domain.DateOf(date)
	days := r.s.checkIns[id]
	if days == nil {
		days = make(map[time.Time]struct{})
		r.s.checkIns[id] = days
	}
	if _, done := days[day]; done {
		return false, nil
	}
	days[day] = struct{}{}
	return true, nil
}

func (r habitRepository) CheckIns(_ context.Context, username string) (map[int64][]time.Time, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[int64][]time.Time)
	for id, days := range r.s.checkIns {
		if r.s.habits[id].Username != username {
			continue
		}
		dates := make([]time.Time, 0, len(days))
		for d := range days {
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		out[id] = dates
	}
	return out, nil
}
