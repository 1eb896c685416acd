package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

// Input is the add-task form.
type Input struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
}

type UseCase struct {
	tasks  repository.TaskRepository
	clock  domain.Clock
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, clock domain.Clock, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, username string) ([]domain.Task, error) {
	if username == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.tasks.ListByUser(ctx, username)
}

// CreateTask stores a task dated today. Status defaults to Pending.
func (uc *UseCase) CreateTask(ctx context.Context, username string, in Input) (*domain.Task, error) {
	status := domain.StatusPending
	if strings.TrimSpace(in.Status) != "" {
		status = domain.ParseStatus(strings.TrimSpace(in.Status))
	}
	task := &domain.Task{
		Username:    username,
		Name:        strings.TrimSpace(in.Name),
		Category:    domain.ParseCategory(strings.TrimSpace(in.Category)),
		Priority:    domain.ParsePriority(strings.TrimSpace(in.Priority)),
		Status:      status,
		CreatedDate: uc.clock.Today(),
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.tasks.Create(ctx, task); err != nil {
		uc.logger.Error("create task failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return task, nil
}

// UpdateStatus changes the status of one of the user's tasks.
func (uc *UseCase) UpdateStatus(ctx context.Context, username string, id int64, status string) error {
	if username == "" {
		return domain.ErrUnauthorized
	}
	parsed := domain.ParseStatus(strings.TrimSpace(status))
	if !parsed.Valid() {
		return domain.Invalid("unknown status %q", status)
	}
	return uc.tasks.UpdateStatus(ctx, username, id, parsed)
}
