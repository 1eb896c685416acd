package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

// Profile is the public view of an account plus record counts.
type Profile struct {
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
	Tasks     int    `json:"tasks"`
	Logs      int    `json:"logs"`
}

type UseCase struct {
	users  repository.UserRepository
	tasks  repository.TaskRepository
	logs   repository.LogRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, tasks repository.TaskRepository, logs repository.LogRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tasks:  tasks,
		logs:   logs,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, username string) (*Profile, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	tasks, err := uc.tasks.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	logs, err := uc.logs.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Profile{
		Username:  user.Username,
		CreatedAt: domain.FormatDate(user.CreatedAt),
		Tasks:     len(tasks),
		Logs:      len(logs),
	}, nil
}
