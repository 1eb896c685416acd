// Package export dumps a user's tasks and logs as CSV.
package export

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fastygo/progress/repository"
)

const (
	TasksFile = "tasks.csv"
	LogsFile  = "logs.csv"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logs   repository.LogRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logs repository.LogRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{tasks: tasks, logs: logs, logger: logger}
}

// Tasks writes the user's tasks to w.
func (uc *UseCase) Tasks(ctx context.Context, username string, w io.Writer) error {
	tasks, err := uc.tasks.ListByUser(ctx, username)
	if err != nil {
		return err
	}
	return WriteTasks(w, tasks)
}

// Logs writes the user's daily logs to w.
func (uc *UseCase) Logs(ctx context.Context, username string, w io.Writer) error {
	logs, err := uc.logs.ListByUser(ctx, username)
	if err != nil {
		return err
	}
	return WriteLogs(w, logs)
}

// ToDir writes tasks.csv and logs.csv into dir and returns their paths.
func (uc *UseCase) ToDir(ctx context.Context, username, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	targets := []struct {
		name  string
		write func(context.Context, string, io.Writer) error
	}{
		{TasksFile, uc.Tasks},
		{LogsFile, uc.Logs},
	}

	paths := make([]string, 0, len(targets))
	for _, target := range targets {
		path := filepath.Join(dir, target.name)
		if err := writeFile(ctx, path, username, target.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	uc.logger.Info("export written", zap.String("username", username), zap.String("dir", dir))
	return paths, nil
}

func writeFile(ctx context.Context, path, username string, write func(context.Context, string, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(ctx, username, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
