package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (int64, error) {
	if task == nil {
		return 0, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO tasks (username, task_name, category, priority, status, date)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`

	if err := r.pool.QueryRow(ctx, query,
		task.Username,
		task.Name,
		string(task.Category),
		string(task.Priority),
		string(task.Status),
		task.CreatedDate,
	).Scan(&task.ID); err != nil {
		return 0, domain.StoreError("create task", err)
	}
	return task.ID, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, username string) ([]domain.Task, error) {
	const query = `
	SELECT id, username, task_name, category, priority, status, date
	FROM tasks
	WHERE username = $1
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, domain.StoreError("list tasks", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, domain.StoreError("scan task", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("list tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, username string, id int64, status domain.Status) error {
	const query = `UPDATE tasks SET status = $3 WHERE id = $1 AND username = $2`
	tag, err := r.pool.Exec(ctx, query, id, username, string(status))
	if err != nil {
		return domain.StoreError("update task status", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		task                       domain.Task
		category, priority, status string
	)
	if err := row.Scan(
		&task.ID,
		&task.Username,
		&task.Name,
		&category,
		&priority,
		&status,
		&task.CreatedDate,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task.Category = domain.Category(category)
	task.Priority = domain.Priority(priority)
	task.Status = domain.Status(status)
	task.CreatedDate = domain.DateOf(task.CreatedDate)
	return &task, nil
}
