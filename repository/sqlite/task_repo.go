package sqlite

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

var taskColumns = []string{"id", "username", "task_name", "category", "priority", "status", "date"}

type taskRow struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Name     string `db:"task_name"`
	Category string `db:"category"`
	Priority string `db:"priority"`
	Status   string `db:"status"`
	Date     string `db:"date"`
}

type taskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository returns a SQLite-backed implementation of TaskRepository.
func NewTaskRepository(db *sqlx.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (int64, error) {
	if task == nil {
		return 0, domain.ErrInvalidPayload
	}

	query, args, err := builder.Insert("tasks").
		Columns(taskColumns[1:]...).
		Values(
			task.Username,
			task.Name,
			string(task.Category),
			string(task.Priority),
			string(task.Status),
			domain.FormatDate(task.CreatedDate),
		).
		ToSql()
	if err != nil {
		return 0, domain.StoreError("build task insert", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, domain.StoreError("create task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.StoreError("create task", err)
	}
	task.ID = id
	return id, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, username string) ([]domain.Task, error) {
	query, args, err := builder.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"username": username}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, domain.StoreError("build task select", err)
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.StoreError("list tasks", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, domain.Task{
			ID:          row.ID,
			Username:    row.Username,
			Name:        row.Name,
			Category:    domain.Category(row.Category),
			Priority:    domain.Priority(row.Priority),
			Status:      domain.Status(row.Status),
			CreatedDate: date,
		})
	}
	return tasks, nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, username string, id int64, status domain.Status) error {
	query, args, err := builder.Update("tasks").
		Set("status", string(status)).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return domain.StoreError("build task update", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.StoreError("update task status", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.StoreError("update task status", err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
