package sqlite

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

var habitColumns = []string{"id", "username", "title", "date"}

type habitRow struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Title    string `db:"title"`
	Date     string `db:"date"`
}

type checkInRow struct {
	HabitID int64  `db:"habit_id"`
	Date    string `db:"date"`
}

type habitRepository struct {
	db *sqlx.DB
}

// NewHabitRepository returns a SQLite-backed habit store.
func NewHabitRepository(db *sqlx.DB) repository.HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(ctx context.Context, habit *domain.Habit) (int64, error) {
	if habit == nil {
		return 0, domain.ErrInvalidPayload
	}

	query, args, err := builder.Insert("habits").
		Columns(habitColumns[1:]...).
		Values(habit.Username, habit.Title, domain.FormatDate(habit.CreatedDate)).
		ToSql()
	if err != nil {
		return 0, domain.StoreError("build habit insert", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, domain.StoreError("create habit", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.StoreError("create habit", err)
	}
	habit.ID = id
	return id, nil
}

func (r *habitRepository) ListByUser(ctx context.Context, username string) ([]domain.Habit, error) {
	query, args, err := builder.Select(habitColumns...).
		From("habits").
		Where(sq.Eq{"username": username}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, domain.StoreError("build habit select", err)
	}

	var rows []habitRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.StoreError("list habits", err)
	}

	habits := make([]domain.Habit, 0, len(rows))
	for _, row := range rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, err
		}
		habits = append(habits, domain.Habit{
			ID:          row.ID,
			Username:    row.Username,
			Title:       row.Title,
			CreatedDate: date,
		})
	}
	return habits, nil
}

func (r *habitRepository) CheckIn(ctx context.Context, username string, id int64, date time.Time) (bool, error) {
	query, args, err := builder.Select("COUNT(*)").
		From("habits").
		Where(sq.Eq{"id": id, "username": username}).
		ToSql()
	if err != nil {
		return false, domain.StoreError("build habit lookup", err)
	}
	var owned int
	if err := r.db.GetContext(ctx, &owned, query, args...); err != nil {
		return false, domain.StoreError("lookup habit", err)
	}
	if owned == 0 {
		return false, domain.ErrHabitNotFound
	}

	query, args, err = builder.Insert("habit_checkins").
		Options("OR IGNORE").
		Columns("habit_id", "date").
		Values(id, domain.FormatDate(date)).
		ToSql()
	if err != nil {
		return false, domain.StoreError("build check-in insert", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, domain.StoreError("check in habit", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, domain.StoreError("check in habit", err)
	}
	return affected > 0, nil
}

func (r *habitRepository) CheckIns(ctx context.Context, username string) (map[int64][]time.Time, error) {
	query, args, err := builder.Select("c.habit_id", "c.date").
		From("habit_checkins c").
		Join("habits h ON h.id = c.habit_id").
		Where(sq.Eq{"h.username": username}).
		OrderBy("c.habit_id", "c.date").
		ToSql()
	if err != nil {
		return nil, domain.StoreError("build check-in select", err)
	}

	var rows []checkInRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.StoreError("list check-ins", err)
	}

	out := make(map[int64][]time.Time)
	for _, row := range rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, err
		}
		out[row.HabitID] = append(out[row.HabitID], date)
	}
	return out, nil
}
