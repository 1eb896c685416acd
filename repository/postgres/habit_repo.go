package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

type habitRepository struct {
	pool *pgxpool.Pool
}

// NewHabitRepository returns a Postgres-backed habit store.
func NewHabitRepository(pool *pgxpool.Pool) repository.HabitRepository {
	return &habitRepository{pool: pool}
}

func (r *habitRepository) Create(ctx context.Context, habit *domain.Habit) (int64, error) {
	if habit == nil {
		return 0, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO habits (username, title, date)
	VALUES ($1, $2, $3)
	RETURNING id
	`
	if err := r.pool.QueryRow(ctx, query, habit.Username, habit.Title, habit.CreatedDate).
		Scan(&habit.ID); err != nil {
		return 0, domain.StoreError("create habit", err)
	}
	return habit.ID, nil
}

func (r *habitRepository) ListByUser(ctx context.Context, username string) ([]domain.Habit, error) {
	const query = `
	SELECT id, username, title, date
	FROM habits
	WHERE username = $1
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, domain.StoreError("list habits", err)
	}
	defer rows.Close()

	habits := []domain.Habit{}
	for rows.Next() {
		var habit domain.Habit
		if err := rows.Scan(&habit.ID, &habit.Username, &habit.Title, &habit.CreatedDate); err != nil {
			return nil, domain.StoreError("scan habit", err)
		}
		habit.CreatedDate = domain.DateOf(habit.CreatedDate)
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("list habits", err)
	}
	return habits, nil
}

func (r *habitRepository) CheckIn(ctx context.Context, username string, id int64, date time.Time) (bool, error) {
	// One statement: the ownership check and the idempotent insert.
	const query = `
	WITH owned AS (
		SELECT id FROM habits WHERE id = $1 AND username = $2
	), inserted AS (
		INSERT INTO habit_checkins (habit_id, date)
		SELECT id, $3::date FROM owned
		ON CONFLICT DO NOTHING
		RETURNING habit_id
	)
	SELECT EXISTS (SELECT 1 FROM owned), EXISTS (SELECT 1 FROM inserted)
	`
	var owned, inserted bool
	if err := r.pool.QueryRow(ctx, query, id, username, domain.DateOf(date)).
		Scan(&owned, &inserted); err != nil {
		return false, domain.StoreError("check in habit", err)
	}
	if !owned {
		return false, domain.ErrHabitNotFound
	}
	return inserted, nil
}

func (r *habitRepository) CheckIns(ctx context.Context, username string) (map[int64][]time.Time, error) {
	const query = `
	SELECT c.habit_id, c.date
	FROM habit_checkins c
	JOIN habits h ON h.id = c.habit_id
	WHERE h.username = $1
	ORDER BY c.habit_id, c.date
	`
	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, domain.StoreError("list check-ins", err)
	}
	defer rows.Close()

	out := make(map[int64][]time.Time)
	for rows.Next() {
		var (
			habitID int64
			date    time.Time
		)
		if err := rows.Scan(&habitID, &date); err != nil {
			return nil, domain.StoreError("scan check-in", err)
		}
		out[habitID] = append(out[habitID], domain.DateOf(date))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("list check-ins", err)
	}
	return out, nil
}
