package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

type logRepository struct {
	pool *pgxpool.Pool
}

// NewLogRepository returns a Postgres-backed daily log store.
func NewLogRepository(pool *pgxpool.Pool) repository.LogRepository {
	return &logRepository{pool: pool}
}

func (r *logRepository) Create(ctx context.Context, entry *domain.LogEntry) (int64, error) {
	if entry == nil {
		return 0, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO daily_logs (username, hours, notes, mood, date)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`
	if err := r.pool.QueryRow(ctx, query,
		entry.Username,
		entry.Hours,
		entry.Notes,
		entry.Mood,
		entry.Date,
	).Scan(&entry.ID); err != nil {
		return 0, domain.StoreError("create log", err)
	}
	return entry.ID, nil
}

func (r *logRepository) ListByUser(ctx context.Context, username string) ([]domain.LogEntry, error) {
	const query = `
	SELECT id, username, hours, notes, mood, date
	FROM daily_logs
	WHERE username = $1
	ORDER BY date, id
	`
	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, domain.StoreError("list logs", err)
	}
	defer rows.Close()

	entries := []domain.LogEntry{}
	for rows.Next() {
		var entry domain.LogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Username,
			&entry.Hours,
			&entry.Notes,
			&entry.Mood,
			&entry.Date,
		); err != nil {
			return nil, domain.StoreError("scan log", err)
		}
		entry.Date = domain.DateOf(entry.Date)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("list logs", err)
	}
	return entries, nil
}
