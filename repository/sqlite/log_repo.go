package sqlite

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/fastygo/progress/domain"
	"github.com/fastygo/progress/repository"
)

var logColumns = []string{"id", "username", "hours", "notes", "mood", "date"}

type logRow struct {
	ID       int64   `db:"id"`
	Username string  `db:"username"`
	Hours    float64 `db:"hours"`
	Notes    string  `db:"notes"`
	Mood     int     `db:"mood"`
	Date     string  `db:"date"`
}

type logRepository struct {
	db *sqlx.DB
}

// NewLogRepository returns a SQLite-backed daily log store.
func NewLogRepository(db *sqlx.DB) repository.LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Create(ctx context.Context, entry *domain.LogEntry) (int64, error) {
	if entry == nil {
		return 0, domain.ErrInvalidPayload
	}

	query, args, err := builder.Insert("daily_logs").
		Columns(logColumns[1:]...).
		Values(entry.Username, entry.Hours, entry.Notes, entry.Mood, domain.FormatDate(entry.Date)).
		ToSql()
	if err != nil {
		return 0, domain.StoreError("build log insert", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, domain.StoreError("create log", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.StoreError("create log", err)
	}
	entry.ID = id
	return id, nil
}

func (r *logRepository) ListByUser(ctx context.Context, username string) ([]domain.LogEntry, error) {
	query, args, err := builder.Select(logColumns...).
		From("daily_logs").
		Where(sq.Eq{"username": username}).
		OrderBy("date", "id").
		ToSql()
	if err != nil {
		return nil, domain.StoreError("build log select", err)
	}

	var rows []logRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.StoreError("list logs", err)
	}

	entries := make([]domain.LogEntry, 0, len(rows))
	for _, row := range rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.LogEntry{
			ID:       row.ID,
			Username: row.Username,
			Hours:    row.Hours,
			Notes:    row.Notes,
			Mood:     row.Mood,
			Date:     date,
		})
	}
	return entries, nil
}
