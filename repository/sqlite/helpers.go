package sqlite

import (
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/fastygo/progress/domain"
)

// timestampLayout is used for created_at columns, stored as text.
const timestampLayout = time.RFC3339Nano

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func parseDate(v string) (time.Time, error) {
	t, err := domain.ParseDate(v)
	if err != nil {
		return time.Time{}, domain.WrapError(domain.ErrCodeInternal, "parse stored date", err)
	}
	return t, nil
}
