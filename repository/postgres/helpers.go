package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/progress/domain"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// insertError maps a unique violation to dup and anything else to an
// INTERNAL store error.
func insertError(op string, err, dup error) error {
	if isUniqueViolation(err) {
		return dup
	}
	return domain.StoreError(op, err)
}

type scanner interface {
	Scan(dest ...interface{}) error
}
