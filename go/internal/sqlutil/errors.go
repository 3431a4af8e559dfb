package sqlutil

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const uniqueViolation = pq.ErrorCode("23505")

// IsUniqueViolation reports whether err came from a unique index rejecting a write
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// IsNoRows reports whether a :one query matched nothing
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
