package mysql

import (
	"database/sql"
	"errors"
)

// IsRecordNotFoundError checks if no rows was returned or not.
func IsRecordNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
