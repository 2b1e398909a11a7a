package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"portfolio/internal/domain"
)

func errorCode(err error) int {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()
	}
	return 0
}

func isUniqueViolation(err error) bool {
	code := errorCode(err)
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func isForeignKeyViolation(err error) bool {
	return errorCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

// translateError maps driver errors onto the domain taxonomy
func translateError(op, resource, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return &domain.NotFoundError{Resource: resource, ID: id}
	case isUniqueViolation(err):
		return fmt.Errorf("%s with slug %q already exists in this location: %w", resource, id, domain.ErrConflict)
	case isForeignKeyViolation(err):
		return &domain.ValidationError{Message: fmt.Sprintf("%s references a missing row", resource)}
	default:
		return domain.NewStoreUnavailable(op, err)
	}
}
