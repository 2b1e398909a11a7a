package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"portfolio/internal/domain"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgInvalidTextError checks if error is a malformed literal, such as a
// non-UUID string compared against a UUID column
func IsPgInvalidTextError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 22P02 = invalid_text_representation
		return pgErr.Code == "22P02"
	}
	return false
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

// TranslateError maps a driver error onto the domain taxonomy: no rows or
// an id that isn't a valid UUID becomes NotFound for resource/id, a foreign key violation becomes a
// validation error, anything else is a store failure. Unique violations are
// left to callers that can name the conflicting row.
func TranslateError(op, resource, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case IsPgNoRowsError(err), IsPgInvalidTextError(err):
		return &domain.NotFoundError{Resource: resource, ID: id}
	case IsPgForeignKeyError(err):
		return &domain.ValidationError{Message: fmt.Sprintf("%s references a missing row", resource)}
	default:
		return domain.NewStoreUnavailable(op, err)
	}
}
