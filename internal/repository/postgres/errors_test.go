package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"portfolio/internal/domain"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: domain.ErrNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: domain.ErrNotFound},
		{name: "malformed uuid", err: &pgconn.PgError{Code: "22P02"}, want: domain.ErrNotFound},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: domain.ErrValidation},
		{name: "connection failure", err: errors.New("dial tcp: connection refused"), want: domain.ErrStoreUnavailable},
		{name: "other pg error", err: &pgconn.PgError{Code: "57014"}, want: domain.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError("op", "folder", "id-1", tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	assert.NoError(t, TranslateError("op", "folder", "id", nil))
}

func TestTranslateError_KeepsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := TranslateError("list folders", "folder", "", cause)

	assert.ErrorIs(t, err, cause)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestTranslateError_MalformedIDIsNotAnOutage(t *testing.T) {
	err := TranslateError("get folder", "folder", "abc", fmt.Errorf("query: %w", &pgconn.PgError{Code: "22P02"}))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.EqualError(t, err, "folder abc not found")
}

func TestIsPgDuplicateError(t *testing.T) {
	assert.True(t, IsPgDuplicateError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsPgDuplicateError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsPgDuplicateError(errors.New("x")))
}
