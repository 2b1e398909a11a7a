package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"portfolio/internal/domain"
	"portfolio/internal/domain/repositories"
)

// executor is implemented by *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txContextKey struct{}

// conn returns the transaction in ctx, or the shared handle
func (s *Store) conn(ctx context.Context) executor {
	if tx, ok := ctx.Value(txContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

type txManager struct {
	store *Store
}

// ExecTx runs fn inside a transaction carried by the context
func (m *txManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tx, err := m.store.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStoreUnavailable("begin transaction", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			m.store.logger.Warn("rollback failed", "error", err)
		}
	}()

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStoreUnavailable("commit transaction", err)
	}
	return nil
}
