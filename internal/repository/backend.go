// Package repository selects and opens the configured storage backend.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"portfolio/internal/config"
	"portfolio/internal/domain/repositories"
	docsysRepo "portfolio/internal/domain/repositories/docsystem"
	"portfolio/internal/repository/postgres"
	postgresDocsys "portfolio/internal/repository/postgres/docsystem"
	"portfolio/internal/repository/sqlite"
)

// Backend bundles the repositories of one storage driver with its
// lifecycle hooks.
type Backend struct {
	Driver    string
	Folders   docsysRepo.FolderRepository
	Documents docsysRepo.DocumentRepository
	TxManager repositories.TransactionManager

	ping        func(ctx context.Context) error
	applySchema func(ctx context.Context) error
	clearData   func(ctx context.Context) error
	close       func() error
}

// Open connects to the backend named by cfg.DatabaseDriver.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverSQLite:
		return openSQLite(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown DATABASE_DRIVER %q (want %s or %s)", cfg.DatabaseDriver, config.DriverPostgres, config.DriverSQLite)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the %s driver", config.DriverPostgres)
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}

	logger.Info("database connected", "driver", config.DriverPostgres, "table_prefix", cfg.TablePrefix)

	return &Backend{
		Driver:    config.DriverPostgres,
		Folders:   postgresDocsys.NewFolderRepository(repoConfig),
		Documents: postgresDocsys.NewDocumentRepository(repoConfig),
		TxManager: postgres.NewTransactionManager(pool, logger),
		ping:      pool.Ping,
		applySchema: func(ctx context.Context) error {
			return postgres.ApplySchema(ctx, pool, tables)
		},
		clearData: func(ctx context.Context) error {
			return postgres.ClearData(ctx, pool, tables)
		},
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

func openSQLite(cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	store, err := sqlite.Open(cfg.SQLitePath, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("database opened", "driver", config.DriverSQLite, "path", store.Path())

	return &Backend{
		Driver:    config.DriverSQLite,
		Folders:   store.FolderRepository(),
		Documents: store.DocumentRepository(),
		TxManager: store.TransactionManager(),
		ping:      store.Ping,
		// migrations already ran in Open
		applySchema: func(context.Context) error { return nil },
		clearData:   store.ClearData,
		close:       store.Close,
	}, nil
}

// Ping checks the store answers.
func (b *Backend) Ping(ctx context.Context) error { return b.ping(ctx) }

// ApplySchema creates missing tables and indexes.
func (b *Backend) ApplySchema(ctx context.Context) error { return b.applySchema(ctx) }

// ClearData deletes every folder and document.
func (b *Backend) ClearData(ctx context.Context) error { return b.clearData(ctx) }

// Close releases the connection pool or database handle.
func (b *Backend) Close() error { return b.close() }
