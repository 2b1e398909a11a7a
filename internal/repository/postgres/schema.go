package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// RenderSchema returns the DDL for the docs tables with their prefixed names
func RenderSchema(tables *TableNames) string {
	return strings.NewReplacer(
		"{{folders}}", tables.Folders,
		"{{documents}}", tables.Documents,
	).Replace(schemaSQL)
}

// ApplySchema creates the docs tables and indexes if they do not exist
func ApplySchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	if _, err := pool.Exec(ctx, RenderSchema(tables)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// ClearData removes every folder and document. Documents go with their
// folders through the cascade.
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	query := fmt.Sprintf("TRUNCATE %s, %s", tables.Documents, tables.Folders)
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
