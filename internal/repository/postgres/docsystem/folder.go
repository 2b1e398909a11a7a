package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
	docsysRepo "portfolio/internal/domain/repositories/docsystem"
	"portfolio/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const folderColumns = "id, name, slug, description, sort_order, parent_id, created_at, updated_at"

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) docsysRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug, description, sort_order, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.Name,
		folder.Slug,
		folder.Description,
		folder.Order,
		folder.ParentID,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, folder)
		}
		return postgres.TranslateError("create folder", "folder", folder.Slug, err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.TranslateError("get folder", "folder", id, err)
	}
	return folder, nil
}

// GetBySlug finds the folder with slug under parentID (nil = root scope)
func (r *PostgresFolderRepository) GetBySlug(ctx context.Context, parentID *string, slug string) (*models.Folder, error) {
	var row pgx.Row
	executor := postgres.GetExecutor(ctx, r.pool)
	if parentID == nil {
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE parent_id IS NULL AND slug = $1`, folderColumns, r.tables.Folders)
		row = executor.QueryRow(ctx, query, slug)
	} else {
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE parent_id = $1 AND slug = $2`, folderColumns, r.tables.Folders)
		row = executor.QueryRow(ctx, query, *parentID, slug)
	}

	folder, err := scanFolder(row)
	if err != nil {
		return nil, postgres.TranslateError("get folder by slug", "folder", slug, err)
	}
	return folder, nil
}

// Update updates a folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, slug = $2, description = $3, sort_order = $4, parent_id = $5, updated_at = $6
		WHERE id = $7
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		folder.Name,
		folder.Slug,
		folder.Description,
		folder.Order,
		folder.ParentID,
		folder.UpdatedAt,
		folder.ID,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, folder)
		}
		return postgres.TranslateError("update folder", "folder", folder.ID, err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "folder", ID: folder.ID}
	}
	return nil
}

// Delete deletes a folder. Children and documents go with it (ON DELETE CASCADE).
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.TranslateError("delete folder", "folder", id, err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "folder", ID: id}
	}
	return nil
}

// ListAll retrieves every folder in one query
func (r *PostgresFolderRepository) ListAll(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, postgres.TranslateError("list folders", "folder", "", err)
	}
	defer rows.Close()

	folders := make([]models.Folder, 0)
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, domain.NewStoreUnavailable("scan folder", err)
		}
		folders = append(folders, *folder)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreUnavailable("list folders", err)
	}

	return folders, nil
}

// ListAllWithDocuments fetches folders and document metadata in two queries
// and joins them in memory
func (r *PostgresFolderRepository) ListAllWithDocuments(ctx context.Context, filter models.DocumentFilter) ([]models.Folder, error) {
	folders, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filter.WithContent = false
	docs, err := listDocuments(ctx, postgres.GetExecutor(ctx, r.pool), r.tables, "", nil, filter)
	if err != nil {
		return nil, err
	}

	return models.AttachDocuments(folders, docs), nil
}

// ListSummaries returns every folder ordered by sort_order with direct
// document and child counts
func (r *PostgresFolderRepository) ListSummaries(ctx context.Context) ([]models.FolderSummary, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.name, f.slug, f.description, f.sort_order, f.parent_id, f.created_at, f.updated_at,
			(SELECT COUNT(*) FROM %[2]s d WHERE d.folder_id = f.id) AS doc_count,
			(SELECT COUNT(*) FROM %[1]s c WHERE c.parent_id = f.id) AS child_count
		FROM %[1]s f
		ORDER BY f.sort_order ASC, f.name ASC
	`, r.tables.Folders, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, postgres.TranslateError("list folder summaries", "folder", "", err)
	}
	defer rows.Close()

	summaries := make([]models.FolderSummary, 0)
	for rows.Next() {
		var s models.FolderSummary
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Slug,
			&s.Description,
			&s.Order,
			&s.ParentID,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.DocCount,
			&s.ChildCount,
		); err != nil {
			return nil, domain.NewStoreUnavailable("scan folder summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreUnavailable("list folder summaries", err)
	}

	return summaries, nil
}

// conflict builds a ConflictError naming the sibling that owns the slug
func (r *PostgresFolderRepository) conflict(ctx context.Context, folder *models.Folder) error {
	msg := fmt.Sprintf("a folder with slug %q already exists in this location", folder.Slug)
	existing, err := r.GetBySlug(ctx, folder.ParentID, folder.Slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("failed to look up conflicting folder", "slug", folder.Slug, "error", err)
		}
		return fmt.Errorf("%s: %w", msg, domain.ErrConflict)
	}
	return &domain.ConflictError{Message: msg, ResourceType: "folder", ResourceID: existing.ID}
}

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.Name,
		&folder.Slug,
		&folder.Description,
		&folder.Order,
		&folder.ParentID,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}
