package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
)

const folderColumns = "id, name, slug, description, sort_order, parent_id, created_at, updated_at"

type folderRepository struct {
	store *Store
}

func (r *folderRepository) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = uuid.NewString()
	_, err := r.store.conn(ctx).ExecContext(ctx, `
		INSERT INTO doc_folders (id, name, slug, description, sort_order, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, folder.ID, folder.Name, folder.Slug, folder.Description, folder.Order, folder.ParentID,
		folder.CreatedAt.UTC(), folder.UpdatedAt.UTC())
	if err != nil {
		folder.ID = ""
		return r.conflictOr(ctx, folder, translateError("create folder", "folder", folder.Slug, err))
	}
	return nil
}

func (r *folderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	row := r.store.conn(ctx).QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM doc_folders WHERE id = ?", folderColumns), id)
	folder, err := scanFolder(row)
	if err != nil {
		return nil, translateError("get folder", "folder", id, err)
	}
	return folder, nil
}

func (r *folderRepository) GetBySlug(ctx context.Context, parentID *string, slug string) (*models.Folder, error) {
	var row *sql.Row
	if parentID == nil {
		row = r.store.conn(ctx).QueryRowContext(ctx,
			fmt.Sprintf("SELECT %s FROM doc_folders WHERE parent_id IS NULL AND slug = ?", folderColumns), slug)
	} else {
		row = r.store.conn(ctx).QueryRowContext(ctx,
			fmt.Sprintf("SELECT %s FROM doc_folders WHERE parent_id = ? AND slug = ?", folderColumns), *parentID, slug)
	}
	folder, err := scanFolder(row)
	if err != nil {
		return nil, translateError("get folder by slug", "folder", slug, err)
	}
	return folder, nil
}

func (r *folderRepository) Update(ctx context.Context, folder *models.Folder) error {
	result, err := r.store.conn(ctx).ExecContext(ctx, `
		UPDATE doc_folders
		SET name = ?, slug = ?, description = ?, sort_order = ?, parent_id = ?, updated_at = ?
		WHERE id = ?
	`, folder.Name, folder.Slug, folder.Description, folder.Order, folder.ParentID, folder.UpdatedAt.UTC(), folder.ID)
	if err != nil {
		return r.conflictOr(ctx, folder, translateError("update folder", "folder", folder.Slug, err))
	}
	return requireRow(result, "folder", folder.ID)
}

func (r *folderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.store.conn(ctx).ExecContext(ctx, "DELETE FROM doc_folders WHERE id = ?", id)
	if err != nil {
		return translateError("delete folder", "folder", id, err)
	}
	return requireRow(result, "folder", id)
}

func (r *folderRepository) ListAll(ctx context.Context) ([]models.Folder, error) {
	rows, err := r.store.conn(ctx).QueryContext(ctx, fmt.Sprintf("SELECT %s FROM doc_folders", folderColumns))
	if err != nil {
		return nil, translateError("list folders", "folder", "", err)
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

func (r *folderRepository) ListAllWithDocuments(ctx context.Context, filter models.DocumentFilter) ([]models.Folder, error) {
	folders, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	filter.WithContent = false
	docs, err := listDocuments(ctx, r.store.conn(ctx), "", nil, filter)
	if err != nil {
		return nil, err
	}
	return models.AttachDocuments(folders, docs), nil
}

func (r *folderRepository) ListSummaries(ctx context.Context) ([]models.FolderSummary, error) {
	rows, err := r.store.conn(ctx).QueryContext(ctx, `
		SELECT f.id, f.name, f.slug, f.description, f.sort_order, f.parent_id, f.created_at, f.updated_at,
			(SELECT COUNT(*) FROM docs d WHERE d.folder_id = f.id),
			(SELECT COUNT(*) FROM doc_folders c WHERE c.parent_id = f.id)
		FROM doc_folders f
		ORDER BY f.sort_order ASC, f.name ASC
	`)
	if err != nil {
		return nil, translateError("list folder summaries", "folder", "", err)
	}
	defer rows.Close()

	summaries := make([]models.FolderSummary, 0)
	for rows.Next() {
		var s models.FolderSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.Order, &s.ParentID,
			&s.CreatedAt, &s.UpdatedAt, &s.DocCount, &s.ChildCount); err != nil {
			return nil, domain.NewStoreUnavailable("scan folder summary", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreUnavailable("list folder summaries", err)
	}
	return summaries, nil
}

// conflictOr upgrades a conflict to one naming the sibling that owns the slug
func (r *folderRepository) conflictOr(ctx context.Context, folder *models.Folder, err error) error {
	if !errors.Is(err, domain.ErrConflict) {
		return err
	}
	existing, lookupErr := r.GetBySlug(ctx, folder.ParentID, folder.Slug)
	if lookupErr != nil {
		return err
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a folder with slug %q already exists in this location", folder.Slug),
		ResourceType: "folder",
		ResourceID:   existing.ID,
	}
}

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*models.Folder, error) {
	var folder models.Folder
	if err := row.Scan(&folder.ID, &folder.Name, &folder.Slug, &folder.Description, &folder.Order,
		&folder.ParentID, &folder.CreatedAt, &folder.UpdatedAt); err != nil {
		return nil, err
	}
	return &folder, nil
}

func requireRow(result sql.Result, resource, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return domain.NewStoreUnavailable("rows affected", err)
	}
	if n == 0 {
		return &domain.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}
