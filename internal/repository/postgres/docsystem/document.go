package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
	docsysRepo "portfolio/internal/domain/repositories/docsystem"
	"portfolio/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) docsysRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// documentColumns lists the selected columns; content is replaced by an
// empty string for metadata-only reads
func documentColumns(withContent bool) string {
	content := "content"
	if !withContent {
		content = "''"
	}
	return "id, title, slug, description, " + content + ", published, sort_order, tags, folder_id, author_id, created_at, updated_at"
}

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, slug, description, content, published, sort_order, tags, folder_id, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.Title,
		doc.Slug,
		doc.Description,
		doc.Content,
		doc.Published,
		doc.Order,
		tagsOrEmpty(doc.Tags),
		doc.FolderID,
		doc.AuthorID,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, doc)
		}
		return postgres.TranslateError("create document", "document", doc.Slug, err)
	}

	return nil
}

// GetByID retrieves a document with content
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns(true), r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.TranslateError("get document", "document", id, err)
	}
	return doc, nil
}

// GetBySlug finds the document with slug inside folderID
func (r *PostgresDocumentRepository) GetBySlug(ctx context.Context, folderID, slug string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE folder_id = $1 AND slug = $2`, documentColumns(true), r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, folderID, slug))
	if err != nil {
		return nil, postgres.TranslateError("get document by slug", "document", slug, err)
	}
	return doc, nil
}

// Update writes every mutable field
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, slug = $2, description = $3, content = $4, published = $5,
			sort_order = $6, tags = $7, folder_id = $8, updated_at = $9
		WHERE id = $10
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.Title,
		doc.Slug,
		doc.Description,
		doc.Content,
		doc.Published,
		doc.Order,
		tagsOrEmpty(doc.Tags),
		doc.FolderID,
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return r.conflict(ctx, doc)
		}
		return postgres.TranslateError("update document", "document", doc.ID, err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "document", ID: doc.ID}
	}
	return nil
}

// Delete removes a document
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.TranslateError("delete document", "document", id, err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "document", ID: id}
	}
	return nil
}

// ListBySlug returns every document with slug across all folders
func (r *PostgresDocumentRepository) ListBySlug(ctx context.Context, slug string, filter models.DocumentFilter) ([]models.Document, error) {
	return listDocuments(ctx, postgres.GetExecutor(ctx, r.pool), r.tables, "slug = $1", []interface{}{slug}, filter)
}

// ListAll returns every document matching the filter
func (r *PostgresDocumentRepository) ListAll(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	return listDocuments(ctx, postgres.GetExecutor(ctx, r.pool), r.tables, "", nil, filter)
}

// ListWithFolders returns metadata for every document joined with its folder
func (r *PostgresDocumentRepository) ListWithFolders(ctx context.Context) ([]models.DocumentListItem, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.title, d.slug, d.description, '', d.published, d.sort_order, d.tags,
			d.folder_id, d.author_id, d.created_at, d.updated_at, f.name, f.slug
		FROM %s d
		JOIN %s f ON f.id = d.folder_id
		ORDER BY d.sort_order ASC, d.title ASC
	`, r.tables.Documents, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, postgres.TranslateError("list documents", "document", "", err)
	}
	defer rows.Close()

	items := make([]models.DocumentListItem, 0)
	for rows.Next() {
		var item models.DocumentListItem
		if err := rows.Scan(append(documentTargets(&item.Document), &item.FolderName, &item.FolderSlug)...); err != nil {
			return nil, domain.NewStoreUnavailable("scan document", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreUnavailable("list documents", err)
	}

	return items, nil
}

// conflict builds a ConflictError naming the document that owns the slug
func (r *PostgresDocumentRepository) conflict(ctx context.Context, doc *models.Document) error {
	msg := fmt.Sprintf("a document with slug %q already exists in this folder", doc.Slug)
	existing, err := r.GetBySlug(ctx, doc.FolderID, doc.Slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("failed to look up conflicting document", "slug", doc.Slug, "error", err)
		}
		return fmt.Errorf("%s: %w", msg, domain.ErrConflict)
	}
	return &domain.ConflictError{Message: msg, ResourceType: "document", ResourceID: existing.ID}
}

// listDocuments runs a document query with an optional extra condition
func listDocuments(ctx context.Context, executor postgres.DBTX, tables *postgres.TableNames, where string, args []interface{}, filter models.DocumentFilter) ([]models.Document, error) {
	var conds []string
	if where != "" {
		conds = append(conds, where)
	}
	if filter.PublishedOnly {
		conds = append(conds, "published = true")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, documentColumns(filter.WithContent), tables.Documents)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.TranslateError("list documents", "document", "", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, domain.NewStoreUnavailable("scan document", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreUnavailable("list documents", err)
	}

	return docs, nil
}

func documentTargets(doc *models.Document) []interface{} {
	return []interface{}{
		&doc.ID,
		&doc.Title,
		&doc.Slug,
		&doc.Description,
		&doc.Content,
		&doc.Published,
		&doc.Order,
		&doc.Tags,
		&doc.FolderID,
		&doc.AuthorID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	}
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	if err := row.Scan(documentTargets(&doc)...); err != nil {
		return nil, err
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	return &doc, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
