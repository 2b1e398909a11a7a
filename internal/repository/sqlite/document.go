package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
)

type documentRepository struct {
	store *Store
}

func documentColumns(withContent bool) string {
	content := "content"
	if !withContent {
		content = "''"
	}
	return "id, title, slug, description, " + content + ", published, sort_order, tags, folder_id, author_id, created_at, updated_at"
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	tags, err := encodeTags(doc.Tags)
	if err != nil {
		return err
	}
	doc.ID = uuid.NewString()
	_, err = r.store.conn(ctx).ExecContext(ctx, `
		INSERT INTO docs (id, title, slug, description, content, published, sort_order, tags, folder_id, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, doc.Slug, doc.Description, doc.Content, doc.Published, doc.Order, tags,
		doc.FolderID, doc.AuthorID, doc.CreatedAt.UTC(), doc.UpdatedAt.UTC())
	if err != nil {
		doc.ID = ""
		return r.conflictOr(ctx, doc, translateError("create document", "document", doc.Slug, err))
	}
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	row := r.store.conn(ctx).QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM docs WHERE id = ?", documentColumns(true)), id)
	doc, err := scanDocument(row)
	if err != nil {
		return nil, translateError("get document", "document", id, err)
	}
	return doc, nil
}

func (r *documentRepository) GetBySlug(ctx context.Context, folderID, slug string) (*models.Document, error) {
	row := r.store.conn(ctx).QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM docs WHERE folder_id = ? AND slug = ?", documentColumns(true)), folderID, slug)
	doc, err := scanDocument(row)
	if err != nil {
		return nil, translateError("get document by slug", "document", slug, err)
	}
	return doc, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *models.Document) error {
	tags, err := encodeTags(doc.Tags)
	if err != nil {
		return err
	}
	result, err := r.store.conn(ctx).ExecContext(ctx, `
		UPDATE docs
		SET title = ?, slug = ?, description = ?, content = ?, published = ?, sort_order = ?,
			tags = ?, folder_id = ?, updated_at = ?
		WHERE id = ?
	`, doc.Title, doc.Slug, doc.Description, doc.Content, doc.Published, doc.Order, tags,
		doc.FolderID, doc.UpdatedAt.UTC(), doc.ID)
	if err != nil {
		return r.conflictOr(ctx, doc, translateError("update document", "document", doc.Slug, err))
	}
	return requireRow(result, "document", doc.ID)
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.store.conn(ctx).ExecContext(ctx, "DELETE FROM docs WHERE id = ?", id)
	if err != nil {
		return translateError("delete document", "document", id, err)
	}
	return requireRow(result, "document", id)
}

func (r *documentRepository) ListBySlug(ctx context.Context, slug string, filter models.DocumentFilter) ([]models.Document, error) {
	return listDocuments(ctx, r.store.conn(ctx), "slug = ?", []any{slug}, filter)
}

func (r *documentRepository) ListAll(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	return listDocuments(ctx, r.store.conn(ctx), "", nil, filter)
}

func (r *documentRepository) ListWithFolders(ctx context.Context) ([]models.DocumentListItem, error) {
	rows, err := r.store.conn(ctx).QueryContext(ctx, `
		SELECT d.id, d.title, d.slug, d.description, '', d.published, d.sort_order, d.tags,
			d.folder_id, d.author_id, d.created_at, d.updated_at, f.name, f.slug
		FROM docs d
		JOIN doc_folders f ON f.id = d.folder_id
		ORDER BY d.sort_order ASC, d.title ASC
	`)
	if err != nil {
		return nil, translateError("list documents", "document", "", err)
	}
	defer rows.Close()

	items := make([]models.DocumentListItem, 0)
	for rows.Next() {
		var item models.DocumentListItem
		var tags string
		targets := append(documentTargets(&item.Document, &tags), &item.FolderName, &item.FolderSlug)
		if err := rows.Scan(targets...); err != nil {
			return nil, domain.NewStoreUnavailable("scan document", err)
		}
		if item.Tags, err = decodeTags(tags); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreUnavailable("list documents", err)
	}
	return items, nil
}

// conflictOr upgrades a conflict to one naming the document that owns the slug
func (r *documentRepository) conflictOr(ctx context.Context, doc *models.Document, err error) error {
	if !errors.Is(err, domain.ErrConflict) {
		return err
	}
	existing, lookupErr := r.GetBySlug(ctx, doc.FolderID, doc.Slug)
	if lookupErr != nil {
		return err
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a document with slug %q already exists in this folder", doc.Slug),
		ResourceType: "document",
		ResourceID:   existing.ID,
	}
}

func listDocuments(ctx context.Context, conn executor, where string, args []any, filter models.DocumentFilter) ([]models.Document, error) {
	var conds []string
	if where != "" {
		conds = append(conds, where)
	}
	if filter.PublishedOnly {
		conds = append(conds, "published = 1")
	}
	query := fmt.Sprintf("SELECT %s FROM docs", documentColumns(filter.WithContent))
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("list documents", "document", "", err)
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

func documentTargets(doc *models.Document, tags *string) []any {
	return []any{&doc.ID, &doc.Title, &doc.Slug, &doc.Description, &doc.Content, &doc.Published,
		&doc.Order, tags, &doc.FolderID, &doc.AuthorID, &doc.CreatedAt, &doc.UpdatedAt}
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	var tags string
	if err := row.Scan(documentTargets(&doc, &tags)...); err != nil {
		return nil, err
	}
	decoded, err := decodeTags(tags)
	if err != nil {
		return nil, err
	}
	doc.Tags = decoded
	return &doc, nil
}

// Tags are stored as a JSON array
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, domain.NewStoreUnavailable("decode tags", err)
	}
	return tags, nil
}
