package docsystem

import (
	"context"

	"portfolio/internal/domain/models/docsystem"
)

// DocumentRepository defines data access operations for docs pages.
// Error conventions match FolderRepository.
type DocumentRepository interface {
	// Create inserts a document and fills in ID and timestamps
	Create(ctx context.Context, doc *docsystem.Document) error

	// GetByID retrieves a document with content
	GetByID(ctx context.Context, id string) (*docsystem.Document, error)

	// GetBySlug finds the document with slug inside folderID
	GetBySlug(ctx context.Context, folderID, slug string) (*docsystem.Document, error)

	// Update writes every mutable field
	Update(ctx context.Context, doc *docsystem.Document) error

	// Delete removes a document
	Delete(ctx context.Context, id string) error

	// ListBySlug returns every document with the given slug across all
	// folders, in store order
	ListBySlug(ctx context.Context, slug string, filter docsystem.DocumentFilter) ([]docsystem.Document, error)

	// ListAll returns every document matching the filter
	ListAll(ctx context.Context, filter docsystem.DocumentFilter) ([]docsystem.Document, error)

	// ListWithFolders returns every document joined with its folder name/slug,
	// ordered by order ascending
	ListWithFolders(ctx context.Context) ([]docsystem.DocumentListItem, error)
}
