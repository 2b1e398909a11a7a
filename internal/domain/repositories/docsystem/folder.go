package docsystem

import (
	"context"

	"portfolio/internal/domain/models/docsystem"
)

// FolderRepository defines data access operations for docs folders.
// Implementations return domain.ErrNotFound for missing rows,
// domain.ErrConflict for sibling slug collisions and wrap every other
// failure as domain.ErrStoreUnavailable.
type FolderRepository interface {
	// Create inserts a folder and fills in ID and timestamps
	Create(ctx context.Context, folder *docsystem.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*docsystem.Folder, error)

	// GetBySlug finds the folder with slug under parentID (nil = root scope)
	GetBySlug(ctx context.Context, parentID *string, slug string) (*docsystem.Folder, error)

	// Update writes name, slug, description, order and parent
	Update(ctx context.Context, folder *docsystem.Folder) error

	// Delete removes a folder; the store cascades to descendants and documents
	Delete(ctx context.Context, id string) error

	// ListAll retrieves every folder as a flat list in no particular order
	ListAll(ctx context.Context) ([]docsystem.Folder, error)

	// ListAllWithDocuments is ListAll with each folder's directly owned
	// documents attached (metadata only)
	ListAllWithDocuments(ctx context.Context, filter docsystem.DocumentFilter) ([]docsystem.Folder, error)

	// ListSummaries returns every folder with document and child counts
	ListSummaries(ctx context.Context) ([]docsystem.FolderSummary, error)
}
