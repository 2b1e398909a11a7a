package docsystem

import (
	"context"

	"portfolio/internal/domain/models/docsystem"
	"portfolio/internal/httputil"
)

// FolderService handles admin folder operations
type FolderService interface {
	ListFolders(ctx context.Context) ([]docsystem.FolderSummary, error)

	GetFolder(ctx context.Context, id string) (*docsystem.Folder, error)

	// CreateFolder creates a folder; slug must be unique among its siblings
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*docsystem.Folder, error)

	// UpdateFolder renames, reorders or moves a folder
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*docsystem.Folder, error)

	// DeleteFolder deletes a folder with all descendants and their documents
	DeleteFolder(ctx context.Context, id string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"` // null or "" for root
	Order       int     `json:"order"`
}

// UpdateFolderRequest represents a folder update request. Absent fields are
// left unchanged; ParentID null moves the folder to root.
type UpdateFolderRequest struct {
	Name        *string                 `json:"name,omitempty"`
	Slug        *string                 `json:"slug,omitempty"`
	Description httputil.OptionalString `json:"description"`
	ParentID    httputil.OptionalString `json:"parent_id"`
	Order       *int                    `json:"order,omitempty"`
}
