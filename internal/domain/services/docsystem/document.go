package docsystem

import (
	"context"

	"portfolio/internal/domain/models/docsystem"
	"portfolio/internal/httputil"
)

// DocumentService handles admin document operations
type DocumentService interface {
	ListDocuments(ctx context.Context) ([]docsystem.DocumentListItem, error)

	GetDocument(ctx context.Context, id string) (*docsystem.Document, error)

	// CreateDocument creates a document; slug must be unique in its folder
	CreateDocument(ctx context.Context, req *CreateDocumentRequest) (*docsystem.Document, error)

	UpdateDocument(ctx context.Context, id string, req *UpdateDocumentRequest) (*docsystem.Document, error)

	DeleteDocument(ctx context.Context, id string) error
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description *string  `json:"description,omitempty"`
	Content     string   `json:"content"`
	Published   bool     `json:"published"`
	Order       int      `json:"order"`
	FolderID    string   `json:"folder_id"`
	Tags        []string `json:"tags,omitempty"`
	AuthorID    *string  `json:"-"` // Set by handler from auth context
}

// UpdateDocumentRequest represents a document update request
type UpdateDocumentRequest struct {
	Title       *string                 `json:"title,omitempty"`
	Slug        *string                 `json:"slug,omitempty"`
	Description httputil.OptionalString `json:"description"`
	Content     *string                 `json:"content,omitempty"`
	Published   *bool                   `json:"published,omitempty"`
	Order       *int                    `json:"order,omitempty"`
	FolderID    *string                 `json:"folder_id,omitempty"`
	Tags        *[]string               `json:"tags,omitempty"`
}
