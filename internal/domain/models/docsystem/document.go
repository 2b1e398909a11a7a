package docsystem

import (
	"time"
)

// Document is a leaf content page owned by exactly one folder. Slug is unique
// within the owning folder only.
type Document struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description" db:"description"`
	Content     string    `json:"content,omitempty" db:"content"` // Markdown/MDX, opaque here
	Published   bool      `json:"published" db:"published"`
	Order       int       `json:"order" db:"sort_order"`
	Tags        []string  `json:"tags" db:"tags"`
	FolderID    string    `json:"folder_id" db:"folder_id"`
	AuthorID    *string   `json:"author_id,omitempty" db:"author_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// DocumentListItem is a document row joined with its folder's name and slug
// (admin listing).
type DocumentListItem struct {
	Document
	FolderName string `json:"folder_name"`
	FolderSlug string `json:"folder_slug"`
}

// DocumentFilter narrows document queries.
type DocumentFilter struct {
	// PublishedOnly restricts results to published documents (public context)
	PublishedOnly bool
	// WithContent loads the body; listings leave it empty
	WithContent bool
}
