package docsystem

import (
	"time"
)

// Folder is a node in the docs hierarchy. Slug is unique among siblings;
// roots (ParentID == nil) share one sibling scope.
type Folder struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description" db:"description"`
	Order       int       `json:"order" db:"sort_order"`
	ParentID    *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Documents directly owned by this folder, when the query asked for them
	Documents []Document `json:"documents,omitempty"`
}

// IsRoot reports whether the folder has no parent.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

// FolderSummary is the admin listing row: a folder plus how many documents
// and child folders it directly holds.
type FolderSummary struct {
	Folder
	DocCount   int `json:"doc_count"`
	ChildCount int `json:"child_count"`
}
