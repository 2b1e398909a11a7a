package docsystem

import "time"

// Forest is the ordered folder hierarchy built from a flat folder list.
type Forest struct {
	Roots []*FolderTreeNode `json:"folders"`

	// Orphans lists folders whose parent was missing from the input (or that
	// sit on a parent cycle). They are placed at root level.
	Orphans []string `json:"-"`

	FolderCount   int `json:"folder_count"`
	DocumentCount int `json:"document_count"`
}

// FolderTreeNode represents a folder in the tree with nested children
type FolderTreeNode struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description *string            `json:"description,omitempty"`
	Order       int                `json:"order"`
	ParentID    *string            `json:"parent_id"`
	Path        string             `json:"path"` // slash-joined slug chain from the root
	Folders     []*FolderTreeNode  `json:"folders"`
	Documents   []DocumentTreeNode `json:"documents"`
}

// DocumentTreeNode represents a document in the tree (metadata only, no content)
type DocumentTreeNode struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Order     int       `json:"order"`
	Published bool      `json:"published"`
	Path      string    `json:"path"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Walk visits every folder node depth-first in display order. Returning
// false from fn stops descent into that node's children.
func (f *Forest) Walk(fn func(node *FolderTreeNode) bool) {
	var visit func(nodes []*FolderTreeNode)
	visit = func(nodes []*FolderTreeNode) {
		for _, n := range nodes {
			if fn(n) {
				visit(n.Folders)
			}
		}
	}
	visit(f.Roots)
}

// Breadcrumb is one folder step on the way from the root to a document.
type Breadcrumb struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Path string `json:"path"`
}

// ResolvedDocument is the result of matching a docs URL path.
type ResolvedDocument struct {
	Document    Document     `json:"document"`
	Path        string       `json:"path"`
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`

	WordCount      int `json:"word_count"`
	ReadingMinutes int `json:"reading_minutes"`
}

// PublishedEntry is a published document paired with its canonical path,
// used for listings, the sitemap and the feed.
type PublishedEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	Path        string    `json:"path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
