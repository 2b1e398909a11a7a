package docsystem

import (
	"context"
	"io"
)

// ImportService bulk-loads content into the docs hierarchy.
type ImportService interface {
	// ImportFiles imports uploaded files. A .zip is expanded; every other file
	// is a single page. Directory names inside archives become folder slugs
	// under opts.FolderID (root when nil), file names become document slugs.
	// Per-file failures are reported in the result, not as an error.
	ImportFiles(ctx context.Context, files []UploadedFile, opts ImportOptions) (*ImportResult, error)

	// ImportTree upserts a declarative content tree (the seed file format),
	// matching existing folders and documents by slug within their scope.
	ImportTree(ctx context.Context, tree []ContentFolder, opts ImportOptions) (*ImportResult, error)
}

// UploadedFile is one file handed to ImportFiles
type UploadedFile struct {
	Filename string
	Content  io.Reader
}

// ImportOptions controls how an import treats existing content
type ImportOptions struct {
	// Overwrite updates documents that already exist; otherwise they are skipped
	Overwrite bool

	// Publish marks imported pages published unless their frontmatter says otherwise
	Publish bool

	// FolderID is the folder archive paths are resolved under (nil = root)
	FolderID *string

	// AuthorID is recorded on created documents
	AuthorID *string
}

// ContentFolder is a folder in a content tree
type ContentFolder struct {
	Name        string            `yaml:"name" json:"name"`
	Slug        string            `yaml:"slug" json:"slug"`
	Description *string           `yaml:"description" json:"description,omitempty"`
	Order       int               `yaml:"order" json:"order"`
	Folders     []ContentFolder   `yaml:"folders" json:"folders,omitempty"`
	Documents   []ContentDocument `yaml:"documents" json:"documents,omitempty"`
}

// ContentDocument is a page in a content tree. File, when set, names a
// file whose converted content replaces Content; loaders resolve it before
// calling ImportTree.
type ContentDocument struct {
	Title       string   `yaml:"title" json:"title"`
	Slug        string   `yaml:"slug" json:"slug"`
	Description *string  `yaml:"description" json:"description,omitempty"`
	Content     string   `yaml:"content" json:"content"`
	File        string   `yaml:"file" json:"file,omitempty"`
	Published   *bool    `yaml:"published" json:"published,omitempty"`
	Order       int      `yaml:"order" json:"order"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
}

// ImportResult represents the result of a bulk import operation
type ImportResult struct {
	Summary   ImportSummary    `json:"summary"`
	Errors    []ImportError    `json:"errors"`
	Documents []ImportDocument `json:"documents"`
}

// ImportSummary contains aggregate statistics for an import operation
type ImportSummary struct {
	Created        int `json:"created"`
	Updated        int `json:"updated"`
	Skipped        int `json:"skipped"`
	Failed         int `json:"failed"`
	FoldersCreated int `json:"folders_created"`
	TotalFiles     int `json:"total_files"`
}

// ImportError represents an error that occurred during import
type ImportError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ImportDocument represents a processed document
type ImportDocument struct {
	ID     string `json:"id,omitempty"`
	Path   string `json:"path"`
	Action string `json:"action"` // "created", "updated" or "skipped"
}

// Import actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionSkipped = "skipped"
)
