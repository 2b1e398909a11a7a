package docsystem

import (
	"context"

	"portfolio/internal/domain/models/docsystem"
)

// SlugResolver maps a docs URL path to the single document it names.
type SlugResolver interface {
	// Resolve matches segments (folder slugs from the root, then the document
	// slug) against the hierarchy. Returns domain.ErrNotFound when nothing
	// matches and domain.ErrStoreUnavailable when the store fails.
	Resolve(ctx context.Context, segments []string, opts ResolveOptions) (*docsystem.ResolvedDocument, error)
}

// ResolveOptions tunes a single resolution.
type ResolveOptions struct {
	// IncludeUnpublished lets admin previews resolve drafts
	IncludeUnpublished bool
}
