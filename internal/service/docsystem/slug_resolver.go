package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
	docsysRepo "portfolio/internal/domain/repositories/docsystem"
	docsysSvc "portfolio/internal/domain/services/docsystem"
)

// folderLookup returns the folder with the given id, or nil when it does not
// exist (deleted between reads counts as missing).
type folderLookup func(ctx context.Context, id string) (*models.Folder, error)

type slugResolver struct {
	folderRepo docsysRepo.FolderRepository
	docRepo    docsysRepo.DocumentRepository
	strategy   string
	logger     *slog.Logger
}

// NewSlugResolver creates a resolver. strategy is config.ResolverBatch (one
// folder fetch, in-memory ancestor walk) or config.ResolverPerLevel (one
// folder lookup per level per candidate). Unknown values fall back to batch.
func NewSlugResolver(
	folderRepo docsysRepo.FolderRepository,
	docRepo docsysRepo.DocumentRepository,
	strategy string,
	logger *slog.Logger,
) docsysSvc.SlugResolver {
	if strategy != config.ResolverPerLevel {
		strategy = config.ResolverBatch
	}
	return &slugResolver{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		strategy:   strategy,
		logger:     logger,
	}
}

// Resolve finds the document named by segments. The last segment is the
// document slug; the ones before it must be the slugs of the document's
// folder ancestry read from the root inward, and the outermost must be a
// root folder.
func (r *slugResolver) Resolve(ctx context.Context, segments []string, opts docsysSvc.ResolveOptions) (*models.ResolvedDocument, error) {
	if err := validateSegments(segments); err != nil {
		return nil, err
	}

	docSlug := segments[len(segments)-1]
	folderSlugs := segments[:len(segments)-1]

	candidates, err := r.docRepo.ListBySlug(ctx, docSlug, models.DocumentFilter{
		PublishedOnly: !opts.IncludeUnpublished,
		WithContent:   true,
	})
	if err != nil {
		return nil, domain.NewStoreUnavailable("list documents by slug", err)
	}
	if len(candidates) == 0 {
		return nil, notFoundPath(segments)
	}

	lookup, err := r.lookup(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*models.ResolvedDocument
	for i := range candidates {
		chain, ok, err := matchAncestry(ctx, lookup, candidates[i].FolderID, folderSlugs)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, newResolvedDocument(candidates[i], chain))
		}
	}

	switch len(matches) {
	case 0:
		return nil, notFoundPath(segments)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.Document.ID
		}
		r.logger.Error("docs path matched more than one document",
			"path", joinSegments(segments),
			"document_ids", ids,
		)
		return nil, fmt.Errorf("%w: path %q matches %d documents", domain.ErrInconsistentHierarchy, joinSegments(segments), len(matches))
	}
}

// lookup builds the folder lookup for the configured strategy.
func (r *slugResolver) lookup(ctx context.Context) (folderLookup, error) {
	if r.strategy == config.ResolverPerLevel {
		return func(ctx context.Context, id string) (*models.Folder, error) {
			folder, err := r.folderRepo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, nil
				}
				return nil, domain.NewStoreUnavailable("get folder", err)
			}
			return folder, nil
		}, nil
	}

	folders, err := r.folderRepo.ListAll(ctx)
	if err != nil {
		return nil, domain.NewStoreUnavailable("list folders", err)
	}
	byID := make(map[string]*models.Folder, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}
	return func(_ context.Context, id string) (*models.Folder, error) {
		return byID[id], nil
	}, nil
}

// matchAncestry walks from folderID towards the root, comparing each folder
// with folderSlugs in reverse. It reports the matched chain ordered root
// first. The walk takes at most len(folderSlugs) steps, so a corrupted
// parent cycle ends as a non-match.
func matchAncestry(ctx context.Context, lookup folderLookup, folderID string, folderSlugs []string) ([]models.Folder, bool, error) {
	if len(folderSlugs) == 0 {
		// Every document lives in a folder, so a bare slug never matches
		return nil, false, nil
	}

	current, err := lookup(ctx, folderID)
	if err != nil {
		return nil, false, err
	}

	chain := make([]models.Folder, len(folderSlugs))
	for i := len(folderSlugs) - 1; i >= 0; i-- {
		if current == nil || current.Slug != folderSlugs[i] {
			return nil, false, nil
		}
		chain[i] = *current
		if i == 0 {
			break
		}
		if current.ParentID == nil {
			// Path is longer than the real ancestry
			return nil, false, nil
		}
		if current, err = lookup(ctx, *current.ParentID); err != nil {
			return nil, false, err
		}
	}

	// The outermost matched folder must be a root, otherwise the path only
	// named the tail of a deeper ancestry
	if !current.IsRoot() {
		return nil, false, nil
	}
	return chain, true, nil
}

func newResolvedDocument(doc models.Document, chain []models.Folder) *models.ResolvedDocument {
	crumbs := make([]models.Breadcrumb, len(chain))
	path := ""
	for i, folder := range chain {
		path = joinPath(path, folder.Slug)
		crumbs[i] = models.Breadcrumb{Name: folder.Name, Slug: folder.Slug, Path: path}
	}
	words, minutes := readingStats(doc.Content)
	return &models.ResolvedDocument{
		Document:       doc,
		Path:           joinPath(path, doc.Slug),
		Breadcrumbs:    crumbs,
		WordCount:      words,
		ReadingMinutes: minutes,
	}
}

func validateSegments(segments []string) error {
	if len(segments) == 0 || len(segments) > config.MaxSlugPathSegments {
		return notFoundPath(segments)
	}
	for _, s := range segments {
		if s == "" || len(s) > config.MaxSlugLength {
			return notFoundPath(segments)
		}
	}
	return nil
}

func notFoundPath(segments []string) error {
	return &domain.NotFoundError{Resource: "document", ID: joinSegments(segments)}
}

func joinSegments(segments []string) string {
	path := ""
	for _, s := range segments {
		path = joinPath(path, s)
	}
	return path
}
