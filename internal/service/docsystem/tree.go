package docsystem

import (
	"context"
	"log/slog"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
	docsysRepo "portfolio/internal/domain/repositories/docsystem"
	docsysSvc "portfolio/internal/domain/services/docsystem"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo docsysRepo.FolderRepository
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(folderRepo docsysRepo.FolderRepository, logger *slog.Logger) docsysSvc.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// GetPublicTree builds the navigation forest with published documents only
func (s *treeService) GetPublicTree(ctx context.Context) (*models.Forest, error) {
	return s.build(ctx, "public", models.DocumentFilter{PublishedOnly: true})
}

// GetAdminTree builds the forest with drafts included
func (s *treeService) GetAdminTree(ctx context.Context) (*models.Forest, error) {
	return s.build(ctx, "admin", models.DocumentFilter{})
}

func (s *treeService) build(ctx context.Context, view string, filter models.DocumentFilter) (*models.Forest, error) {
	folders, err := s.folderRepo.ListAllWithDocuments(ctx, filter)
	if err != nil {
		return nil, domain.NewStoreUnavailable("list folders", err)
	}

	forest := BuildForest(folders)
	logOrphans(s.logger, view, forest)

	s.logger.Debug("docs tree built",
		"view", view,
		"folder_count", forest.FolderCount,
		"document_count", forest.DocumentCount,
	)

	return forest, nil
}

// logOrphans reports folders that had to be promoted to root level
func logOrphans(logger *slog.Logger, view string, forest *models.Forest) {
	if len(forest.Orphans) == 0 {
		return
	}
	logger.Warn("malformed folder hierarchy: folders placed at root",
		"view", view,
		"orphan_count", len(forest.Orphans),
		"folder_ids", forest.Orphans,
	)
}
