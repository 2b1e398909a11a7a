package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
	"portfolio/internal/domain/repositories"
	docsysRepo "portfolio/internal/domain/repositories/docsystem"
	docsysSvc "portfolio/internal/domain/services/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type folderService struct {
	folderRepo docsysRepo.FolderRepository
	txManager  repositories.TransactionManager
	validator  *ResourceValidator
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo docsysRepo.FolderRepository,
	txManager repositories.TransactionManager,
	validator *ResourceValidator,
	logger *slog.Logger,
) docsysSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		txManager:  txManager,
		validator:  validator,
		logger:     logger,
	}
}

// ListFolders returns every folder with its direct document and child counts
func (s *folderService) ListFolders(ctx context.Context) ([]models.FolderSummary, error) {
	return s.folderRepo.ListSummaries(ctx)
}

// GetFolder retrieves a folder by ID
func (s *folderService) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id)
}

// CreateFolder creates a new folder under ParentID (root when empty)
func (s *folderService) CreateFolder(ctx context.Context, req *docsysSvc.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	req.ParentID = normalizeOptional(req.ParentID)
	req.Description = normalizeOptional(req.Description)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationError(err)
	}

	now := time.Now().UTC()
	folder := &models.Folder{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Order:       req.Order,
		ParentID:    req.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if folder.ParentID != nil {
			if err := s.validator.ValidateFolder(txCtx, *folder.ParentID); err != nil {
				return err
			}
		}
		if err := s.checkSiblingSlug(txCtx, folder); err != nil {
			return err
		}
		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"slug", folder.Slug,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// UpdateFolder applies the present fields of req. Moving is cycle-checked.
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *docsysSvc.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, validationError(err)
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		existing, err := s.folderRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		folder = existing

		if req.Name != nil {
			folder.Name = strings.TrimSpace(*req.Name)
		}
		if req.Slug != nil {
			folder.Slug = strings.TrimSpace(*req.Slug)
		}
		if req.Description.Present {
			folder.Description = req.Description.Trimmed()
		}
		if req.Order != nil {
			folder.Order = *req.Order
		}

		// Tri-state: only move if the field was present in the request
		if req.ParentID.Present {
			newParent := req.ParentID.Trimmed()
			if newParent != nil {
				if err := s.validator.ValidateNoCycle(txCtx, folder.ID, *newParent); err != nil {
					return err
				}
				s.logger.Debug("moving folder", "folder_id", folder.ID, "new_parent_id", *newParent)
			}
			folder.ParentID = newParent
		}

		if req.Slug != nil || req.ParentID.Present {
			if err := s.checkSiblingSlug(txCtx, folder); err != nil {
				return err
			}
		}

		folder.UpdatedAt = time.Now().UTC()
		return s.folderRepo.Update(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"slug", folder.Slug,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder; the store removes descendants and their
// documents
func (s *folderService) DeleteFolder(ctx context.Context, id string) error {
	if err := s.folderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id)
	return nil
}

// checkSiblingSlug rejects a slug already used by another folder in the same
// parent scope
func (s *folderService) checkSiblingSlug(ctx context.Context, folder *models.Folder) error {
	existing, err := s.folderRepo.GetBySlug(ctx, folder.ParentID, folder.Slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == folder.ID {
		return nil
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a folder with slug %q already exists in this location", folder.Slug),
		ResourceType: "folder",
		ResourceID:   existing.ID,
	}
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *docsysSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxFolderNameLength)),
		validation.Field(&req.Slug, slugRules...),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Order, validation.Min(0)),
	)
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *docsysSvc.UpdateFolderRequest) error {
	if req.Name == nil && req.Slug == nil && req.Order == nil && !req.Description.Present && !req.ParentID.Present {
		return errors.New("at least one field must be provided")
	}

	if d := req.Description.Value; d != nil {
		if err := validation.Validate(*d, validation.Length(0, config.MaxDescriptionLength)); err != nil {
			return fmt.Errorf("description: %w", err)
		}
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, config.MaxFolderNameLength)),
		validation.Field(&req.Slug, validation.When(req.Slug != nil, slugRules...)),
		validation.Field(&req.Order, validation.Min(0)),
	)
}
