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

// documentService implements the DocumentService interface
type documentService struct {
	docRepo   docsysRepo.DocumentRepository
	txManager repositories.TransactionManager
	validator *ResourceValidator
	logger    *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docsysRepo.DocumentRepository,
	txManager repositories.TransactionManager,
	validator *ResourceValidator,
	logger *slog.Logger,
) docsysSvc.DocumentService {
	return &documentService{
		docRepo:   docRepo,
		txManager: txManager,
		validator: validator,
		logger:    logger,
	}
}

// ListDocuments returns every document with its folder name and slug
func (s *documentService) ListDocuments(ctx context.Context) ([]models.DocumentListItem, error) {
	return s.docRepo.ListWithFolders(ctx)
}

// GetDocument retrieves a document with content
func (s *documentService) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

// CreateDocument creates a document in an existing folder. Description and
// tags missing from the request are taken from the content's frontmatter.
func (s *documentService) CreateDocument(ctx context.Context, req *docsysSvc.CreateDocumentRequest) (*models.Document, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	req.FolderID = strings.TrimSpace(req.FolderID)
	req.Description = normalizeOptional(req.Description)

	if err := s.applyFrontmatter(req); err != nil {
		return nil, err
	}
	if err := s.validateCreateRequest(req); err != nil {
		return nil, validationError(err)
	}

	now := time.Now().UTC()
	doc := &models.Document{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Content:     req.Content,
		Published:   req.Published,
		Order:       req.Order,
		Tags:        normalizeTags(req.Tags),
		FolderID:    req.FolderID,
		AuthorID:    req.AuthorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.validator.ValidateFolder(txCtx, doc.FolderID); err != nil {
			return err
		}
		if err := s.checkFolderSlug(txCtx, doc); err != nil {
			return err
		}
		return s.docRepo.Create(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"slug", doc.Slug,
		"folder_id", doc.FolderID,
		"published", doc.Published,
	)

	return doc, nil
}

// UpdateDocument applies the present fields of req
func (s *documentService) UpdateDocument(ctx context.Context, id string, req *docsysSvc.UpdateDocumentRequest) (*models.Document, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, validationError(err)
	}

	var doc *models.Document
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		existing, err := s.docRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		doc = existing

		if req.Title != nil {
			doc.Title = strings.TrimSpace(*req.Title)
		}
		if req.Slug != nil {
			doc.Slug = strings.TrimSpace(*req.Slug)
		}
		if req.Description.Present {
			doc.Description = req.Description.Trimmed()
		}
		if req.Content != nil {
			doc.Content = *req.Content
		}
		if req.Published != nil {
			doc.Published = *req.Published
		}
		if req.Order != nil {
			doc.Order = *req.Order
		}
		if req.Tags != nil {
			doc.Tags = normalizeTags(*req.Tags)
		}
		if req.FolderID != nil {
			folderID := strings.TrimSpace(*req.FolderID)
			if folderID != doc.FolderID {
				if err := s.validator.ValidateFolder(txCtx, folderID); err != nil {
					return err
				}
				doc.FolderID = folderID
			}
		}

		if req.Slug != nil || req.FolderID != nil {
			if err := s.checkFolderSlug(txCtx, doc); err != nil {
				return err
			}
		}

		doc.UpdatedAt = time.Now().UTC()
		return s.docRepo.Update(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document updated",
		"id", doc.ID,
		"slug", doc.Slug,
		"folder_id", doc.FolderID,
		"published", doc.Published,
	)

	return doc, nil
}

// DeleteDocument deletes a document
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}

// applyFrontmatter fills description and tags from the content header when
// the request leaves them empty
func (s *documentService) applyFrontmatter(req *docsysSvc.CreateDocumentRequest) error {
	fm, _, err := ParseFrontmatter(req.Content)
	if err != nil {
		return &domain.ValidationError{Message: fmt.Sprintf("content: %v", err)}
	}
	if fm == nil {
		return nil
	}
	if req.Title == "" {
		req.Title = strings.TrimSpace(fm.Title)
	}
	if req.Description == nil {
		req.Description = normalizeOptional(&fm.Description)
	}
	if len(req.Tags) == 0 {
		req.Tags = fm.Tags
	}
	return nil
}

// checkFolderSlug rejects a slug already used by another document in the
// same folder
func (s *documentService) checkFolderSlug(ctx context.Context, doc *models.Document) error {
	existing, err := s.docRepo.GetBySlug(ctx, doc.FolderID, doc.Slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == doc.ID {
		return nil
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a document with slug %q already exists in this folder", doc.Slug),
		ResourceType: "document",
		ResourceID:   existing.ID,
	}
}

// validateCreateRequest validates a document creation request
func (s *documentService) validateCreateRequest(req *docsysSvc.CreateDocumentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxDocumentTitleLength)),
		validation.Field(&req.Slug, slugRules...),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Order, validation.Min(0)),
		validation.Field(&req.Tags, validation.Length(0, config.MaxTagCount), tagRule),
	)
}

// validateUpdateRequest validates a document update request
func (s *documentService) validateUpdateRequest(req *docsysSvc.UpdateDocumentRequest) error {
	if req.Title == nil && req.Slug == nil && req.Content == nil && req.Published == nil &&
		req.Order == nil && req.FolderID == nil && req.Tags == nil && !req.Description.Present {
		return errors.New("at least one field must be provided")
	}

	if d := req.Description.Value; d != nil {
		if err := validation.Validate(*d, validation.Length(0, config.MaxDescriptionLength)); err != nil {
			return fmt.Errorf("description: %w", err)
		}
	}

	if req.Tags != nil {
		if err := validation.Validate(*req.Tags, validation.Length(0, config.MaxTagCount), tagRule); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(1, config.MaxDocumentTitleLength)),
		validation.Field(&req.Slug, validation.When(req.Slug != nil, slugRules...)),
		validation.Field(&req.Content, validation.NilOrNotEmpty),
		validation.Field(&req.FolderID, validation.NilOrNotEmpty),
		validation.Field(&req.Order, validation.Min(0)),
	)
}

// normalizeTags trims tags, drops blanks and duplicates, keeps first-seen
// order and never returns nil
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
