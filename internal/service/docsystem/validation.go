package docsystem

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	docsysRepo "portfolio/internal/domain/repositories/docsystem"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// slugPattern allows lowercase words joined by single hyphens
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// slugRules are shared by folder and document slugs
var slugRules = []validation.Rule{
	validation.Required,
	validation.Length(1, config.MaxSlugLength),
	validation.Match(slugPattern).Error("must be lowercase letters, digits and single hyphens"),
}

// tagRule validates each entry of a tag list
var tagRule = validation.Each(
	validation.Required,
	validation.Length(1, config.MaxTagLength),
)

// ResourceValidator checks that referenced folders exist before they are
// used as a parent or owner
type ResourceValidator struct {
	folderRepo docsysRepo.FolderRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(folderRepo docsysRepo.FolderRepository) *ResourceValidator {
	return &ResourceValidator{folderRepo: folderRepo}
}

// ValidateFolder ensures a folder exists. A missing folder is reported as a
// validation error because it came from the request body.
func (v *ResourceValidator) ValidateFolder(ctx context.Context, folderID string) error {
	if _, err := v.folderRepo.GetByID(ctx, folderID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ValidationError{Message: fmt.Sprintf("folder %s does not exist", folderID)}
		}
		return err
	}
	return nil
}

// ValidateNoCycle ensures moving folderID under newParentID does not make the
// folder its own ancestor. The walk is bounded so corrupted data cannot loop.
func (v *ResourceValidator) ValidateNoCycle(ctx context.Context, folderID, newParentID string) error {
	if folderID == newParentID {
		return &domain.ValidationError{Message: "cannot move folder to be its own parent"}
	}

	currentID := newParentID
	for steps := 0; steps < maxAncestorSteps; steps++ {
		parent, err := v.folderRepo.GetByID(ctx, currentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return &domain.ValidationError{Message: fmt.Sprintf("folder %s does not exist", currentID)}
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == folderID {
			return &domain.ValidationError{Message: "cannot move folder to be a child of its own descendant"}
		}
		currentID = *parent.ParentID
	}
	return fmt.Errorf("%w: ancestor chain of %s exceeds %d levels", domain.ErrInconsistentHierarchy, newParentID, maxAncestorSteps)
}

// maxAncestorSteps bounds ancestor walks over stored data
const maxAncestorSteps = 1024

// normalizeOptional trims s and maps blank strings to nil
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// validationError converts an ozzo error into the domain kind
func validationError(err error) error {
	if err == nil {
		return nil
	}
	return &domain.ValidationError{Message: err.Error()}
}
