package docsystem

import (
	"context"

	"portfolio/internal/domain/models/docsystem"
)

// TreeService builds the docs navigation forest
type TreeService interface {
	// GetPublicTree returns every folder with only published documents attached
	GetPublicTree(ctx context.Context) (*docsystem.Forest, error)

	// GetAdminTree returns every folder with all documents attached
	GetAdminTree(ctx context.Context) (*docsystem.Forest, error)
}
