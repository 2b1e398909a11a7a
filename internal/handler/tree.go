package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "portfolio/internal/domain/services/docsystem"
	"portfolio/internal/httputil"
)

// TreeHandler handles HTTP requests for the docs navigation tree
type TreeHandler struct {
	treeService docsysSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService docsysSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetStructure returns the public folder forest with published documents
// GET /api/docs/structure
func (h *TreeHandler) GetStructure(w http.ResponseWriter, r *http.Request) {
	tree, err := h.treeService.GetPublicTree(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// GetAdminTree returns the forest with drafts included
// GET /api/admin/docs/tree
func (h *TreeHandler) GetAdminTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.treeService.GetAdminTree(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
