package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "portfolio/internal/domain/services/docsystem"
	"portfolio/internal/httputil"
)

// DocsHandler serves published documents by URL path
type DocsHandler struct {
	resolver   docsysSvc.SlugResolver
	publishing docsysSvc.PublishingService
	logger     *slog.Logger
}

// NewDocsHandler creates a new docs handler
func NewDocsHandler(resolver docsysSvc.SlugResolver, publishing docsysSvc.PublishingService, logger *slog.Logger) *DocsHandler {
	return &DocsHandler{
		resolver:   resolver,
		publishing: publishing,
		logger:     logger,
	}
}

// ListPublished returns every published document with its canonical path
// GET /api/docs
func (h *DocsHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	entries, err := h.publishing.ListPublished(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// GetDocument resolves a docs path to a published document
// GET /api/docs/{slug...}
func (h *DocsHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, docsysSvc.ResolveOptions{})
}

// PreviewDocument resolves a docs path including drafts
// GET /api/admin/docs/preview/{slug...}
func (h *DocsHandler) PreviewDocument(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, docsysSvc.ResolveOptions{IncludeUnpublished: true})
}

func (h *DocsHandler) resolve(w http.ResponseWriter, r *http.Request, opts docsysSvc.ResolveOptions) {
	resolved, err := h.resolver.Resolve(r.Context(), httputil.PathSegments(r, "slug"), opts)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resolved)
}
