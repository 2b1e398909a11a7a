package handler

import (
	"log/slog"
	"net/http"
	"time"

	docsysSvc "portfolio/internal/domain/services/docsystem"
	"portfolio/internal/httputil"
)

const (
	sitemapMaxAge = 3600
	feedMaxAge    = 900
)

// FeedHandler serves the sitemap and the RSS feed
type FeedHandler struct {
	publishing docsysSvc.PublishingService
	logger     *slog.Logger
	now        func() time.Time
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(publishing docsysSvc.PublishingService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		publishing: publishing,
		logger:     logger,
		now:        time.Now,
	}
}

// Sitemap renders sitemap.xml
// GET /sitemap.xml
func (h *FeedHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	data, err := h.publishing.Sitemap(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondBody(w, http.StatusOK, "application/xml; charset=utf-8", sitemapMaxAge, data)
}

// Feed renders the RSS channel
// GET /api/rss
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	data, err := h.publishing.Feed(r.Context(), h.now())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondBody(w, http.StatusOK, "application/rss+xml; charset=utf-8", feedMaxAge, data)
}
