package docsystem

import (
	"context"
	"time"

	"portfolio/internal/domain/models/docsystem"
)

// PublishingService exposes published documents to the outside world:
// listings, sitemap and feed.
type PublishingService interface {
	// ListPublished returns every published document with its canonical path,
	// in navigation order
	ListPublished(ctx context.Context) ([]docsystem.PublishedEntry, error)

	// Sitemap renders the sitemap.xml document
	Sitemap(ctx context.Context) ([]byte, error)

	// Feed renders an RSS 2.0 channel of recently updated documents
	Feed(ctx context.Context, now time.Time) ([]byte, error)
}
