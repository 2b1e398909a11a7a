package docsystem

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
	docsysRepo "portfolio/internal/domain/repositories/docsystem"
	docsysSvc "portfolio/internal/domain/services/docsystem"

	"golang.org/x/sync/errgroup"
)

// SiteInfo describes the public site that sitemap and feed links point at.
type SiteInfo struct {
	URL         string // absolute, no trailing slash
	Title       string
	Description string
}

// staticRoutes are the non-docs pages listed in the sitemap
var staticRoutes = []string{"", "/about", "/blog", "/projects", "/docs"}

type publishingService struct {
	folderRepo docsysRepo.FolderRepository
	docRepo    docsysRepo.DocumentRepository
	site       SiteInfo
	logger     *slog.Logger
}

// NewPublishingService creates the service behind the public listing,
// sitemap.xml and the RSS feed
func NewPublishingService(
	folderRepo docsysRepo.FolderRepository,
	docRepo docsysRepo.DocumentRepository,
	site SiteInfo,
	logger *slog.Logger,
) docsysSvc.PublishingService {
	return &publishingService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		site:       site,
		logger:     logger,
	}
}

// ListPublished returns published documents in navigation order. Folders and
// documents are read concurrently and joined through the forest build, so
// every entry carries its canonical path. Only documents whose path resolves
// are listed.
func (s *publishingService) ListPublished(ctx context.Context) ([]models.PublishedEntry, error) {
	var (
		folders []models.Folder
		docs    []models.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		folders, err = s.folderRepo.ListAll(gctx)
		if err != nil {
			return domain.NewStoreUnavailable("list folders", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		docs, err = s.docRepo.ListAll(gctx, models.DocumentFilter{PublishedOnly: true})
		if err != nil {
			return domain.NewStoreUnavailable("list published documents", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	forest := BuildForest(models.AttachDocuments(folders, docs))
	logOrphans(s.logger, "publishing", forest)

	byID := make(map[string]*models.Document, len(docs))
	for i := range docs {
		byID[docs[i].ID] = &docs[i]
	}

	// Promoted orphans sit at root level in the forest but are not real roots,
	// so no docs URL under them resolves. Leave their subtrees out.
	orphans := make(map[string]bool, len(forest.Orphans))
	for _, id := range forest.Orphans {
		orphans[id] = true
	}

	entries := make([]models.PublishedEntry, 0, forest.DocumentCount)
	forest.Walk(func(node *models.FolderTreeNode) bool {
		if orphans[node.ID] {
			return false
		}
		for _, leaf := range node.Documents {
			doc, ok := byID[leaf.ID]
			if !ok {
				continue
			}
			tags := doc.Tags
			if tags == nil {
				tags = []string{}
			}
			entries = append(entries, models.PublishedEntry{
				ID:          doc.ID,
				Title:       doc.Title,
				Slug:        doc.Slug,
				Description: doc.Description,
				Tags:        tags,
				Path:        leaf.Path,
				CreatedAt:   doc.CreatedAt,
				UpdatedAt:   doc.UpdatedAt,
			})
		}
		return true
	})

	return entries, nil
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// Sitemap lists the static pages followed by every published document under
// its full canonical path
func (s *publishingService) Sitemap(ctx context.Context) ([]byte, error) {
	entries, err := s.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(staticRoutes)+len(entries)),
	}
	for _, route := range staticRoutes {
		priority := 0.8
		if route == "" {
			priority = 1
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.site.URL + route,
			ChangeFreq: "weekly",
			Priority:   priority,
		})
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.docURL(e.Path),
			LastMod:    e.UpdatedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "monthly",
			Priority:   0.6,
		})
	}

	return marshalXML(set)
}

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      rssAtom   `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type rssAtom struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	Description string   `xml:"description,omitempty"`
	PubDate     string   `xml:"pubDate"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Feed renders the most recently updated published documents, newest first
func (s *publishingService) Feed(ctx context.Context, now time.Time) ([]byte, error) {
	entries, err := s.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	if len(entries) > config.FeedItemLimit {
		entries = entries[:config.FeedItemLimit]
	}

	description := s.site.Description
	if description == "" {
		description = fmt.Sprintf("Recently updated documentation on %s", s.site.Title)
	}

	feed := rssDocument{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         s.site.Title,
			Link:          s.site.URL + "/docs",
			Description:   description,
			Language:      "en-us",
			LastBuildDate: now.UTC().Format(time.RFC1123Z),
			AtomLink: rssAtom{
				Href: s.site.URL + "/api/rss",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: make([]rssItem, 0, len(entries)),
		},
	}
	for _, e := range entries {
		link := s.docURL(e.Path)
		item := rssItem{
			Title:      e.Title,
			Link:       link,
			GUID:       rssGUID{IsPermaLink: true, Value: link},
			PubDate:    e.UpdatedAt.UTC().Format(time.RFC1123Z),
			Categories: e.Tags,
		}
		if e.Description != nil {
			item.Description = *e.Description
		}
		feed.Channel.Items = append(feed.Channel.Items, item)
	}

	s.logger.Debug("rss feed rendered", "item_count", len(feed.Channel.Items))
	return marshalXML(feed)
}

func (s *publishingService) docURL(path string) string {
	return s.site.URL + "/docs/" + path
}

func marshalXML(v any) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode xml: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
