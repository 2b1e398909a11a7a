package docsystem

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	docsysSvc "portfolio/internal/domain/services/docsystem"
)

var testSite = SiteInfo{URL: "https://example.dev", Title: "Example Docs"}

func newTestPublishingService(store *memStore) docsysSvc.PublishingService {
	return NewPublishingService(folderRepo{store}, docRepo{store}, testSite, testLogger())
}

func seedPublished() *memStore {
	store := newMemStore()
	store.addFolder("go", "go", nil, 0)
	store.addFolder("basics", "basics", strPtr("go"), 0)
	store.addFolder("rust", "rust", nil, 1)
	store.addDoc("d1", "intro", "go", true)
	store.addDoc("d2", "slices", "basics", true)
	store.addDoc("d3", "intro", "rust", true)
	store.addDoc("d4", "draft", "rust", false)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"d1", "d2", "d3"} {
		d := store.docs[id]
		d.UpdatedAt = base.Add(time.Duration(i) * time.Hour)
		d.Tags = []string{"tag-" + id}
		store.docs[id] = d
	}
	return store
}

func TestPublishingService_ListPublished(t *testing.T) {
	svc := newTestPublishingService(seedPublished())

	entries, err := svc.ListPublished(context.Background())
	require.NoError(t, err)

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{"go/intro", "go/basics/slices", "rust/intro"}, paths)
}

func TestPublishingService_SkipsOrphanSubtrees(t *testing.T) {
	store := seedPublished()
	store.addFolder("lost", "lost", strPtr("deleted-parent"), 0)
	store.addFolder("lost-child", "child", strPtr("lost"), 0)
	store.addFolder("loop-a", "loop-a", strPtr("loop-b"), 5)
	store.addFolder("loop-b", "loop-b", strPtr("loop-a"), 6)
	store.addDoc("o1", "page", "lost", true)
	store.addDoc("o2", "deep", "lost-child", true)
	store.addDoc("o3", "cycle", "loop-b", true)

	svc := newTestPublishingService(store)
	entries, err := svc.ListPublished(context.Background())
	require.NoError(t, err)

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{"go/intro", "go/basics/slices", "rust/intro"}, paths)

	// Every listed path must resolve
	resolver := newTestResolver(store, config.ResolverBatch)
	for _, e := range entries {
		_, err := resolver.Resolve(context.Background(), strings.Split(e.Path, "/"), docsysSvc.ResolveOptions{})
		assert.NoError(t, err, e.Path)
	}

	sitemap, err := svc.Sitemap(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, string(sitemap), "lost")
	assert.NotContains(t, string(sitemap), "cycle")
}

func TestPublishingService_StoreFailure(t *testing.T) {
	for _, op := range []string{"folder.ListAll", "doc.ListAll"} {
		t.Run(op, func(t *testing.T) {
			store := seedPublished()
			store.fail[op] = errStoreDown
			svc := newTestPublishingService(store)

			_, err := svc.ListPublished(context.Background())
			assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

			_, err = svc.Sitemap(context.Background())
			assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		})
	}
}

func TestPublishingService_Sitemap(t *testing.T) {
	svc := newTestPublishingService(seedPublished())

	data, err := svc.Sitemap(context.Background())
	require.NoError(t, err)

	var set struct {
		URLs []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(data, &set))

	locs := make([]string, len(set.URLs))
	for i, u := range set.URLs {
		locs[i] = u.Loc
	}
	assert.Contains(t, locs, "https://example.dev")
	assert.Contains(t, locs, "https://example.dev/docs")
	assert.Contains(t, locs, "https://example.dev/docs/go/basics/slices")
	assert.Contains(t, locs, "https://example.dev/docs/rust/intro")
	assert.NotContains(t, locs, "https://example.dev/docs/rust/draft")
	assert.Len(t, locs, len(staticRoutes)+3)
	assert.Equal(t, "2025-03-01T01:00:00Z", set.URLs[len(staticRoutes)+1].LastMod)
}

func TestPublishingService_Feed(t *testing.T) {
	svc := newTestPublishingService(seedPublished())
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	data, err := svc.Feed(context.Background(), now)
	require.NoError(t, err)

	feed, err := gofeed.NewParser().ParseString(string(data))
	require.NoError(t, err)

	assert.Equal(t, "rss", feed.FeedType)
	assert.Equal(t, "Example Docs", feed.Title)
	require.Len(t, feed.Items, 3)
	// Newest first
	assert.Equal(t, "https://example.dev/docs/rust/intro", feed.Items[0].Link)
	assert.Equal(t, feed.Items[0].Link, feed.Items[0].GUID)
	assert.Equal(t, []string{"tag-d3"}, feed.Items[0].Categories)
	assert.Equal(t, "https://example.dev/docs/go/intro", feed.Items[2].Link)
}

func TestPublishingService_FeedLimit(t *testing.T) {
	store := newMemStore()
	store.addFolder("f", "notes", nil, 0)
	for i := 0; i < config.FeedItemLimit+5; i++ {
		store.addDoc(fmt.Sprintf("d%02d", i), fmt.Sprintf("note-%d", i), "f", true)
	}
	svc := newTestPublishingService(store)

	data, err := svc.Feed(context.Background(), time.Now())
	require.NoError(t, err)

	feed, err := gofeed.NewParser().ParseString(string(data))
	require.NoError(t, err)
	assert.Len(t, feed.Items, config.FeedItemLimit)
}
