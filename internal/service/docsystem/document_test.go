package docsystem

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
	docsysSvc "portfolio/internal/domain/services/docsystem"
)

func newTestDocumentService(store *memStore) docsysSvc.DocumentService {
	return NewDocumentService(docRepo{store}, passthroughTx{}, NewResourceValidator(folderRepo{store}), testLogger())
}

func TestDocumentService_Create(t *testing.T) {
	store := newMemStore()
	store.addFolder("go", "go", nil, 0)
	store.addDoc("existing", "intro", "go", true)
	svc := newTestDocumentService(store)

	tests := []struct {
		name    string
		req     docsysSvc.CreateDocumentRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  docsysSvc.CreateDocumentRequest{Title: "Slices", Slug: "slices", Content: "body", FolderID: "go"},
		},
		{
			name:    "unknown folder",
			req:     docsysSvc.CreateDocumentRequest{Title: "X", Slug: "x", Content: "body", FolderID: "nope"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "slug taken in folder",
			req:     docsysSvc.CreateDocumentRequest{Title: "X", Slug: "intro", Content: "body", FolderID: "go"},
			wantErr: domain.ErrConflict,
		},
		{
			name:    "missing content",
			req:     docsysSvc.CreateDocumentRequest{Title: "X", Slug: "x", FolderID: "go"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "bad slug",
			req:     docsysSvc.CreateDocumentRequest{Title: "X", Slug: "Under_Score", Content: "body", FolderID: "go"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unterminated frontmatter",
			req:     docsysSvc.CreateDocumentRequest{Title: "X", Slug: "x", Content: "---\ntags: [a]\n", FolderID: "go"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			got, err := svc.CreateDocument(context.Background(), &req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.NotNil(t, got.Tags)
		})
	}
}

func TestDocumentService_CreateSameSlugOtherFolder(t *testing.T) {
	store := newMemStore()
	store.addFolder("go", "go", nil, 0)
	store.addFolder("rust", "rust", nil, 1)
	store.addDoc("existing", "intro", "go", true)
	svc := newTestDocumentService(store)

	_, err := svc.CreateDocument(context.Background(), &docsysSvc.CreateDocumentRequest{
		Title: "Intro", Slug: "intro", Content: "body", FolderID: "rust",
	})
	assert.NoError(t, err)
}

func TestDocumentService_CreateUsesFrontmatter(t *testing.T) {
	store := newMemStore()
	store.addFolder("go", "go", nil, 0)
	svc := newTestDocumentService(store)

	content := "---\ntitle: Binary Search\ndescription: Halving sorted slices\ntags: [algorithms, search, algorithms]\n---\n# Binary Search\n"
	got, err := svc.CreateDocument(context.Background(), &docsysSvc.CreateDocumentRequest{
		Slug: "binary-search", Content: content, FolderID: "go",
	})
	require.NoError(t, err)

	assert.Equal(t, "Binary Search", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Halving sorted slices", *got.Description)
	assert.Equal(t, []string{"algorithms", "search"}, got.Tags)
	assert.Equal(t, content, got.Content)
}

func TestDocumentService_RequestWinsOverFrontmatter(t *testing.T) {
	store := newMemStore()
	store.addFolder("go", "go", nil, 0)
	svc := newTestDocumentService(store)

	got, err := svc.CreateDocument(context.Background(), &docsysSvc.CreateDocumentRequest{
		Title:       "Explicit",
		Slug:        "page",
		Description: strPtr("explicit"),
		Tags:        []string{"mine"},
		Content:     "---\ntitle: Header\ndescription: header\ntags: [theirs]\n---\nbody",
		FolderID:    "go",
	})
	require.NoError(t, err)

	assert.Equal(t, "Explicit", got.Title)
	assert.Equal(t, "explicit", *got.Description)
	assert.Equal(t, []string{"mine"}, got.Tags)
}

func TestDocumentService_Update(t *testing.T) {
	newStore := func() *memStore {
		store := newMemStore()
		store.addFolder("go", "go", nil, 0)
		store.addFolder("rust", "rust", nil, 1)
		store.addDoc("d1", "intro", "go", false)
		store.addDoc("d2", "intro", "rust", true)
		store.addDoc("d3", "other", "go", true)
		return store
	}

	tests := []struct {
		name    string
		body    string
		wantErr error
		check   func(t *testing.T, store *memStore)
	}{
		{
			name: "publish",
			body: `{"published":true}`,
			check: func(t *testing.T, store *memStore) {
				assert.True(t, store.docs["d1"].Published)
			},
		},
		{
			name: "clear description",
			body: `{"description":null}`,
			check: func(t *testing.T, store *memStore) {
				assert.Nil(t, store.docs["d1"].Description)
			},
		},
		{
			name: "replace tags",
			body: `{"tags":[" a ","b","a"]}`,
			check: func(t *testing.T, store *memStore) {
				assert.Equal(t, []string{"a", "b"}, store.docs["d1"].Tags)
			},
		},
		{name: "move into folder with same slug", body: `{"folder_id":"rust"}`, wantErr: domain.ErrConflict},
		{name: "rename onto sibling", body: `{"slug":"other"}`, wantErr: domain.ErrConflict},
		{name: "move to unknown folder", body: `{"folder_id":"nope"}`, wantErr: domain.ErrValidation},
		{name: "blank title", body: `{"title":""}`, wantErr: domain.ErrValidation},
		{name: "too many tags", body: `{"tags":["1","2","3","4","5","6","7","8","9","10","11","12","13","14","15","16","17","18","19","20","21"]}`, wantErr: domain.ErrValidation},
		{name: "empty patch", body: `{}`, wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			svc := newTestDocumentService(store)
			var req docsysSvc.UpdateDocumentRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			_, err := svc.UpdateDocument(context.Background(), "d1", &req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, store)
		})
	}
}

func TestDocumentService_Delete(t *testing.T) {
	store := newMemStore()
	store.addFolder("go", "go", nil, 0)
	store.addDoc("d1", "intro", "go", true)
	svc := newTestDocumentService(store)

	require.NoError(t, svc.DeleteDocument(context.Background(), "d1"))
	_, err := svc.GetDocument(context.Background(), "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{}, normalizeTags(nil))
	assert.Equal(t, []string{"go", "db"}, normalizeTags([]string{" go", "", "db", "go "}))
}
