package docsystem

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
	docsysSvc "portfolio/internal/domain/services/docsystem"
)

func newTestFolderService(store *memStore) docsysSvc.FolderService {
	repo := folderRepo{store}
	return NewFolderService(repo, passthroughTx{}, NewResourceValidator(repo), testLogger())
}

func TestFolderService_Create(t *testing.T) {
	store := newMemStore()
	store.addFolder("root", "guides", nil, 0)
	store.addFolder("taken", "taken", strPtr("root"), 0)
	svc := newTestFolderService(store)

	tests := []struct {
		name    string
		req     docsysSvc.CreateFolderRequest
		wantErr error
	}{
		{name: "root folder", req: docsysSvc.CreateFolderRequest{Name: "Go", Slug: "go"}},
		{name: "child folder", req: docsysSvc.CreateFolderRequest{Name: "Basics", Slug: "basics", ParentID: strPtr("root")}},
		{name: "blank parent means root", req: docsysSvc.CreateFolderRequest{Name: "Rust", Slug: "rust", ParentID: strPtr("  ")}},
		{name: "missing name", req: docsysSvc.CreateFolderRequest{Slug: "x"}, wantErr: domain.ErrValidation},
		{name: "bad slug", req: docsysSvc.CreateFolderRequest{Name: "X", Slug: "Not A Slug"}, wantErr: domain.ErrValidation},
		{name: "double hyphen slug", req: docsysSvc.CreateFolderRequest{Name: "X", Slug: "a--b"}, wantErr: domain.ErrValidation},
		{name: "negative order", req: docsysSvc.CreateFolderRequest{Name: "X", Slug: "x", Order: -1}, wantErr: domain.ErrValidation},
		{name: "unknown parent", req: docsysSvc.CreateFolderRequest{Name: "X", Slug: "x", ParentID: strPtr("nope")}, wantErr: domain.ErrValidation},
		{name: "sibling slug taken", req: docsysSvc.CreateFolderRequest{Name: "X", Slug: "taken", ParentID: strPtr("root")}, wantErr: domain.ErrConflict},
		{name: "root slug taken", req: docsysSvc.CreateFolderRequest{Name: "X", Slug: "guides"}, wantErr: domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			got, err := svc.CreateFolder(context.Background(), &req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, req.Slug, got.Slug)
		})
	}
}

func TestFolderService_CreateConflictCarriesExistingID(t *testing.T) {
	store := newMemStore()
	store.addFolder("root", "guides", nil, 0)
	svc := newTestFolderService(store)

	_, err := svc.CreateFolder(context.Background(), &docsysSvc.CreateFolderRequest{Name: "G", Slug: "guides"})

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "root", conflict.ResourceID)
	assert.Equal(t, "folder", conflict.ResourceType)
}

func TestFolderService_Move(t *testing.T) {
	newStore := func() *memStore {
		store := newMemStore()
		store.addFolder("a", "a", nil, 0)
		store.addFolder("b", "b", strPtr("a"), 0)
		store.addFolder("c", "c", strPtr("b"), 0)
		store.addFolder("other", "other", nil, 1)
		store.addFolder("clash", "c", strPtr("other"), 0)
		return store
	}

	tests := []struct {
		name       string
		id         string
		body       string
		wantErr    error
		wantParent *string
	}{
		{name: "under itself", id: "a", body: `{"parent_id":"a"}`, wantErr: domain.ErrValidation},
		{name: "under descendant", id: "a", body: `{"parent_id":"c"}`, wantErr: domain.ErrValidation},
		{name: "to root", id: "c", body: `{"parent_id":null}`},
		{name: "to sibling tree", id: "b", body: `{"parent_id":"other"}`, wantParent: strPtr("other")},
		{name: "slug clash at destination", id: "c", body: `{"parent_id":"other"}`, wantErr: domain.ErrConflict},
		{name: "rename only", id: "c", body: `{"name":"Renamed"}`, wantParent: strPtr("b")},
		{name: "empty patch", id: "c", body: `{}`, wantErr: domain.ErrValidation},
		{name: "missing folder", id: "zzz", body: `{"name":"x"}`, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestFolderService(newStore())
			var req docsysSvc.UpdateFolderRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			got, err := svc.UpdateFolder(context.Background(), tt.id, &req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantParent, got.ParentID)
		})
	}
}

func TestFolderService_DeleteCascades(t *testing.T) {
	store := newMemStore()
	store.addFolder("a", "a", nil, 0)
	store.addFolder("b", "b", strPtr("a"), 0)
	store.addDoc("d", "page", "b", true)
	svc := newTestFolderService(store)

	require.NoError(t, svc.DeleteFolder(context.Background(), "a"))
	assert.Empty(t, store.folders)
	assert.Empty(t, store.docs)

	assert.ErrorIs(t, svc.DeleteFolder(context.Background(), "a"), domain.ErrNotFound)
}

func TestFolderService_ListFolders(t *testing.T) {
	store := newMemStore()
	store.addFolder("a", "a", nil, 0)
	store.addFolder("b", "b", strPtr("a"), 0)
	store.addDoc("d", "page", "a", true)
	svc := newTestFolderService(store)

	got, err := svc.ListFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].DocCount)
	assert.Equal(t, 1, got[0].ChildCount)
}
