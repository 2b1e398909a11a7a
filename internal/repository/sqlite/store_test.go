package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(filepath.Join(t.TempDir(), "docs.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func createFolder(t *testing.T, store *Store, slug string, parentID *string, order int) *models.Folder {
	t.Helper()
	now := time.Now().UTC()
	f := &models.Folder{Name: slug, Slug: slug, ParentID: parentID, Order: order, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.FolderRepository().Create(context.Background(), f))
	return f
}

func createDoc(t *testing.T, store *Store, slug, folderID string, published bool) *models.Document {
	t.Helper()
	now := time.Now().UTC()
	d := &models.Document{
		Title: slug, Slug: slug, Content: "# " + slug, Published: published,
		FolderID: folderID, Tags: []string{"go"}, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.DocumentRepository().Create(context.Background(), d))
	return d
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "nested", "docs.db")

	store, err := Open(path, logger)
	require.NoError(t, err)
	createFolder(t, store, "kept", nil, 0)
	require.NoError(t, store.Close())

	store, err = Open(path, logger)
	require.NoError(t, err)
	defer store.Close()

	folders, err := store.FolderRepository().ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, folders, 1)
	assert.Equal(t, path, store.Path())
}

func TestFolderRepository_CRUD(t *testing.T) {
	store := setupTestStore(t)
	repo := store.FolderRepository()
	ctx := context.Background()

	root := createFolder(t, store, "guides", nil, 0)
	assert.NotEmpty(t, root.ID)

	child := createFolder(t, store, "go", &root.ID, 1)

	got, err := repo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "go", got.Slug)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, root.ID, *got.ParentID)

	bySlug, err := repo.GetBySlug(ctx, nil, "guides")
	require.NoError(t, err)
	assert.Equal(t, root.ID, bySlug.ID)

	_, err = repo.GetBySlug(ctx, nil, "go")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got.Name = "Golang"
	got.Description = strPtr("All things Go")
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Golang", got.Name)
	assert.Equal(t, "All things Go", *got.Description)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestFolderRepository_SlugUniqueness(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	root := createFolder(t, store, "guides", nil, 0)
	child := createFolder(t, store, "go", &root.ID, 0)

	tests := []struct {
		name     string
		slug     string
		parentID *string
	}{
		{name: "root scope", slug: "guides"},
		{name: "sibling scope", slug: "go", parentID: &root.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Now().UTC()
			err := store.FolderRepository().Create(ctx, &models.Folder{
				Name: "dup", Slug: tt.slug, ParentID: tt.parentID, CreatedAt: now, UpdatedAt: now,
			})
			var conflict *domain.ConflictError
			require.True(t, errors.As(err, &conflict), "got %v", err)
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}

	// Same slug under a different parent is fine
	createFolder(t, store, "go", &child.ID, 0)
}

func TestFolderRepository_DeleteCascades(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	root := createFolder(t, store, "guides", nil, 0)
	child := createFolder(t, store, "go", &root.ID, 0)
	doc := createDoc(t, store, "intro", child.ID, true)

	require.NoError(t, store.FolderRepository().Delete(ctx, root.ID))

	_, err := store.FolderRepository().GetByID(ctx, child.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.DocumentRepository().GetByID(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.FolderRepository().Delete(ctx, root.ID), domain.ErrNotFound)
}

func TestFolderRepository_Summaries(t *testing.T) {
	store := setupTestStore(t)
	root := createFolder(t, store, "guides", nil, 0)
	createFolder(t, store, "go", &root.ID, 1)
	createDoc(t, store, "intro", root.ID, true)
	createDoc(t, store, "draft", root.ID, false)

	summaries, err := store.FolderRepository().ListSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "guides", summaries[0].Slug)
	assert.Equal(t, 2, summaries[0].DocCount)
	assert.Equal(t, 1, summaries[0].ChildCount)
}

func TestFolderRepository_ListAllWithDocuments(t *testing.T) {
	store := setupTestStore(t)
	root := createFolder(t, store, "guides", nil, 0)
	createDoc(t, store, "intro", root.ID, true)
	createDoc(t, store, "draft", root.ID, false)

	folders, err := store.FolderRepository().ListAllWithDocuments(context.Background(), models.DocumentFilter{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, folders, 1)
	require.Len(t, folders[0].Documents, 1)
	assert.Equal(t, "intro", folders[0].Documents[0].Slug)
	assert.Empty(t, folders[0].Documents[0].Content)
}

func TestDocumentRepository_CRUD(t *testing.T) {
	store := setupTestStore(t)
	repo := store.DocumentRepository()
	ctx := context.Background()
	folder := createFolder(t, store, "guides", nil, 0)

	doc := createDoc(t, store, "intro", folder.ID, false)

	got, err := repo.GetBySlug(ctx, folder.ID, "intro")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "# intro", got.Content)
	assert.Equal(t, []string{"go"}, got.Tags)
	assert.False(t, got.Published)
	assert.WithinDuration(t, doc.CreatedAt, got.CreatedAt, time.Second)

	got.Published = true
	got.Tags = []string{"go", "basics"}
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, got.Published)
	assert.Equal(t, []string{"go", "basics"}, got.Tags)

	require.NoError(t, repo.Delete(ctx, doc.ID))
	assert.ErrorIs(t, repo.Delete(ctx, doc.ID), domain.ErrNotFound)
}

func TestDocumentRepository_Constraints(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	folder := createFolder(t, store, "guides", nil, 0)
	existing := createDoc(t, store, "intro", folder.ID, true)

	now := time.Now().UTC()
	err := store.DocumentRepository().Create(ctx, &models.Document{
		Title: "x", Slug: "intro", Content: "x", FolderID: folder.ID, CreatedAt: now, UpdatedAt: now,
	})
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict), "got %v", err)
	assert.Equal(t, existing.ID, conflict.ResourceID)

	err = store.DocumentRepository().Create(ctx, &models.Document{
		Title: "x", Slug: "orphan", Content: "x", FolderID: "no-such-folder", CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDocumentRepository_ListBySlug(t *testing.T) {
	store := setupTestStore(t)
	goFolder := createFolder(t, store, "go", nil, 0)
	rustFolder := createFolder(t, store, "rust", nil, 1)
	createDoc(t, store, "intro", goFolder.ID, true)
	createDoc(t, store, "intro", rustFolder.ID, false)

	published, err := store.DocumentRepository().ListBySlug(context.Background(), "intro", models.DocumentFilter{PublishedOnly: true, WithContent: true})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, goFolder.ID, published[0].FolderID)
	assert.Equal(t, "# intro", published[0].Content)

	all, err := store.DocumentRepository().ListBySlug(context.Background(), "intro", models.DocumentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Empty(t, all[0].Content)

	items, err := store.DocumentRepository().ListWithFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].FolderSlug)
}

func TestTransactionManager_Rollback(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.TransactionManager().ExecTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()
		if err := store.FolderRepository().Create(txCtx, &models.Folder{Name: "tmp", Slug: "tmp", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	folders, err := store.FolderRepository().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, folders)

	err = store.TransactionManager().ExecTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()
		return store.FolderRepository().Create(txCtx, &models.Folder{Name: "kept", Slug: "kept", CreatedAt: now, UpdatedAt: now})
	})
	require.NoError(t, err)

	folders, err = store.FolderRepository().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, folders, 1)
}

func TestStore_ClosedReportsUnavailable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(filepath.Join(t.TempDir(), "docs.db"), logger)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.FolderRepository().ListAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = store.FolderRepository().GetByID(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_ClearData(t *testing.T) {
	store := setupTestStore(t)
	root := createFolder(t, store, "guides", nil, 0)
	createDoc(t, store, "intro", root.ID, true)

	require.NoError(t, store.ClearData(context.Background()))

	folders, err := store.FolderRepository().ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func strPtr(s string) *string { return &s }
