package docsystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
	"portfolio/internal/domain/repositories"
)

var errStoreDown = errors.New("connection refused")

// memStore is an in-memory implementation of both repositories. Setting
// fail[op] makes that operation return the error.
type memStore struct {
	mu      sync.Mutex
	folders map[string]models.Folder
	docs    map[string]models.Document
	seq     int
	fail    map[string]error
	calls   map[string]int

	// afterListBySlug runs once ListBySlug has returned, to simulate a
	// concurrent delete between resolution steps
	afterListBySlug func()
}

func newMemStore() *memStore {
	return &memStore{
		folders: make(map[string]models.Folder),
		docs:    make(map[string]models.Document),
		fail:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func (m *memStore) enter(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
	if err := m.fail[op]; err != nil {
		return domain.NewStoreUnavailable(op, err)
	}
	return nil
}

func (m *memStore) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// addFolder seeds a folder with a fixed id
func (m *memStore) addFolder(id, slug string, parentID *string, order int) models.Folder {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := models.Folder{ID: id, Name: slug, Slug: slug, ParentID: parentID, Order: order}
	m.folders[id] = f
	return f
}

// addDoc seeds a document with a fixed id
func (m *memStore) addDoc(id, slug, folderID string, published bool) models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := models.Document{
		ID:        id,
		Title:     slug,
		Slug:      slug,
		FolderID:  folderID,
		Published: published,
		Content:   "# " + slug,
		Tags:      []string{},
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	m.docs[id] = d
	return d
}

func (m *memStore) sortedFolders() []models.Folder {
	out := make([]models.Folder, 0, len(m.folders))
	for _, f := range m.folders {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) sortedDocs(filter models.DocumentFilter, keep func(models.Document) bool) []models.Document {
	out := make([]models.Document, 0, len(m.docs))
	for _, d := range m.docs {
		if filter.PublishedOnly && !d.Published {
			continue
		}
		if keep != nil && !keep(d) {
			continue
		}
		if !filter.WithContent {
			d.Content = ""
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// folderRepo adapts memStore to docsysRepo.FolderRepository
type folderRepo struct{ *memStore }

func (r folderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if err := r.enter("folder.Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	folder.ID = r.nextID("folder")
	r.folders[folder.ID] = *folder
	return nil
}

func (r folderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	if err := r.enter("folder.GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "folder", ID: id}
	}
	return &f, nil
}

func (r folderRepo) GetBySlug(ctx context.Context, parentID *string, slug string) (*models.Folder, error) {
	if err := r.enter("folder.GetBySlug"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.sortedFolders() {
		if f.Slug == slug && sameParent(f.ParentID, parentID) {
			return &f, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "folder", ID: slug}
}

func (r folderRepo) Update(ctx context.Context, folder *models.Folder) error {
	if err := r.enter("folder.Update"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.folders[folder.ID]; !ok {
		return &domain.NotFoundError{Resource: "folder", ID: folder.ID}
	}
	r.folders[folder.ID] = *folder
	return nil
}

func (r folderRepo) Delete(ctx context.Context, id string) error {
	if err := r.enter("folder.Delete"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.folders[id]; !ok {
		return &domain.NotFoundError{Resource: "folder", ID: id}
	}
	r.deleteCascade(id)
	return nil
}

func (r folderRepo) deleteCascade(id string) {
	delete(r.folders, id)
	for docID, d := range r.docs {
		if d.FolderID == id {
			delete(r.docs, docID)
		}
	}
	for childID, f := range r.folders {
		if f.ParentID != nil && *f.ParentID == id {
			r.deleteCascade(childID)
		}
	}
}

func (r folderRepo) ListAll(ctx context.Context) ([]models.Folder, error) {
	if err := r.enter("folder.ListAll"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedFolders(), nil
}

func (r folderRepo) ListAllWithDocuments(ctx context.Context, filter models.DocumentFilter) ([]models.Folder, error) {
	if err := r.enter("folder.ListAllWithDocuments"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	filter.WithContent = false
	return models.AttachDocuments(r.sortedFolders(), r.sortedDocs(filter, nil)), nil
}

func (r folderRepo) ListSummaries(ctx context.Context) ([]models.FolderSummary, error) {
	if err := r.enter("folder.ListSummaries"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FolderSummary
	for _, f := range r.sortedFolders() {
		s := models.FolderSummary{Folder: f}
		for _, d := range r.docs {
			if d.FolderID == f.ID {
				s.DocCount++
			}
		}
		for _, c := range r.folders {
			if c.ParentID != nil && *c.ParentID == f.ID {
				s.ChildCount++
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// docRepo adapts memStore to docsysRepo.DocumentRepository
type docRepo struct{ *memStore }

func (r docRepo) Create(ctx context.Context, doc *models.Document) error {
	if err := r.enter("doc.Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.ID = r.nextID("doc")
	r.docs[doc.ID] = *doc
	return nil
}

func (r docRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	if err := r.enter("doc.GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "document", ID: id}
	}
	return &d, nil
}

func (r docRepo) GetBySlug(ctx context.Context, folderID, slug string) (*models.Document, error) {
	if err := r.enter("doc.GetBySlug"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.sortedDocs(models.DocumentFilter{WithContent: true}, nil) {
		if d.FolderID == folderID && d.Slug == slug {
			return &d, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "document", ID: slug}
}

func (r docRepo) Update(ctx context.Context, doc *models.Document) error {
	if err := r.enter("doc.Update"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.ID]; !ok {
		return &domain.NotFoundError{Resource: "document", ID: doc.ID}
	}
	r.docs[doc.ID] = *doc
	return nil
}

func (r docRepo) Delete(ctx context.Context, id string) error {
	if err := r.enter("doc.Delete"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return &domain.NotFoundError{Resource: "document", ID: id}
	}
	delete(r.docs, id)
	return nil
}

func (r docRepo) ListBySlug(ctx context.Context, slug string, filter models.DocumentFilter) ([]models.Document, error) {
	if err := r.enter("doc.ListBySlug"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	out := r.sortedDocs(filter, func(d models.Document) bool { return d.Slug == slug })
	hook := r.afterListBySlug
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	return out, nil
}

func (r docRepo) ListAll(ctx context.Context, filter models.DocumentFilter) ([]models.Document, error) {
	if err := r.enter("doc.ListAll"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedDocs(filter, nil), nil
}

func (r docRepo) ListWithFolders(ctx context.Context) ([]models.DocumentListItem, error) {
	if err := r.enter("doc.ListWithFolders"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DocumentListItem
	for _, d := range r.sortedDocs(models.DocumentFilter{}, nil) {
		f := r.folders[d.FolderID]
		out = append(out, models.DocumentListItem{Document: d, FolderName: f.Name, FolderSlug: f.Slug})
	}
	return out, nil
}

// passthroughTx runs fn directly; the memory store has no transactions
type passthroughTx struct{}

func (passthroughTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
