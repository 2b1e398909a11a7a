package docsystem

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	models "portfolio/internal/domain/models/docsystem"
	docsysRepo "portfolio/internal/domain/repositories/docsystem"
	docsysSvc "portfolio/internal/domain/services/docsystem"
	"portfolio/internal/httputil"
	"portfolio/internal/service/docsystem/converter"
)

// importService implements the ImportService interface. Writes go through
// the folder and document services so imported content gets the same
// validation and conflict checks as the admin API.
type importService struct {
	folderRepo    docsysRepo.FolderRepository
	docRepo       docsysRepo.DocumentRepository
	folderService docsysSvc.FolderService
	docService    docsysSvc.DocumentService
	converters    *converter.Registry
	logger        *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(
	folderRepo docsysRepo.FolderRepository,
	docRepo docsysRepo.DocumentRepository,
	folderService docsysSvc.FolderService,
	docService docsysSvc.DocumentService,
	converters *converter.Registry,
	logger *slog.Logger,
) docsysSvc.ImportService {
	return &importService{
		folderRepo:    folderRepo,
		docRepo:       docRepo,
		folderService: folderService,
		docService:    docService,
		converters:    converters,
		logger:        logger,
	}
}

// importRun holds the state of one import call
type importRun struct {
	opts    docsysSvc.ImportOptions
	result  *docsysSvc.ImportResult
	folders map[string]*string // "parentID/slug" -> folder id
}

func newImportRun(opts docsysSvc.ImportOptions) *importRun {
	return &importRun{
		opts: opts,
		result: &docsysSvc.ImportResult{
			Errors:    []docsysSvc.ImportError{},
			Documents: []docsysSvc.ImportDocument{},
		},
		folders: make(map[string]*string),
	}
}

func (run *importRun) fail(file string, err error) {
	run.result.Summary.Failed++
	run.result.Errors = append(run.result.Errors, docsysSvc.ImportError{File: file, Error: err.Error()})
}

func (run *importRun) record(id, docPath, action string) {
	switch action {
	case docsysSvc.ActionCreated:
		run.result.Summary.Created++
	case docsysSvc.ActionUpdated:
		run.result.Summary.Updated++
	case docsysSvc.ActionSkipped:
		run.result.Summary.Skipped++
	}
	run.result.Documents = append(run.result.Documents, docsysSvc.ImportDocument{ID: id, Path: docPath, Action: action})
}

// ImportFiles imports uploaded markdown, text, HTML and zip files
func (s *importService) ImportFiles(ctx context.Context, files []docsysSvc.UploadedFile, opts docsysSvc.ImportOptions) (*docsysSvc.ImportResult, error) {
	run := newImportRun(opts)

	if opts.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *opts.FolderID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, &domain.ValidationError{Message: fmt.Sprintf("folder %s does not exist", *opts.FolderID)}
			}
			return nil, err
		}
	}

	for _, file := range files {
		if run.result.Summary.TotalFiles >= config.MaxImportFiles {
			run.fail(file.Filename, fmt.Errorf("import stopped after %d files", config.MaxImportFiles))
			break
		}

		data, err := readLimited(file.Content)
		if err != nil {
			run.result.Summary.TotalFiles++
			run.fail(file.Filename, err)
			continue
		}

		if strings.EqualFold(path.Ext(file.Filename), ".zip") {
			err = s.importArchive(ctx, run, file.Filename, data)
		} else {
			err = s.importPage(ctx, run, path.Base(file.Filename), data)
		}
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("file import complete",
		"files", len(files),
		"created", run.result.Summary.Created,
		"updated", run.result.Summary.Updated,
		"skipped", run.result.Summary.Skipped,
		"failed", run.result.Summary.Failed,
		"folders_created", run.result.Summary.FoldersCreated,
	)

	return run.result, nil
}

// importArchive imports every supported entry of a zip archive. Only store
// failures abort; bad entries are recorded in the result.
func (s *importService) importArchive(ctx context.Context, run *importRun, name string, data []byte) error {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		run.result.Summary.TotalFiles++
		run.fail(name, fmt.Errorf("failed to open zip file: %w", err))
		return nil
	}

	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() || isHiddenPath(entry.Name) {
			continue
		}
		if !s.converters.Supports(entry.Name) {
			s.logger.Debug("skipping unsupported archive entry", "file", entry.Name)
			run.result.Summary.TotalFiles++
			run.result.Summary.Skipped++
			continue
		}
		if run.result.Summary.TotalFiles >= config.MaxImportFiles {
			run.fail(entry.Name, fmt.Errorf("import stopped after %d files", config.MaxImportFiles))
			return nil
		}

		content, err := readZipEntry(entry)
		if err != nil {
			run.result.Summary.TotalFiles++
			run.fail(entry.Name, err)
			continue
		}
		if err := s.importPage(ctx, run, entry.Name, content); err != nil {
			return err
		}
	}
	return nil
}

// importPage converts one file and upserts it. name is a slash-separated
// path whose directories become folders below the import root.
func (s *importService) importPage(ctx context.Context, run *importRun, name string, data []byte) error {
	run.result.Summary.TotalFiles++

	markdown, err := s.converters.Convert(ctx, name, data)
	if err != nil {
		run.fail(name, err)
		return nil
	}

	dir, file := path.Split(path.Clean("/" + name))
	fileOrder, docSlug := splitOrderPrefix(strings.TrimSuffix(file, path.Ext(file)))
	if docSlug == "" {
		run.fail(name, errors.New("file name does not produce a valid slug"))
		return nil
	}

	var folderSlugs []string
	for _, seg := range strings.Split(strings.Trim(dir, "/"), "/") {
		if seg == "" {
			continue
		}
		_, slug := splitOrderPrefix(seg)
		if slug == "" {
			run.fail(name, fmt.Errorf("directory %q does not produce a valid slug", seg))
			return nil
		}
		folderSlugs = append(folderSlugs, slug)
	}
	if run.opts.FolderID == nil && len(folderSlugs) == 0 {
		run.fail(name, errors.New("pages must be inside a folder; choose a target folder or use a directory"))
		return nil
	}

	folderID, err := s.ensureFolderPath(ctx, run, run.opts.FolderID, folderSlugs)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return err
		}
		run.fail(name, err)
		return nil
	}

	fm, body, err := ParseFrontmatter(markdown)
	if err != nil {
		run.fail(name, err)
		return nil
	}

	page := docsysSvc.ContentDocument{
		Slug:    docSlug,
		Content: markdown,
		Order:   fileOrder,
		Title:   firstHeading(body),
	}
	if fm != nil {
		if t := strings.TrimSpace(fm.Title); t != "" {
			page.Title = t
		}
		page.Published = fm.Published
		page.Description = normalizeOptional(&fm.Description)
		page.Tags = fm.Tags
		if fm.Order != nil {
			page.Order = *fm.Order
		}
	}
	if page.Title == "" {
		page.Title = humanize(docSlug)
	}

	docPath := strings.Join(append(append([]string{}, folderSlugs...), docSlug), "/")
	return s.upsertDocument(ctx, run, *folderID, page, name, docPath)
}

// ImportTree upserts a content tree
func (s *importService) ImportTree(ctx context.Context, tree []docsysSvc.ContentFolder, opts docsysSvc.ImportOptions) (*docsysSvc.ImportResult, error) {
	run := newImportRun(opts)

	for i := range tree {
		if err := s.importFolder(ctx, run, opts.FolderID, &tree[i], ""); err != nil {
			return nil, err
		}
	}

	s.logger.Info("content tree import complete",
		"created", run.result.Summary.Created,
		"updated", run.result.Summary.Updated,
		"skipped", run.result.Summary.Skipped,
		"failed", run.result.Summary.Failed,
		"folders_created", run.result.Summary.FoldersCreated,
	)

	return run.result, nil
}

func (s *importService) importFolder(ctx context.Context, run *importRun, parentID *string, entry *docsysSvc.ContentFolder, parentPath string) error {
	folderPath := joinPath(parentPath, entry.Slug)

	named := *entry
	if strings.TrimSpace(named.Name) == "" {
		named.Name = humanize(named.Slug)
	}

	folder, err := s.upsertFolder(ctx, run, parentID, &named, run.opts.Overwrite)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return err
		}
		// Nothing below a failed folder can be placed
		run.fail(folderPath, err)
		return nil
	}

	for _, doc := range entry.Documents {
		run.result.Summary.TotalFiles++
		if err := s.upsertDocument(ctx, run, folder.ID, doc, joinPath(folderPath, doc.Slug), joinPath(folderPath, doc.Slug)); err != nil {
			return err
		}
	}

	for i := range entry.Folders {
		if err := s.importFolder(ctx, run, &folder.ID, &entry.Folders[i], folderPath); err != nil {
			return err
		}
	}
	return nil
}

// upsertFolder finds the entry's folder by slug in its scope, creating it when
// missing and rewriting its metadata when refresh is set
func (s *importService) upsertFolder(ctx context.Context, run *importRun, parentID *string, entry *docsysSvc.ContentFolder, refresh bool) (*models.Folder, error) {
	existing, err := s.folderRepo.GetBySlug(ctx, parentID, entry.Slug)
	switch {
	case err == nil:
		if !refresh {
			return existing, nil
		}
		name := entry.Name
		order := entry.Order
		return s.folderService.UpdateFolder(ctx, existing.ID, &docsysSvc.UpdateFolderRequest{
			Name:        &name,
			Order:       &order,
			Description: httputil.SetString(entry.Description),
		})
	case errors.Is(err, domain.ErrNotFound):
		folder, err := s.folderService.CreateFolder(ctx, &docsysSvc.CreateFolderRequest{
			Name:        entry.Name,
			Slug:        entry.Slug,
			Description: entry.Description,
			ParentID:    parentID,
			Order:       entry.Order,
		})
		if err != nil {
			return nil, err
		}
		run.result.Summary.FoldersCreated++
		return folder, nil
	default:
		return nil, err
	}
}

// ensureFolderPath walks slugs from parentID, creating missing folders with
// names derived from their slugs. Returns the innermost folder id.
func (s *importService) ensureFolderPath(ctx context.Context, run *importRun, parentID *string, slugs []string) (*string, error) {
	current := parentID
	for _, slug := range slugs {
		key := slug
		if current != nil {
			key = *current + "/" + slug
		}
		if id, ok := run.folders[key]; ok {
			current = id
			continue
		}

		folder, err := s.upsertFolder(ctx, run, current, &docsysSvc.ContentFolder{Name: humanize(slug), Slug: slug}, false)
		if err != nil {
			return nil, err
		}

		run.folders[key] = &folder.ID
		current = &folder.ID
	}
	return current, nil
}

// upsertDocument creates the page or, when it exists, updates or skips it
func (s *importService) upsertDocument(ctx context.Context, run *importRun, folderID string, page docsysSvc.ContentDocument, file, docPath string) error {
	published := run.opts.Publish
	if page.Published != nil {
		published = *page.Published
	}

	existing, err := s.docRepo.GetBySlug(ctx, folderID, page.Slug)
	switch {
	case err == nil:
		if !run.opts.Overwrite {
			run.record(existing.ID, docPath, docsysSvc.ActionSkipped)
			return nil
		}

		req := &docsysSvc.UpdateDocumentRequest{
			Title:     &page.Title,
			Content:   &page.Content,
			Published: &published,
			Order:     &page.Order,
		}
		if page.Description != nil {
			req.Description = httputil.SetString(page.Description)
		}
		if page.Tags != nil {
			req.Tags = &page.Tags
		}
		doc, err := s.docService.UpdateDocument(ctx, existing.ID, req)
		if err != nil {
			return s.pageFailure(run, file, err)
		}
		run.record(doc.ID, docPath, docsysSvc.ActionUpdated)
		return nil

	case errors.Is(err, domain.ErrNotFound):
		doc, err := s.docService.CreateDocument(ctx, &docsysSvc.CreateDocumentRequest{
			Title:       page.Title,
			Slug:        page.Slug,
			Description: page.Description,
			Content:     page.Content,
			Published:   published,
			Order:       page.Order,
			FolderID:    folderID,
			Tags:        page.Tags,
			AuthorID:    run.opts.AuthorID,
		})
		if err != nil {
			return s.pageFailure(run, file, err)
		}
		run.record(doc.ID, docPath, docsysSvc.ActionCreated)
		return nil

	default:
		return err
	}
}

// pageFailure records err against file unless the store is down, which
// aborts the import
func (s *importService) pageFailure(run *importRun, file string, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	run.fail(file, err)
	return nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, config.MaxImportBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > config.MaxImportBytes {
		return nil, fmt.Errorf("file exceeds %d bytes", config.MaxImportBytes)
	}
	return data, nil
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()
	return readLimited(rc)
}

// isHiddenPath skips dotfiles and archive metadata such as __MACOSX
func isHiddenPath(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") || strings.HasPrefix(seg, "__") {
			return true
		}
	}
	return false
}

// splitOrderPrefix turns "02-getting started" into (2, "getting-started").
// Names without a numeric prefix get order 0.
func splitOrderPrefix(name string) (int, string) {
	if i := strings.IndexAny(name, "-_ ."); i > 0 {
		if n, err := strconv.Atoi(name[:i]); err == nil && n >= 0 {
			if rest := slugify(name[i+1:]); rest != "" {
				return n, rest
			}
		}
	}
	return 0, slugify(name)
}

// slugify lowercases name and joins its ASCII letter and digit runs with
// single hyphens
func slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	slug := b.String()
	if len(slug) > config.MaxSlugLength {
		slug = strings.TrimRight(slug[:config.MaxSlugLength], "-")
	}
	return slug
}

// humanize turns "getting-started" into "Getting Started"
func humanize(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// firstHeading returns the text of the first level-one heading, if any
func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}
