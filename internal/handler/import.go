package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	docsysSvc "portfolio/internal/domain/services/docsystem"
	"portfolio/internal/httputil"
)

// maxImportRequestBytes bounds the whole multipart body
const maxImportRequestBytes = 100 << 20

// ImportHandler handles bulk content uploads
type ImportHandler struct {
	importService docsysSvc.ImportService
	logger        *slog.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService docsysSvc.ImportService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		logger:        logger,
	}
}

// ImportResponse represents the response for import operations
type ImportResponse struct {
	Success   bool                       `json:"success"`
	Summary   docsysSvc.ImportSummary    `json:"summary"`
	Errors    []docsysSvc.ImportError    `json:"errors"`
	Documents []docsysSvc.ImportDocument `json:"documents"`
}

// Import uploads markdown, MDX, text, HTML or zip files.
// POST /api/admin/docs/import
//
// Query parameters:
//   - folder_id: optional, folder the upload is placed under (empty = root)
//   - overwrite: optional, "true" updates existing documents instead of skipping them
//   - publish: optional, "true" publishes pages whose frontmatter does not say otherwise
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := docsysSvc.ImportOptions{}
	var err error
	if opts.Overwrite, err = parseBoolParam(query.Get("overwrite")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "overwrite must be true or false")
		return
	}
	if opts.Publish, err = parseBoolParam(query.Get("publish")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "publish must be true or false")
		return
	}
	if folderID := query.Get("folder_id"); folderID != "" {
		if err := checkBodyID("folder_id", &folderID); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.FolderID = &folderID
	}
	if userID := httputil.GetUserID(r); userID != "" {
		opts.AuthorID = &userID
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportRequestBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "No files provided")
		return
	}

	files := make([]docsysSvc.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			h.logger.Error("failed to open uploaded file", "file", fh.Filename, "error", err)
			httputil.RespondError(w, http.StatusInternalServerError, "failed to open uploaded file")
			return
		}
		defer func() { _ = file.Close() }()

		files = append(files, docsysSvc.UploadedFile{Filename: fh.Filename, Content: file})
	}

	h.logger.Info("starting import",
		"file_count", len(files),
		"folder_id", opts.FolderID,
		"overwrite", opts.Overwrite,
		"publish", opts.Publish,
	)

	result, err := h.importService.ImportFiles(r.Context(), files, opts)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ImportResponse{
		Success:   result.Summary.Failed == 0,
		Summary:   result.Summary,
		Errors:    result.Errors,
		Documents: result.Documents,
	})
}

func parseBoolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
