package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/handler"
	"portfolio/internal/httputil"
	"portfolio/internal/middleware"
	"portfolio/internal/repository"
	serviceDocsys "portfolio/internal/service/docsystem"
	"portfolio/internal/service/docsystem/converter"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, closeLog, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"driver", cfg.DatabaseDriver,
		"resolver", cfg.ResolverStrategy,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer backend.Close()

	// Services
	validator := serviceDocsys.NewResourceValidator(backend.Folders)
	folderService := serviceDocsys.NewFolderService(backend.Folders, backend.TxManager, validator, logger)
	docService := serviceDocsys.NewDocumentService(backend.Documents, backend.TxManager, validator, logger)
	treeService := serviceDocsys.NewTreeService(backend.Folders, logger)
	resolver := serviceDocsys.NewSlugResolver(backend.Folders, backend.Documents, cfg.ResolverStrategy, logger)
	publishing := serviceDocsys.NewPublishingService(backend.Folders, backend.Documents, serviceDocsys.SiteInfo{
		URL:   cfg.SiteURL,
		Title: cfg.SiteTitle,
	}, logger)
	importService := serviceDocsys.NewImportService(
		backend.Folders,
		backend.Documents,
		folderService,
		docService,
		converter.NewRegistry(),
		logger,
	)

	// Handlers
	docsHandler := handler.NewDocsHandler(resolver, publishing, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)
	feedHandler := handler.NewFeedHandler(publishing, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	documentHandler := handler.NewDocumentHandler(docService, logger)
	importHandler := handler.NewImportHandler(importService, logger)

	logger.Info("services initialized")

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /health", handler.HealthCheck(backend.Ping, logger))
	mux.HandleFunc("GET /api/docs/structure", treeHandler.GetStructure)
	mux.HandleFunc("GET /api/docs", docsHandler.ListPublished)
	mux.HandleFunc("GET /api/docs/{slug...}", docsHandler.GetDocument)
	mux.HandleFunc("GET /sitemap.xml", feedHandler.Sitemap)
	mux.HandleFunc("GET /api/rss", feedHandler.Feed)

	// Admin routes
	admin := http.NewServeMux()
	admin.HandleFunc("GET /api/admin/docs/tree", treeHandler.GetAdminTree)
	admin.HandleFunc("GET /api/admin/docs/preview/{slug...}", docsHandler.PreviewDocument)

	admin.HandleFunc("GET /api/admin/docs/folders", folderHandler.ListFolders)
	admin.HandleFunc("POST /api/admin/docs/folders", folderHandler.CreateFolder)
	admin.HandleFunc("GET /api/admin/docs/folders/{id}", folderHandler.GetFolder)
	admin.HandleFunc("PATCH /api/admin/docs/folders/{id}", folderHandler.UpdateFolder)
	admin.HandleFunc("DELETE /api/admin/docs/folders/{id}", folderHandler.DeleteFolder)

	admin.HandleFunc("GET /api/admin/docs/documents", documentHandler.ListDocuments)
	admin.HandleFunc("POST /api/admin/docs/documents", documentHandler.CreateDocument)
	admin.HandleFunc("GET /api/admin/docs/documents/{id}", documentHandler.GetDocument)
	admin.HandleFunc("PATCH /api/admin/docs/documents/{id}", documentHandler.UpdateDocument)
	admin.HandleFunc("DELETE /api/admin/docs/documents/{id}", documentHandler.DeleteDocument)

	admin.HandleFunc("POST /api/admin/docs/import", importHandler.Import)

	if cfg.JWKSURL == "" {
		logger.Warn("JWKS_URL not set, admin API disabled")
		mux.HandleFunc("/api/admin/", func(w http.ResponseWriter, r *http.Request) {
			httputil.RespondError(w, http.StatusServiceUnavailable, "admin API is not configured")
		})
	} else {
		verifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()
		mux.Handle("/api/admin/", middleware.AdminAuth(verifier, cfg.AdminRole, logger)(admin))
	}

	// CORS - Must wrap auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})

	// Order: Recovery → RequestLogger → CORS → Routes
	h := middleware.Chain(mux,
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
		corsHandler.Handler,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
