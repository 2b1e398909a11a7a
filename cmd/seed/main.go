package main

import (
	"context"
	"flag"
	"log"
	"os"

	"portfolio/internal/config"
	docsysSvc "portfolio/internal/domain/services/docsystem"
	"portfolio/internal/repository"
	serviceDocsys "portfolio/internal/service/docsystem"
	"portfolio/internal/service/docsystem/converter"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run seeds the store and returns the process exit code. Deferred cleanup
// (pool, log file) runs before main exits.
func run(args []string) int {
	flags := flag.NewFlagSet("seed", flag.ContinueOnError)
	file := flags.String("file", "seed/content.yaml", "Content tree to import")
	driver := flags.String("driver", "", "Storage driver (overrides DATABASE_DRIVER)")
	schemaOnly := flags.Bool("schema-only", false, "Only set up schema, don't seed content")
	clearData := flags.Bool("clear-data", false, "Delete all folders and documents before seeding")
	overwrite := flags.Bool("overwrite", false, "Update documents that already exist")
	publish := flags.Bool("publish", true, "Publish pages whose entry doesn't say otherwise")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	_ = godotenv.Load()

	cfg := config.Load()
	if *driver != "" {
		cfg.DatabaseDriver = *driver
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *clearData {
		log.Printf("🚫 BLOCKED: Cannot run destructive operations (--clear-data) in production environment")
		return 1
	}

	logger, closeLog, err := config.NewLogger(cfg, os.Stdout)
	if err != nil {
		log.Printf("Failed to set up logging: %v", err)
		return 1
	}
	defer closeLog()

	ctx := context.Background()
	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Printf("Failed to open storage: %v", err)
		return 1
	}
	defer backend.Close()

	log.Printf("📋 Ensuring schema is up to date (driver: %s, prefix: %s)", backend.Driver, cfg.TablePrefix)
	if err := backend.ApplySchema(ctx); err != nil {
		log.Printf("Failed to apply schema: %v", err)
		return 1
	}
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return 0
	}

	if *clearData {
		log.Println("🧹 Clearing existing documents and folders...")
		if err := backend.ClearData(ctx); err != nil {
			log.Printf("Failed to clear data: %v", err)
			return 1
		}
	}

	converters := converter.NewRegistry()
	tree, err := loadContentTree(ctx, *file, converters)
	if err != nil {
		log.Printf("Failed to load %s: %v", *file, err)
		return 1
	}

	validator := serviceDocsys.NewResourceValidator(backend.Folders)
	folderService := serviceDocsys.NewFolderService(backend.Folders, backend.TxManager, validator, logger)
	docService := serviceDocsys.NewDocumentService(backend.Documents, backend.TxManager, validator, logger)
	importService := serviceDocsys.NewImportService(backend.Folders, backend.Documents, folderService, docService, converters, logger)

	log.Printf("🌱 Seeding from %s", *file)
	result, err := importService.ImportTree(ctx, tree, docsysSvc.ImportOptions{
		Overwrite: *overwrite,
		Publish:   *publish,
	})
	if err != nil {
		log.Printf("Seeding aborted: %v", err)
		return 1
	}

	for _, e := range result.Errors {
		log.Printf("❌ %s: %s", e.File, e.Error)
	}
	s := result.Summary
	log.Printf("🎉 Seeding complete: %d created, %d updated, %d skipped, %d failed, %d folders created",
		s.Created, s.Updated, s.Skipped, s.Failed, s.FoldersCreated)

	if s.Failed > 0 {
		return 1
	}
	return 0
}
