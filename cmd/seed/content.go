package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	docsysSvc "portfolio/internal/domain/services/docsystem"
	"portfolio/internal/service/docsystem/converter"
)

// contentFile is the seed file layout.
type contentFile struct {
	Folders []docsysSvc.ContentFolder `yaml:"folders"`
}

// loadContentTree parses a seed file and inlines every document's file:
// reference, read relative to the seed file and run through the converters.
func loadContentTree(ctx context.Context, path string, converters *converter.Registry) ([]docsysSvc.ContentFolder, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var content contentFile
	if err := yaml.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range content.Folders {
		if err := resolveFiles(ctx, &content.Folders[i], base, converters); err != nil {
			return nil, err
		}
	}
	return content.Folders, nil
}

func resolveFiles(ctx context.Context, folder *docsysSvc.ContentFolder, base string, converters *converter.Registry) error {
	for i := range folder.Documents {
		doc := &folder.Documents[i]
		if doc.File == "" {
			continue
		}

		name := doc.File
		if !filepath.IsAbs(name) {
			name = filepath.Join(base, name)
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("document %q: %w", doc.Slug, err)
		}
		markdown, err := converters.Convert(ctx, name, data)
		if err != nil {
			return fmt.Errorf("document %q: %w", doc.Slug, err)
		}
		doc.Content = markdown
		doc.File = ""
	}

	for i := range folder.Folders {
		if err := resolveFiles(ctx, &folder.Folders[i], base, converters); err != nil {
			return err
		}
	}
	return nil
}
