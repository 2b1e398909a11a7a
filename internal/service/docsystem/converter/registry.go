package converter

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"portfolio/internal/domain"
	docsysSvc "portfolio/internal/domain/services/docsystem"
)

// Registry routes files to a ContentConverter by extension.
// Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]docsysSvc.ContentConverter // key: ".html"
}

// NewRegistry creates a registry with the markdown, text and HTML
// converters registered.
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[string]docsysSvc.ContentConverter)}
	r.Register(NewMarkdownConverter())
	r.Register(NewTextConverter())
	r.Register(NewHTMLConverter())
	return r
}

// Register associates converter with each of its extensions, replacing any
// earlier registration.
func (r *Registry) Register(converter docsysSvc.ContentConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range converter.SupportedExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.converters[ext] = converter
	}
}

// Supports reports whether filename has a registered extension.
func (r *Registry) Supports(filename string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.converters[strings.ToLower(path.Ext(filename))]
	return ok
}

// Convert selects the converter for filename and runs it. Unsupported
// extensions are validation errors.
func (r *Registry) Convert(ctx context.Context, filename string, content []byte) (string, error) {
	ext := strings.ToLower(path.Ext(filename))

	r.mu.RLock()
	converter := r.converters[ext]
	r.mu.RUnlock()

	if converter == nil {
		return "", &domain.ValidationError{Message: fmt.Sprintf("unsupported file type %q", ext)}
	}
	return converter.Convert(ctx, content)
}

// SupportedExtensions returns every registered extension, sorted.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.converters))
	for ext := range r.converters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
