package docsystem

import "context"

// ContentConverter turns an uploaded file into markdown for storage.
// Implementations must be safe for concurrent use.
type ContentConverter interface {
	// Convert transforms input content to markdown
	Convert(ctx context.Context, input []byte) (markdown string, err error)

	// SupportedExtensions returns the lowercase extensions handled, with the
	// leading dot
	SupportedExtensions() []string

	// Name identifies the converter in logs
	Name() string
}
