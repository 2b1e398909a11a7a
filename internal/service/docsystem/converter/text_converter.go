package converter

import (
	"context"
	"strings"

	docsysSvc "portfolio/internal/domain/services/docsystem"
)

// markdownConverter passes markdown and MDX through, normalizing line
// endings so frontmatter parsing and slug lookups see the same bytes
// regardless of the author's editor.
type markdownConverter struct{}

// NewMarkdownConverter creates the markdown/MDX passthrough converter.
func NewMarkdownConverter() docsysSvc.ContentConverter {
	return markdownConverter{}
}

func (markdownConverter) Convert(ctx context.Context, input []byte) (string, error) {
	return normalizeNewlines(string(input)), nil
}

func (markdownConverter) SupportedExtensions() []string {
	return []string{".md", ".mdx", ".markdown"}
}

func (markdownConverter) Name() string {
	return "markdown"
}

// textConverter wraps plain text in paragraphs. Characters markdown would
// interpret are escaped so the text renders literally.
type textConverter struct{}

// NewTextConverter creates the plain text converter.
func NewTextConverter() docsysSvc.ContentConverter {
	return textConverter{}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "#", `\#`,
	"<", `\<`, ">", `\>`, "[", `\[`, "]", `\]`, "{", `\{`, "}", `\}`,
)

func (textConverter) Convert(ctx context.Context, input []byte) (string, error) {
	text := strings.TrimSpace(normalizeNewlines(string(input)))
	if text == "" {
		return "", nil
	}
	return markdownEscaper.Replace(text) + "\n", nil
}

func (textConverter) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

func (textConverter) Name() string {
	return "plaintext"
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
