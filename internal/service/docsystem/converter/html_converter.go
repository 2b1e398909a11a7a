package converter

import (
	"context"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"

	docsysSvc "portfolio/internal/domain/services/docsystem"
)

// htmlConverter sanitizes HTML and then converts it to markdown. Exported
// pages from other doc tools often carry scripts and inline handlers that
// must never reach the MDX renderer.
type htmlConverter struct {
	policy    *bluemonday.Policy
	converter *md.Converter
}

// NewHTMLConverter creates a new HTML to markdown converter.
func NewHTMLConverter() docsysSvc.ContentConverter {
	policy := bluemonday.UGCPolicy()
	// code blocks keep their language hint for syntax highlighting
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")

	return &htmlConverter{
		policy:    policy,
		converter: md.NewConverter("", true, &md.Options{CodeBlockStyle: "fenced", HeadingStyle: "atx"}),
	}
}

func (c *htmlConverter) Convert(ctx context.Context, input []byte) (string, error) {
	sanitized := c.policy.SanitizeBytes(input)

	markdown, err := c.converter.ConvertBytes(sanitized)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return strings.TrimSpace(string(markdown)) + "\n", nil
}

func (c *htmlConverter) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

func (c *htmlConverter) Name() string {
	return "html"
}
