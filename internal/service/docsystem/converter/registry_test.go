package converter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
)

func TestRegistry_Convert(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		input    string
		check    func(t *testing.T, out string)
	}{
		{
			name:     "markdown passthrough with crlf",
			filename: "intro.MD",
			input:    "# Intro\r\n\r\nBody",
			check: func(t *testing.T, out string) {
				assert.Equal(t, "# Intro\n\nBody", out)
			},
		},
		{
			name:     "mdx",
			filename: "page.mdx",
			input:    "<Callout>hi</Callout>",
			check: func(t *testing.T, out string) {
				assert.Equal(t, "<Callout>hi</Callout>", out)
			},
		},
		{
			name:     "text escaped",
			filename: "notes.txt",
			input:    "  # not a heading *really*  ",
			check: func(t *testing.T, out string) {
				assert.Equal(t, "\\# not a heading \\*really\\*\n", out)
			},
		},
		{
			name:     "html sanitized and converted",
			filename: "export.html",
			input:    `<h1>Title</h1><p onclick="steal()">Hello <strong>world</strong></p><script>alert(1)</script>`,
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "# Title")
				assert.Contains(t, out, "Hello **world**")
				assert.NotContains(t, out, "script")
				assert.NotContains(t, out, "alert")
				assert.NotContains(t, out, "onclick")
			},
		},
		{
			name:     "html code block keeps fence",
			filename: "code.htm",
			input:    `<pre><code class="language-go">fmt.Println("hi")</code></pre>`,
			check: func(t *testing.T, out string) {
				assert.True(t, strings.HasPrefix(out, "```go"), "got %q", out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, r.Supports(tt.filename))
			out, err := r.Convert(ctx, tt.filename, []byte(tt.input))
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.Supports("diagram.png"))
	_, err := r.Convert(context.Background(), "diagram.png", []byte{0x89})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegistry_SupportedExtensions(t *testing.T) {
	assert.Equal(t,
		[]string{".htm", ".html", ".markdown", ".md", ".mdx", ".text", ".txt"},
		NewRegistry().SupportedExtensions(),
	)
}
