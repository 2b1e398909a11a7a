package docsystem

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header an MDX page may start with. Only the fields
// the docs system stores are read; everything else is left for the renderer.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Published   *bool    `yaml:"published"`
	Order       *int     `yaml:"order"`
}

// ParseFrontmatter splits content into its YAML header and body. Content
// without a leading "---" line has no frontmatter and is returned whole.
//
//	---
//	description: Binary search over sorted slices
//	tags: [algorithms, search]
//	---
//	# Binary Search
func ParseFrontmatter(content string) (*Frontmatter, string, error) {
	data := []byte(content)
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return nil, content, nil
	}

	lines := bytes.Split(data, []byte("\n"))
	closing := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closing = i
			break
		}
	}
	if closing == 0 {
		return nil, "", fmt.Errorf("missing closing frontmatter delimiter '---'")
	}

	var fm Frontmatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:closing], []byte("\n")), &fm); err != nil {
		return nil, "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}

	body := string(bytes.Join(lines[closing+1:], []byte("\n")))
	return &fm, body, nil
}
