package docsystem

import (
	"strings"
	"unicode"
)

// wordsPerMinute is the reading speed used for reading-time estimates
const wordsPerMinute = 200

// readingStats counts the prose words of a markdown page and estimates its
// reading time in whole minutes (at least one for any non-empty page).
// Frontmatter and fenced code blocks are not counted.
func readingStats(markdown string) (words, minutes int) {
	if _, body, err := ParseFrontmatter(markdown); err == nil {
		markdown = body
	}

	words = len(strings.FieldsFunc(cleanMarkdown(markdown), func(r rune) bool {
		return unicode.IsSpace(r)
	}))
	if words == 0 {
		return 0, 0
	}
	return words, (words + wordsPerMinute - 1) / wordsPerMinute
}

// cleanMarkdown strips markdown and MDX syntax so only prose remains
func cleanMarkdown(markdown string) string {
	var b strings.Builder
	inFence := false

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence || line == "" {
			continue
		}
		// MDX imports/exports and self-closing components carry no prose
		if strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ") ||
			(strings.HasPrefix(line, "<") && strings.HasSuffix(line, "/>")) {
			continue
		}
		if isRule(line) {
			continue
		}

		line = strings.TrimLeft(line, "#> ")
		line = trimListMarker(line)
		line = strings.NewReplacer("**", "", "__", "", "~~", "", "`", "", "*", "", "_", " ").Replace(line)

		b.WriteString(line)
		b.WriteByte(' ')
	}

	return b.String()
}

func isRule(line string) bool {
	if len(line) < 3 {
		return false
	}
	c := line[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	return strings.Count(line, string(c)) == len(line)
}

func trimListMarker(line string) string {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "+ ") {
		return line[2:]
	}
	// numbered lists: "1. ", "12. "
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && line[i] == '.' && line[i+1] == ' ' {
		return line[i+2:]
	}
	return line
}
