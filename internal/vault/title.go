package vault

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter is the subset of note frontmatter muninn cares about.
type frontmatter struct {
	Title string `yaml:"title"`
}

// Title extracts a display title from note content.
// It prefers a `title:` field in YAML frontmatter, then the first `# ` heading.
// Returns "" when neither is present; callers fall back to the filename.
func Title(content string) string {
	if t := frontmatterTitle(content); t != "" {
		return t
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(trimmed, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}

// frontmatterTitle parses the leading `---` block, if any.
// Frontmatter only counts when the very first line is the opening fence.
func frontmatterTitle(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return ""
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return ""
	}

	var fm frontmatter
	raw := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		// Malformed frontmatter is a display concern only; not worth failing a scan.
		return ""
	}
	return strings.TrimSpace(fm.Title)
}
