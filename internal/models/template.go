package models

import "strings"

// UnsavedID is the sentinel id of a draft that has never been saved
// to the repository.
const UnsavedID = ""

// Template is a named, taggable unit of prompt structure. Context,
// Task and Format are free-form strings; Rules and Examples are
// ordered lists of non-empty lines.
type Template struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Tags     []string `json:"tags" yaml:"tags"`
	Context  string   `json:"context" yaml:"context"`
	Task     string   `json:"task" yaml:"task"`
	Rules    []string `json:"rules" yaml:"rules"`
	Format   string   `json:"format" yaml:"format"`
	Examples []string `json:"examples" yaml:"examples"`
}

// Searchable returns the concatenated text used by the free-text
// filter: name, context, task, format, rules and examples.
func (t Template) Searchable() string {
	parts := []string{t.Name, t.Context, t.Task, t.Format}
	parts = append(parts, t.Rules...)
	parts = append(parts, t.Examples...)
	return strings.Join(parts, " ")
}

// HasTag reports whether any tag contains query as a case-insensitive
// substring.
func (t Template) HasTag(query string) bool {
	query = strings.ToLower(query)
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return cleanString(t.Name + " " + strings.Join(t.Tags, " "))
}

// Title satisfies the list.Item interface
func (t Template) Title() string {
	if t.Name != "" {
		return cleanString(t.Name)
	}
	return "Untitled"
}

// Description satisfies the list.Item interface
func (t Template) Description() string {
	var parts []string

	if t.Task != "" {
		task := cleanString(t.Task)
		maxTaskLength := 60
		if len(task) > maxTaskLength {
			task = task[:maxTaskLength-3] + "..."
		}
		if task != "" {
			parts = append(parts, task)
		}
	}

	if len(t.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(t.Tags, ", "))
	}

	result := strings.Join(parts, " • ")

	// Keep the row within the list delegate's width
	maxTotalLength := 100
	if len(result) > maxTotalLength {
		result = result[:maxTotalLength-3] + "..."
	}

	return cleanString(result)
}

// IsEmpty reports whether every content field is blank. An empty
// draft is not worth restoring after a restart.
func (t Template) IsEmpty() bool {
	return t.Name == "" && t.Context == "" && t.Task == "" && t.Format == "" &&
		len(t.Tags) == 0 && len(t.Rules) == 0 && len(t.Examples) == 0
}

// NormalizeTags trims each entry and drops blanks and case-sensitive
// duplicates, preserving insertion order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	normalized := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}

// ParseTags splits comma-separated tag input into a normalized tag set.
func ParseTags(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(input, ","))
}

// SplitLines splits multi-line input into trimmed, non-empty lines.
// Rules and Examples are derived from textarea input this way, so the
// lists never contain empty strings.
func SplitLines(input string) []string {
	lines := []string{}
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Normalize applies the model invariants to a template in place:
// deduplicated tags, no blank rules or examples, nil slices replaced
// so the persisted JSON always carries arrays.
func (t *Template) Normalize() {
	t.Tags = NormalizeTags(t.Tags)
	t.Rules = SplitLines(strings.Join(t.Rules, "\n"))
	t.Examples = SplitLines(strings.Join(t.Examples, "\n"))
}

// Clone returns a deep copy so edits to a draft never alias the
// repository's slices.
func (t Template) Clone() Template {
	clone := t
	clone.Tags = append([]string{}, t.Tags...)
	clone.Rules = append([]string{}, t.Rules...)
	clone.Examples = append([]string{}, t.Examples...)
	return clone
}

// cleanString removes control characters that could break list rendering
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	cleaned := ""
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			cleaned += " "
		} else if r >= 32 && r != 127 {
			cleaned += string(r)
		}
	}

	for cleaned != strings.ReplaceAll(cleaned, "  ", " ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}

	return strings.TrimSpace(cleaned)
}
