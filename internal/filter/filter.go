// Package filter computes the visible subset of the template library
// for a free-text query and a tag query.
package filter

import (
	"sort"
	"strings"

	"github.com/hrt127/ai-prompt-tool/internal/models"
	"github.com/sahilm/fuzzy"
)

// Filter returns the templates matching both the free-text query and
// the tag query, preserving repository order. A blank query matches
// everything.
func Filter(templates []models.Template, textQuery, tagQuery string) []models.Template {
	textQuery = strings.TrimSpace(strings.ToLower(textQuery))
	tagQuery = strings.TrimSpace(tagQuery)

	results := []models.Template{}
	for _, t := range templates {
		if textQuery != "" && !strings.Contains(strings.ToLower(t.Searchable()), textQuery) {
			continue
		}
		if tagQuery != "" && !t.HasTag(tagQuery) {
			continue
		}
		results = append(results, t)
	}
	return results
}

// AllTags returns every tag across the collection, deduplicated and
// sorted lexicographically. The TUI renders these as quick filters.
func AllTags(templates []models.Template) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, t := range templates {
		for _, tag := range t.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Fuzzy ranks templates against the query with fuzzy matching over
// name, tags and task. Used by the CLI search command; the library
// filter keeps plain substring semantics.
func Fuzzy(templates []models.Template, query string) []models.Template {
	if strings.TrimSpace(query) == "" {
		return templates
	}

	searchStrings := make([]string, len(templates))
	for i, t := range templates {
		searchStrings[i] = strings.Join([]string{t.Name, strings.Join(t.Tags, " "), t.Task}, " ")
	}

	matches := fuzzy.Find(query, searchStrings)

	results := make([]models.Template, 0, len(matches))
	for _, match := range matches {
		results = append(results, templates[match.Index])
	}
	return results
}
