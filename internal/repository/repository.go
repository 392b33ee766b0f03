package repository

import (
	"fmt"

	"github.com/hrt127/ai-prompt-tool/internal/models"
	"github.com/hrt127/ai-prompt-tool/internal/store"
)

// CollectionKey is the store key holding the full template collection.
// The key name doubles as an informal document version.
const CollectionKey = "ai-prompt-templates"

// Repository is the ordered, persisted collection of saved templates.
// Every mutation writes the whole collection back to the store, so the
// persisted document always equals the in-memory state.
type Repository struct {
	store     store.Adapter
	templates []models.Template
}

// New loads the collection from the store, seeding the default
// templates when nothing usable is persisted yet.
func New(adapter store.Adapter) *Repository {
	repo := &Repository{store: adapter}

	var templates []models.Template
	if adapter.Load(CollectionKey, &templates) {
		repo.templates = templates
	} else {
		repo.templates = SeedTemplates()
	}

	return repo
}

// List returns the collection in order, newest-saved-first.
func (r *Repository) List() []models.Template {
	out := make([]models.Template, len(r.templates))
	for i, t := range r.templates {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of templates in the collection.
func (r *Repository) Len() int {
	return len(r.templates)
}

// Get returns the template with the given id.
func (r *Repository) Get(id string) (models.Template, bool) {
	for _, t := range r.templates {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return models.Template{}, false
}

// InsertOrReplace replaces the template with the same id in place, or
// prepends a new one, then persists the collection.
func (r *Repository) InsertOrReplace(template models.Template) error {
	template.Normalize()

	for i, existing := range r.templates {
		if existing.ID == template.ID {
			r.templates[i] = template
			return r.persist()
		}
	}

	r.templates = append([]models.Template{template}, r.templates...)
	return r.persist()
}

// Remove deletes the template with the given id; a no-op when absent.
func (r *Repository) Remove(id string) error {
	for i, t := range r.templates {
		if t.ID == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return r.persist()
		}
	}
	return nil
}

// ReplaceAll wholesale-replaces the collection, used by import.
func (r *Repository) ReplaceAll(templates []models.Template) error {
	if templates == nil {
		return fmt.Errorf("template collection must not be nil")
	}
	for i := range templates {
		templates[i].Normalize()
	}
	r.templates = templates
	return r.persist()
}

func (r *Repository) persist() error {
	if err := r.store.Save(CollectionKey, r.templates); err != nil {
		return fmt.Errorf("failed to persist template collection: %w", err)
	}
	return nil
}

// SeedTemplates returns the fixed initial collection used when no
// persisted collection exists or the stored one is unreadable.
func SeedTemplates() []models.Template {
	return []models.Template{
		{
			ID:      "seed-research-assistant",
			Name:    "Research Assistant",
			Tags:    []string{"research", "analysis"},
			Context: "You are a meticulous research assistant who cites sources and distinguishes facts from speculation.",
			Task:    "Summarize the current state of knowledge on the topic I provide, highlighting open questions.",
			Rules: []string{
				"Cite a source for every factual claim",
				"Flag anything uncertain or contested",
				"Keep the summary under 500 words",
			},
			Format:   "A short overview followed by a bulleted list of key findings and open questions.",
			Examples: []string{},
		},
		{
			ID:      "seed-code-review-helper",
			Name:    "Code Review Helper",
			Tags:    []string{"code", "review"},
			Context: "You are a senior software engineer performing a careful code review.",
			Task:    "Review the code I paste and point out bugs, style issues and missing tests.",
			Rules: []string{
				"Reference line numbers when possible",
				"Distinguish blocking issues from nitpicks",
				"Suggest a concrete fix for every issue raised",
			},
			Format:   "A numbered list of findings, most severe first.",
			Examples: []string{},
		},
		{
			ID:      "seed-brainstorming-partner",
			Name:    "Brainstorming Partner",
			Tags:    []string{"ideas", "creative"},
			Context: "You are an energetic brainstorming partner who builds on ideas instead of judging them.",
			Task:    "Generate ten distinct ideas for the problem I describe.",
			Rules: []string{
				"No duplicate or near-duplicate ideas",
				"Include at least two unconventional options",
			},
			Format:   "A numbered list, one line per idea.",
			Examples: []string{},
		},
	}
}
