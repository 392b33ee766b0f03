// Package editor holds the draft template currently under edit and
// mediates create, apply, save and delete operations against the
// repository. Every field edit autosaves the draft to its own store
// slot, so in-progress edits survive a restart before an explicit
// save.
package editor

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hrt127/ai-prompt-tool/internal/models"
	"github.com/hrt127/ai-prompt-tool/internal/repository"
	"github.com/hrt127/ai-prompt-tool/internal/store"
)

// DraftKey is the store key of the autosave slot, separate from the
// repository's collection key.
const DraftKey = "ai-prompt-draft"

// DefaultName is used when a draft is saved with an empty name.
const DefaultName = "Untitled"

// IDGenerator mints repository ids for newly saved drafts. Injected so
// the repository stays deterministic under test.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator mints random UUID ids.
type UUIDGenerator struct{}

// NewID returns a fresh UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Editor is the state controller over the draft. The draft is either
// Unsaved-New (sourceID empty) or Loaded-From-Existing (sourceID set
// to the repository id it was loaded from).
type Editor struct {
	repo     *repository.Repository
	store    store.Adapter
	ids      IDGenerator
	draft    models.Template
	sourceID string
}

// New creates an editor over the repository with an empty draft.
func New(repo *repository.Repository, adapter store.Adapter, ids IDGenerator) *Editor {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Editor{
		repo:  repo,
		store: adapter,
		ids:   ids,
		draft: emptyDraft(),
	}
}

func emptyDraft() models.Template {
	return models.Template{
		ID:       models.UnsavedID,
		Tags:     []string{},
		Rules:    []string{},
		Examples: []string{},
	}
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() models.Template {
	return e.draft.Clone()
}

// SourceID returns the repository id the draft was loaded from, or
// models.UnsavedID for a new draft.
func (e *Editor) SourceID() string {
	return e.sourceID
}

// IsNew reports whether the draft is in the Unsaved-New state.
func (e *Editor) IsNew() bool {
	return e.sourceID == models.UnsavedID
}

// Reset clears the draft to the Unsaved-New state.
func (e *Editor) Reset() {
	e.draft = emptyDraft()
	e.sourceID = models.UnsavedID
	e.autosave()
}

// Apply copies every field of the template into the draft and links
// the draft to it.
func (e *Editor) Apply(template models.Template) {
	e.draft = template.Clone()
	e.draft.Normalize()
	e.sourceID = template.ID
	e.autosave()
}

// Edit loads the template for editing; identical to Apply.
func (e *Editor) Edit(template models.Template) {
	e.Apply(template)
}

// Field setters. Each one updates the draft and autosaves it.

// SetName updates the draft name.
func (e *Editor) SetName(name string) {
	e.draft.Name = name
	e.autosave()
}

// SetTags replaces the draft tag set from comma-separated input.
func (e *Editor) SetTags(input string) {
	e.draft.Tags = models.ParseTags(input)
	e.autosave()
}

// SetContext updates the draft context.
func (e *Editor) SetContext(context string) {
	e.draft.Context = context
	e.autosave()
}

// SetTask updates the draft task.
func (e *Editor) SetTask(task string) {
	e.draft.Task = task
	e.autosave()
}

// SetRules replaces the draft rules from multi-line input.
func (e *Editor) SetRules(input string) {
	e.draft.Rules = models.SplitLines(input)
	e.autosave()
}

// SetFormat updates the draft format.
func (e *Editor) SetFormat(format string) {
	e.draft.Format = format
	e.autosave()
}

// SetExamples replaces the draft examples from multi-line input.
func (e *Editor) SetExamples(input string) {
	e.draft.Examples = models.SplitLines(input)
	e.autosave()
}

// Save converts the draft into a template and merges it into the
// repository: the linked id is reused when set, otherwise a fresh id
// is minted and the template is prepended. The draft stays loaded,
// now linked to the saved id.
func (e *Editor) Save() (models.Template, error) {
	template := e.draft.Clone()
	template.Normalize()

	if template.Name == "" {
		template.Name = DefaultName
	}

	if e.sourceID != models.UnsavedID {
		template.ID = e.sourceID
	} else {
		template.ID = e.ids.NewID()
	}

	if err := e.repo.InsertOrReplace(template); err != nil {
		return models.Template{}, fmt.Errorf("failed to save template: %w", err)
	}

	e.draft = template.Clone()
	e.sourceID = template.ID
	e.autosave()

	return template, nil
}

// Delete removes the template from the repository when confirmed. The
// confirmation decision is taken by the caller (a blocking prompt in
// the CLI, a press-twice key in the TUI) and passed in, keeping the
// mutation testable without a simulated UI. Deleting the template the
// draft was loaded from resets the draft to Unsaved-New.
func (e *Editor) Delete(id string, confirmed bool) error {
	if !confirmed {
		return nil
	}

	if err := e.repo.Remove(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	if e.sourceID == id {
		e.Reset()
	}

	return nil
}

// LoadDraft restores the autosaved draft from the store. Missing or
// corrupt slots leave the editor on an empty draft.
func (e *Editor) LoadDraft() {
	var saved draftDocument
	if !e.store.Load(DraftKey, &saved) {
		return
	}

	e.draft = saved.Template
	e.draft.Normalize()
	e.sourceID = saved.SourceID
	if e.sourceID != models.UnsavedID {
		if _, ok := e.repo.Get(e.sourceID); !ok {
			// The linked template is gone; keep the content as a new draft.
			e.sourceID = models.UnsavedID
		}
	}
}

// draftDocument is the persisted shape of the autosave slot.
type draftDocument struct {
	Template models.Template `json:"template"`
	SourceID string          `json:"sourceId"`
}

func (e *Editor) autosave() {
	doc := draftDocument{Template: e.draft, SourceID: e.sourceID}
	if err := e.store.Save(DraftKey, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to autosave draft: %v\n", err)
	}
}
