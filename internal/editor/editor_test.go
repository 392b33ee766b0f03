package editor

import (
	"fmt"
	"testing"

	"github.com/hrt127/ai-prompt-tool/internal/repository"
	"github.com/hrt127/ai-prompt-tool/internal/store"
)

// sequenceIDs mints predictable ids for tests
type sequenceIDs struct {
	next int
}

func (g *sequenceIDs) NewID() string {
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

func newTestEditor() (*Editor, *repository.Repository, *store.MemoryStore) {
	s := store.NewMemoryStore()
	repo := repository.New(s)
	return New(repo, s, &sequenceIDs{}), repo, s
}

func TestSaveNewDraftMintsIDAndPrepends(t *testing.T) {
	ed, repo, _ := newTestEditor()

	ed.SetName("My Template")
	ed.SetTask("do something")

	saved, err := ed.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if saved.ID != "id-1" {
		t.Errorf("Expected minted id 'id-1', got %q", saved.ID)
	}
	if repo.List()[0].ID != "id-1" {
		t.Error("Expected saved template at the front of the repository")
	}
	if ed.IsNew() {
		t.Error("Expected draft to be linked after save")
	}
	if ed.SourceID() != "id-1" {
		t.Errorf("Expected draft linked to 'id-1', got %q", ed.SourceID())
	}
}

func TestSaveEmptyNameDefaultsToUntitled(t *testing.T) {
	ed, _, _ := newTestEditor()

	saved, err := ed.Save()
	if err != nil {
		t.Fatal(err)
	}
	if saved.Name != DefaultName {
		t.Errorf("Expected name %q, got %q", DefaultName, saved.Name)
	}
}

func TestSaveLinkedDraftOverwrites(t *testing.T) {
	ed, repo, _ := newTestEditor()

	existing, _ := repo.Get("seed-code-review-helper")
	ed.Apply(existing)
	ed.SetName("Code Review v2")

	saved, err := ed.Save()
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != existing.ID {
		t.Errorf("Expected the linked id to be reused, got %q", saved.ID)
	}
	if repo.Len() != 3 {
		t.Errorf("Expected overwrite, not insert; have %d templates", repo.Len())
	}
	if updated, _ := repo.Get(existing.ID); updated.Name != "Code Review v2" {
		t.Errorf("Expected updated name, got %q", updated.Name)
	}
}

func TestApplyCopiesEveryField(t *testing.T) {
	ed, repo, _ := newTestEditor()

	tmpl, _ := repo.Get("seed-research-assistant")
	ed.Apply(tmpl)

	draft := ed.Draft()
	if draft.Name != tmpl.Name || draft.Context != tmpl.Context || draft.Task != tmpl.Task {
		t.Error("Expected draft fields to match the applied template")
	}
	if len(draft.Rules) != len(tmpl.Rules) {
		t.Error("Expected draft rules to match the applied template")
	}
	if ed.IsNew() {
		t.Error("Expected Loaded-From-Existing state after Apply")
	}
}

func TestResetClearsDraft(t *testing.T) {
	ed, repo, _ := newTestEditor()

	tmpl, _ := repo.Get("seed-research-assistant")
	ed.Apply(tmpl)
	ed.Reset()

	draft := ed.Draft()
	if draft.Name != "" || draft.Context != "" || len(draft.Rules) != 0 {
		t.Error("Expected an empty draft after Reset")
	}
	if !ed.IsNew() {
		t.Error("Expected Unsaved-New state after Reset")
	}
}

func TestDeleteDeclinedIsNoOp(t *testing.T) {
	ed, repo, _ := newTestEditor()

	if err := ed.Delete("seed-code-review-helper", false); err != nil {
		t.Fatal(err)
	}
	if repo.Len() != 3 {
		t.Error("Expected declined delete to leave the repository untouched")
	}
}

func TestDeleteLinkedTemplateResetsDraft(t *testing.T) {
	ed, repo, _ := newTestEditor()

	tmpl, _ := repo.Get("seed-code-review-helper")
	ed.Apply(tmpl)

	if err := ed.Delete(tmpl.ID, true); err != nil {
		t.Fatal(err)
	}
	if _, ok := repo.Get(tmpl.ID); ok {
		t.Error("Expected template to be deleted")
	}
	if !ed.IsNew() {
		t.Error("Expected draft reset after deleting the linked template")
	}
	if draft := ed.Draft(); draft.Name != "" {
		t.Errorf("Expected empty draft, got name %q", draft.Name)
	}
}

func TestDeleteUnrelatedTemplateKeepsDraft(t *testing.T) {
	ed, repo, _ := newTestEditor()

	tmpl, _ := repo.Get("seed-code-review-helper")
	ed.Apply(tmpl)

	if err := ed.Delete("seed-research-assistant", true); err != nil {
		t.Fatal(err)
	}
	if ed.IsNew() {
		t.Error("Expected draft to stay linked when another template is deleted")
	}
}

func TestFieldEditsAutosaveDraft(t *testing.T) {
	s := store.NewMemoryStore()
	repo := repository.New(s)
	ed := New(repo, s, &sequenceIDs{})

	ed.SetName("Work in progress")
	ed.SetRules("rule one\n\nrule two")

	// A second editor over the same store sees the autosaved draft,
	// as after a process restart.
	restored := New(repo, s, &sequenceIDs{})
	restored.LoadDraft()

	draft := restored.Draft()
	if draft.Name != "Work in progress" {
		t.Errorf("Expected restored draft name, got %q", draft.Name)
	}
	if len(draft.Rules) != 2 || draft.Rules[1] != "rule two" {
		t.Errorf("Expected restored rules, got %v", draft.Rules)
	}
}

func TestLoadDraftUnlinksWhenSourceGone(t *testing.T) {
	s := store.NewMemoryStore()
	repo := repository.New(s)
	ed := New(repo, s, &sequenceIDs{})

	tmpl, _ := repo.Get("seed-research-assistant")
	ed.Apply(tmpl)

	if err := repo.Remove(tmpl.ID); err != nil {
		t.Fatal(err)
	}

	restored := New(repo, s, &sequenceIDs{})
	restored.LoadDraft()
	if !restored.IsNew() {
		t.Error("Expected restored draft to be unlinked when its source is gone")
	}
	if restored.Draft().Name != tmpl.Name {
		t.Error("Expected restored draft to keep its content")
	}
}

func TestSettersDeriveListsAndTags(t *testing.T) {
	ed, _, _ := newTestEditor()

	ed.SetTags("ai, review, ai")
	ed.SetExamples("  example one \n\nexample two")

	draft := ed.Draft()
	if len(draft.Tags) != 2 {
		t.Errorf("Expected deduplicated tags, got %v", draft.Tags)
	}
	if len(draft.Examples) != 2 || draft.Examples[0] != "example one" {
		t.Errorf("Expected trimmed examples, got %v", draft.Examples)
	}
}

func TestUUIDGenerator(t *testing.T) {
	gen := UUIDGenerator{}
	a, b := gen.NewID(), gen.NewID()
	if a == "" || a == b {
		t.Error("Expected distinct non-empty ids")
	}
}
