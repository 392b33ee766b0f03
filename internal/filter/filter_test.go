package filter

import (
	"reflect"
	"testing"

	"github.com/hrt127/ai-prompt-tool/internal/models"
	"github.com/hrt127/ai-prompt-tool/internal/repository"
)

func sampleTemplates() []models.Template {
	return []models.Template{
		{ID: "1", Name: "Research Assistant", Tags: []string{"research"}, Task: "summarize findings"},
		{ID: "2", Name: "Code Review Helper", Tags: []string{"code", "review"}, Context: "senior engineer"},
		{ID: "3", Name: "Brainstorming Partner", Tags: []string{"ideas"}, Rules: []string{"no judging"}},
	}
}

func TestFilterBlankQueriesReturnAll(t *testing.T) {
	templates := sampleTemplates()
	results := Filter(templates, "", "")
	if !reflect.DeepEqual(results, templates) {
		t.Error("Expected blank queries to return the collection unchanged")
	}

	results = Filter(templates, "   ", "  ")
	if len(results) != len(templates) {
		t.Error("Expected whitespace-only queries to match everything")
	}
}

func TestFilterTextQuery(t *testing.T) {
	results := Filter(sampleTemplates(), "CODE", "")
	if len(results) != 1 || results[0].ID != "2" {
		t.Errorf("Expected only the code review template, got %+v", results)
	}

	// Matches any searchable field, not just the name
	results = Filter(sampleTemplates(), "judging", "")
	if len(results) != 1 || results[0].ID != "3" {
		t.Errorf("Expected a rules match, got %+v", results)
	}
}

func TestFilterTagQuery(t *testing.T) {
	results := Filter(sampleTemplates(), "", "REV")
	if len(results) != 1 || results[0].ID != "2" {
		t.Errorf("Expected tag substring match, got %+v", results)
	}
}

func TestFilterBothQueries(t *testing.T) {
	results := Filter(sampleTemplates(), "engineer", "ideas")
	if len(results) != 0 {
		t.Errorf("Expected no template to pass both filters, got %+v", results)
	}

	results = Filter(sampleTemplates(), "engineer", "code")
	if len(results) != 1 || results[0].ID != "2" {
		t.Errorf("Expected the code review template, got %+v", results)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	templates := sampleTemplates()
	results := Filter(templates, "", "")
	for i := range results {
		if results[i].ID != templates[i].ID {
			t.Fatalf("Order changed at index %d", i)
		}
	}
}

func TestFilterSeedsByCode(t *testing.T) {
	results := Filter(repository.SeedTemplates(), "code", "")
	if len(results) != 1 || results[0].Name != "Code Review Helper" {
		t.Errorf("Expected exactly the Code Review Helper seed, got %+v", results)
	}
}

func TestAllTags(t *testing.T) {
	tags := AllTags(sampleTemplates())
	expected := []string{"code", "ideas", "research", "review"}
	if !reflect.DeepEqual(tags, expected) {
		t.Errorf("Expected %v, got %v", expected, tags)
	}
}

func TestFuzzy(t *testing.T) {
	results := Fuzzy(sampleTemplates(), "reserch")
	if len(results) == 0 {
		t.Fatal("Expected fuzzy search to tolerate a typo")
	}
	if results[0].ID != "1" {
		t.Errorf("Expected the research template first, got %q", results[0].ID)
	}

	all := Fuzzy(sampleTemplates(), "")
	if len(all) != 3 {
		t.Errorf("Expected blank fuzzy query to return everything, got %d", len(all))
	}
}
