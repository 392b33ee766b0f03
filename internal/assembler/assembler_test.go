package assembler

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hrt127/ai-prompt-tool/internal/models"
)

func TestAssembleEmptyTemplate(t *testing.T) {
	if out := Assemble(models.Template{}); out != "" {
		t.Errorf("Expected empty output for empty template, got %q", out)
	}
}

func TestAssembleAllSections(t *testing.T) {
	tmpl := models.Template{
		Context:  "You are a reviewer",
		Task:     "Review this diff",
		Rules:    []string{"be kind", "be thorough"},
		Format:   "bullet list",
		Examples: []string{"nit: rename foo"},
	}

	out := Assemble(tmpl)
	expected := "Context:\n" +
		"You are a reviewer\n" +
		"\n" +
		"Task:\n" +
		"Review this diff\n" +
		"\n" +
		"Rules:\n" +
		"- be kind\n" +
		"- be thorough\n" +
		"\n" +
		"Format:\n" +
		"bullet list\n" +
		"\n" +
		"Examples:\n" +
		"- nit: rename foo"

	if out != expected {
		t.Errorf("Unexpected assembly output:\n%q\nwant:\n%q", out, expected)
	}
}

func TestAssembleSectionOrder(t *testing.T) {
	tmpl := models.Template{
		Context:  "c",
		Task:     "t",
		Rules:    []string{"r"},
		Format:   "f",
		Examples: []string{"e"},
	}

	out := Assemble(tmpl)
	order := []string{"Context:", "Task:", "Rules:", "Format:", "Examples:"}
	lastIndex := -1
	for _, header := range order {
		idx := strings.Index(out, header)
		if idx < 0 {
			t.Fatalf("Missing header %q", header)
		}
		if idx <= lastIndex {
			t.Errorf("Header %q out of order", header)
		}
		if strings.Count(out, header) != 1 {
			t.Errorf("Header %q appears more than once", header)
		}
		lastIndex = idx
	}
}

func TestAssembleOmitsEmptySections(t *testing.T) {
	tmpl := models.Template{Task: "just a task"}

	out := Assemble(tmpl)
	if out != "Task:\njust a task" {
		t.Errorf("Unexpected output: %q", out)
	}
	for _, header := range []string{"Context:", "Rules:", "Format:", "Examples:"} {
		if strings.Contains(out, header) {
			t.Errorf("Expected header %q to be omitted", header)
		}
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	tmpl := models.Template{
		Context: "stable",
		Rules:   []string{"one", "two"},
	}

	first := Assemble(tmpl)
	second := Assemble(tmpl)
	if first != second {
		t.Error("Expected identical output for identical input")
	}
}

func TestAssembleNoTrailingWhitespace(t *testing.T) {
	tmpl := models.Template{Context: "only context  "}

	out := Assemble(tmpl)
	if strings.TrimRight(out, " \t\n") != out {
		t.Errorf("Expected trailing whitespace to be trimmed, got %q", out)
	}
}

func TestAssembleJSON(t *testing.T) {
	tmpl := models.Template{Task: "do the thing"}

	out, err := AssembleJSON(tmpl)
	if err != nil {
		t.Fatalf("AssembleJSON failed: %v", err)
	}

	var messages []Message
	if err := json.Unmarshal([]byte(out), &messages); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	if messages[0].Role != "user" {
		t.Errorf("Expected role 'user', got %q", messages[0].Role)
	}
	if messages[0].Content != Assemble(tmpl) {
		t.Error("Expected message content to equal the assembled prompt")
	}
}
