// Package assembler turns a template's structured fields into the
// final prompt text. Assembly is a pure function of the five section
// fields, so the preview and the copied text are always identical.
package assembler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hrt127/ai-prompt-tool/internal/models"
)

// Section order is fixed: Context, Task, Rules, Format, Examples.
// Empty sections are omitted entirely.

// Assemble renders the template as a single prompt string.
func Assemble(t models.Template) string {
	var b strings.Builder

	writeText(&b, "Context", t.Context)
	writeText(&b, "Task", t.Task)
	writeList(&b, "Rules", t.Rules)
	writeText(&b, "Format", t.Format)
	writeList(&b, "Examples", t.Examples)

	return strings.TrimRight(b.String(), " \t\n")
}

// AssembleJSON renders the assembled prompt as a JSON chat message
// array for LLM APIs.
func AssembleJSON(t models.Template) (string, error) {
	messages := []Message{
		{
			Role:    "user",
			Content: Assemble(t),
		},
	}

	jsonBytes, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	return string(jsonBytes), nil
}

// Message represents a chat message for LLM APIs
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func writeText(b *strings.Builder, header, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	b.WriteString(header)
	b.WriteString(":\n")
	b.WriteString(content)
	b.WriteString("\n\n")
}

func writeList(b *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(header)
	b.WriteString(":\n")
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
