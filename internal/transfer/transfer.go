// Package transfer serializes the template collection to a portable
// document and parses uploaded documents back into the repository.
package transfer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hrt127/ai-prompt-tool/internal/models"
	"github.com/hrt127/ai-prompt-tool/internal/repository"
	"gopkg.in/yaml.v3"
)

// ExportFileName is the default name of the exported document.
const ExportFileName = "ai-prompt-templates.json"

// FormatError reports an import document that is not JSON or whose
// top-level value is not an array. The reason is shown to the user.
type FormatError struct {
	Reason string
	Cause  error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid import document: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid import document: %s", e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Gateway moves the whole collection in and out of the repository.
type Gateway struct {
	repo *repository.Repository
}

// NewGateway creates a gateway over the repository.
func NewGateway(repo *repository.Repository) *Gateway {
	return &Gateway{repo: repo}
}

// Export serializes the collection as a pretty-printed JSON array.
func (g *Gateway) Export() ([]byte, error) {
	data, err := json.MarshalIndent(g.repo.List(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal templates: %w", err)
	}
	return data, nil
}

// ExportYAML serializes the collection as a YAML sequence.
func (g *Gateway) ExportYAML() ([]byte, error) {
	data, err := yaml.Marshal(g.repo.List())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal templates: %w", err)
	}
	return data, nil
}

// ExportToFile writes the JSON export document to path, defaulting to
// ExportFileName in the current directory.
func (g *Gateway) ExportToFile(path string) (string, error) {
	if path == "" {
		path = ExportFileName
	}

	data, err := g.Export()
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// Import parses the document and wholesale-replaces the collection.
// A *FormatError is returned, and no mutation occurs, when the
// contents are not a JSON array of templates.
func (g *Gateway) Import(contents []byte) error {
	templates, err := Parse(contents)
	if err != nil {
		return err
	}
	return g.repo.ReplaceAll(templates)
}

// ImportFile reads and imports the document at path.
func (g *Gateway) ImportFile(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	return g.Import(contents)
}

// Parse validates the top-level shape of an import document and
// returns its templates. Elements are trusted to have the template
// shape; only the array shape is checked.
func Parse(contents []byte) ([]models.Template, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(contents, &raw); err != nil {
		return nil, &FormatError{Reason: "not valid JSON", Cause: err}
	}

	var probe interface{}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &FormatError{Reason: "not valid JSON", Cause: err}
	}
	if _, ok := probe.([]interface{}); !ok {
		return nil, &FormatError{Reason: "top-level value must be an array of templates"}
	}

	var templates []models.Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, &FormatError{Reason: "array elements are not template objects", Cause: err}
	}

	if templates == nil {
		templates = []models.Template{}
	}
	return templates, nil
}
