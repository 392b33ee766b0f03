// Package service wires the store, repository, editor and gateway
// together and exposes the business operations consumed by the CLI
// and the TUI.
package service

import (
	"fmt"

	"github.com/hrt127/ai-prompt-tool/internal/assembler"
	"github.com/hrt127/ai-prompt-tool/internal/config"
	"github.com/hrt127/ai-prompt-tool/internal/editor"
	apperrors "github.com/hrt127/ai-prompt-tool/internal/errors"
	"github.com/hrt127/ai-prompt-tool/internal/filter"
	"github.com/hrt127/ai-prompt-tool/internal/models"
	"github.com/hrt127/ai-prompt-tool/internal/repository"
	"github.com/hrt127/ai-prompt-tool/internal/store"
	"github.com/hrt127/ai-prompt-tool/internal/transfer"
)

// Service provides business logic for template management
type Service struct {
	cfg     *config.Config
	store   store.Adapter
	repo    *repository.Repository
	editor  *editor.Editor
	gateway *transfer.Gateway
}

// NewService creates a service over a file store in the configured
// library directory. The autosaved draft is restored so in-progress
// edits survive a restart.
func NewService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	fileStore, err := store.NewFileStore(cfg.LibraryDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return newService(cfg, fileStore), nil
}

// NewServiceWithStore creates a service over an injected store
// adapter. Tests and embedders use this to avoid the file system.
func NewServiceWithStore(adapter store.Adapter) *Service {
	return newService(&config.Config{}, adapter)
}

func newService(cfg *config.Config, adapter store.Adapter) *Service {
	repo := repository.New(adapter)
	ed := editor.New(repo, adapter, editor.UUIDGenerator{})
	ed.LoadDraft()

	return &Service{
		cfg:     cfg,
		store:   adapter,
		repo:    repo,
		editor:  ed,
		gateway: transfer.NewGateway(repo),
	}
}

// Config returns the resolved configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Editor returns the draft state controller.
func (s *Service) Editor() *editor.Editor {
	return s.editor
}

// ListTemplates returns the full collection in repository order.
func (s *Service) ListTemplates() []models.Template {
	return s.repo.List()
}

// GetTemplate returns the template with the given id.
func (s *Service) GetTemplate(id string) (models.Template, error) {
	tmpl, ok := s.repo.Get(id)
	if !ok {
		return models.Template{}, apperrors.NotFoundError(fmt.Sprintf("template %q", id))
	}
	return tmpl, nil
}

// FilterTemplates returns the templates matching a free-text query
// and a tag query, preserving order.
func (s *Service) FilterTemplates(textQuery, tagQuery string) []models.Template {
	return filter.Filter(s.repo.List(), textQuery, tagQuery)
}

// SearchTemplates ranks templates against the query with fuzzy
// matching.
func (s *Service) SearchTemplates(query string) []models.Template {
	return filter.Fuzzy(s.repo.List(), query)
}

// AllTags returns the sorted set of every tag in the collection.
func (s *Service) AllTags() []string {
	return filter.AllTags(s.repo.List())
}

// AssembleTemplate renders the template with the given id as prompt
// text.
func (s *Service) AssembleTemplate(id string) (string, error) {
	tmpl, err := s.GetTemplate(id)
	if err != nil {
		return "", err
	}
	return assembler.Assemble(tmpl), nil
}

// AssembleTemplateJSON renders the template as an LLM chat message
// array.
func (s *Service) AssembleTemplateJSON(id string) (string, error) {
	tmpl, err := s.GetTemplate(id)
	if err != nil {
		return "", err
	}
	return assembler.AssembleJSON(tmpl)
}

// DeleteTemplate removes a template when confirmed; the confirmation
// decision comes from the calling surface.
func (s *Service) DeleteTemplate(id string, confirmed bool) error {
	if _, ok := s.repo.Get(id); !ok {
		return apperrors.NotFoundError(fmt.Sprintf("template %q", id))
	}
	return s.editor.Delete(id, confirmed)
}

// Export serializes the collection as pretty-printed JSON.
func (s *Service) Export() ([]byte, error) {
	return s.gateway.Export()
}

// ExportYAML serializes the collection as YAML.
func (s *Service) ExportYAML() ([]byte, error) {
	return s.gateway.ExportYAML()
}

// ExportToFile writes the export document and returns the path used.
// An empty path falls back to the configured default, then to the
// standard export file name.
func (s *Service) ExportToFile(path string) (string, error) {
	if path == "" {
		path = s.cfg.ExportPath
	}
	return s.gateway.ExportToFile(path)
}

// Import parses the document and replaces the collection. The
// returned error carries the user-visible failure reason; nothing is
// mutated on failure.
func (s *Service) Import(contents []byte) error {
	return s.gateway.Import(contents)
}

// ImportFile reads and imports the document at path.
func (s *Service) ImportFile(path string) error {
	return s.gateway.ImportFile(path)
}
