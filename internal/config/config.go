// Package config resolves the library directory and optional settings
// for ai-prompt-tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvLibraryDir overrides the default library directory when set.
const EnvLibraryDir = "AI_PROMPT_TOOL_DIR"

const configFileName = "config.yaml"

// Config holds user-adjustable settings, read from config.yaml in the
// library directory. All fields are optional.
type Config struct {
	// LibraryDir is where the store keeps its documents. Resolved
	// from the environment or the home directory, not the file.
	LibraryDir string `yaml:"-"`

	// ExportPath is the default target of the export command. Empty
	// means the standard export file name in the working directory.
	ExportPath string `yaml:"export_path,omitempty"`

	// Theme forces the TUI color theme: "light", "dark" or empty for
	// terminal autodetection.
	Theme string `yaml:"theme,omitempty"`
}

// Load resolves the library directory and reads config.yaml when
// present. A missing config file yields defaults; an unreadable one is
// an error, since the user clearly meant to configure something.
func Load() (*Config, error) {
	dir, err := resolveLibraryDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{LibraryDir: dir}

	path := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.LibraryDir = dir
	return cfg, nil
}

// Save writes the settings back to config.yaml in the library
// directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.LibraryDir, 0755); err != nil {
		return fmt.Errorf("failed to create library directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(c.LibraryDir, configFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func resolveLibraryDir() (string, error) {
	if dir := os.Getenv(EnvLibraryDir); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ai-prompt-tool"), nil
}
