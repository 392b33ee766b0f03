// Package cli provides the headless command-line interface over the
// template service.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hrt127/ai-prompt-tool/internal/clipboard"
	apperrors "github.com/hrt127/ai-prompt-tool/internal/errors"
	"github.com/hrt127/ai-prompt-tool/internal/models"
	"github.com/hrt127/ai-prompt-tool/internal/service"
	"github.com/hrt127/ai-prompt-tool/internal/transfer"
	"gopkg.in/yaml.v3"
)

// CLI dispatches headless commands against the service
type CLI struct {
	service      *service.Service
	errorHandler *apperrors.CLIErrorHandler
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service) *CLI {
	return &CLI{
		service:      svc,
		errorHandler: apperrors.NewCLIErrorHandler(os.Getenv("AI_PROMPT_TOOL_VERBOSE") != ""),
	}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "list", "ls":
		return c.listTemplates(commandArgs)
	case "search":
		return c.searchTemplates(commandArgs)
	case "get", "show":
		return c.showTemplate(commandArgs)
	case "assemble", "render":
		return c.assembleTemplate(commandArgs)
	case "copy":
		return c.copyTemplate(commandArgs)
	case "delete", "rm":
		return c.deleteTemplate(commandArgs)
	case "tags":
		return c.listTags(commandArgs)
	case "export":
		return c.handleExport(commandArgs)
	case "import":
		return c.handleImport(commandArgs)
	case "help":
		return c.printUsage()
	default:
		return c.errorHandler.HandleError(apperrors.CommandNotFoundError(command))
	}
}

// listTemplates lists templates, optionally filtered
func (c *CLI) listTemplates(args []string) error {
	var format, textQuery, tagQuery string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		case "--query", "-q":
			if i+1 < len(args) {
				textQuery = args[i+1]
				i++
			}
		case "--tag", "-t":
			if i+1 < len(args) {
				tagQuery = args[i+1]
				i++
			}
		}
	}

	templates := c.service.FilterTemplates(textQuery, tagQuery)
	return c.formatOutput(templates, format)
}

// searchTemplates ranks templates against a fuzzy query
func (c *CLI) searchTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a query")
	}

	var format string
	var queryParts []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		default:
			queryParts = append(queryParts, args[i])
		}
	}

	templates := c.service.SearchTemplates(strings.Join(queryParts, " "))
	return c.formatOutput(templates, format)
}

// showTemplate displays a specific template
func (c *CLI) showTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a template ID")
	}

	id := args[0]
	var format string
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		}
	}

	tmpl, err := c.service.GetTemplate(id)
	if err != nil {
		return c.errorHandler.HandleError(err)
	}

	return c.formatSingleTemplate(tmpl, format)
}

// assembleTemplate prints the assembled prompt text
func (c *CLI) assembleTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("assemble requires a template ID")
	}

	id := args[0]
	var asJSON bool
	for _, arg := range args[1:] {
		if arg == "--json" || arg == "-j" {
			asJSON = true
		}
	}

	var out string
	var err error
	if asJSON {
		out, err = c.service.AssembleTemplateJSON(id)
	} else {
		out, err = c.service.AssembleTemplate(id)
	}
	if err != nil {
		return c.errorHandler.HandleError(err)
	}

	fmt.Println(out)
	return nil
}

// copyTemplate copies the assembled prompt to the clipboard
func (c *CLI) copyTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("copy requires a template ID")
	}

	id := args[0]
	var asJSON bool
	for _, arg := range args[1:] {
		if arg == "--json" || arg == "-j" {
			asJSON = true
		}
	}

	var content string
	var err error
	if asJSON {
		content, err = c.service.AssembleTemplateJSON(id)
	} else {
		content, err = c.service.AssembleTemplate(id)
	}
	if err != nil {
		return c.errorHandler.HandleError(err)
	}

	if statusMsg, err := clipboard.CopyWithFallback(content); err != nil {
		// Clipboard failure is best-effort; print the prompt instead
		fmt.Printf("Warning: %v\n\n%s\n", err, content)
	} else {
		fmt.Println(statusMsg)
	}
	return nil
}

// deleteTemplate removes a template after confirmation
func (c *CLI) deleteTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("delete requires a template ID")
	}

	id := args[0]
	var force bool
	for _, arg := range args[1:] {
		if arg == "--force" || arg == "-f" {
			force = true
		}
	}

	confirmed := force
	if !force {
		fmt.Printf("Are you sure you want to delete template '%s'? (y/N): ", id)
		var response string
		fmt.Scanln(&response)
		response = strings.ToLower(response)
		confirmed = response == "y" || response == "yes"
	}

	if !confirmed {
		fmt.Println("Cancelled")
		return nil
	}

	if err := c.service.DeleteTemplate(id, true); err != nil {
		return c.errorHandler.HandleError(err)
	}

	fmt.Printf("Deleted template: %s\n", id)
	return nil
}

// listTags prints every tag across the collection
func (c *CLI) listTags(args []string) error {
	for _, tag := range c.service.AllTags() {
		fmt.Println(tag)
	}
	return nil
}

// handleExport writes the collection to a file or stdout
func (c *CLI) handleExport(args []string) error {
	var format, outputFile string
	var toStdout bool

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		case "--output", "-o":
			if i+1 < len(args) {
				outputFile = args[i+1]
				i++
			}
		case "--stdout":
			toStdout = true
		}
	}

	if format == "" {
		format = "json"
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = c.service.Export()
	case "yaml":
		data, err = c.service.ExportYAML()
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if toStdout {
		fmt.Print(string(data))
		return nil
	}

	if format == "yaml" && outputFile == "" {
		outputFile = "ai-prompt-templates.yaml"
	}
	if format == "yaml" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		fmt.Printf("Exported %d templates to %s\n", len(c.service.ListTemplates()), outputFile)
		return nil
	}

	path, err := c.service.ExportToFile(outputFile)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Printf("Exported %d templates to %s\n", len(c.service.ListTemplates()), path)
	return nil
}

// handleImport replaces the collection from a JSON file
func (c *CLI) handleImport(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("import requires a file path")
	}

	if err := c.service.ImportFile(args[0]); err != nil {
		var formatErr *transfer.FormatError
		if errors.As(err, &formatErr) {
			return c.errorHandler.HandleError(apperrors.ImportFormatError(formatErr.Reason, formatErr))
		}
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d templates from %s\n", len(c.service.ListTemplates()), args[0])
	return nil
}

// formatOutput formats templates for output
func (c *CLI) formatOutput(templates []models.Template, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(templates)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(templates)
	case "ids":
		for _, t := range templates {
			fmt.Println(t.ID)
		}
	default:
		for _, t := range templates {
			fmt.Printf("%s - %s\n", t.ID, t.Title())
			if t.Task != "" {
				fmt.Printf("  %s\n", t.Task)
			}
			if len(t.Tags) > 0 {
				fmt.Printf("  Tags: %s\n", strings.Join(t.Tags, ", "))
			}
			fmt.Println()
		}
	}
	return nil
}

// formatSingleTemplate formats a single template for output
func (c *CLI) formatSingleTemplate(tmpl models.Template, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(tmpl)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(tmpl)
	default:
		fmt.Printf("ID: %s\n", tmpl.ID)
		fmt.Printf("Name: %s\n", tmpl.Title())
		if len(tmpl.Tags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(tmpl.Tags, ", "))
		}
		if tmpl.Context != "" {
			fmt.Printf("Context: %s\n", tmpl.Context)
		}
		if tmpl.Task != "" {
			fmt.Printf("Task: %s\n", tmpl.Task)
		}
		for _, rule := range tmpl.Rules {
			fmt.Printf("Rule: %s\n", rule)
		}
		if tmpl.Format != "" {
			fmt.Printf("Format: %s\n", tmpl.Format)
		}
		for _, example := range tmpl.Examples {
			fmt.Printf("Example: %s\n", example)
		}
	}
	return nil
}

// printUsage prints CLI usage information
func (c *CLI) printUsage() error {
	fmt.Println(`ai-prompt-tool - structured prompt template manager

USAGE:
  ai-prompt-tool <command> [arguments]

COMMANDS:
  list, ls [--query <q>] [--tag <t>] [--format json|yaml|ids]
                          List templates, optionally filtered
  search <query>          Fuzzy-search templates
  get, show <id>          Show a template
  assemble, render <id> [--json]
                          Print the assembled prompt
  copy <id> [--json]      Copy the assembled prompt to the clipboard
  delete, rm <id> [--force]
                          Delete a template (asks for confirmation)
  tags                    List every tag
  export [--format json|yaml] [--output <file>] [--stdout]
                          Export the collection
  import <file>           Replace the collection from a JSON file
  help                    Show this help`)
	return nil
}
