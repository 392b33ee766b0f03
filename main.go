package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hrt127/ai-prompt-tool/internal/cli"
	"github.com/hrt127/ai-prompt-tool/internal/service"
	"github.com/hrt127/ai-prompt-tool/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`ai-prompt-tool - structured AI prompt template manager

USAGE:
    ai-prompt-tool [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information

COMMANDS:
    (no command)            Start interactive TUI mode
    list, ls                List templates
    search <query>          Fuzzy-search templates
    get, show <id>          Show a template
    assemble, render <id>   Print the assembled prompt
    copy <id>               Copy the assembled prompt to the clipboard
    delete, rm <id>         Delete a template
    tags                    List all tags
    export                  Export the collection
    import <file>           Replace the collection from a JSON file
    help                    Show CLI command help

EXAMPLES:
    ai-prompt-tool                            # Start interactive mode
    ai-prompt-tool list --tag code            # List templates tagged 'code'
    ai-prompt-tool search "code review"       # Fuzzy-search templates
    ai-prompt-tool assemble <id> --json       # Assembled prompt as chat messages
    ai-prompt-tool export --output backup.json

STORAGE:
    Default directory: ~/.ai-prompt-tool
    Override with: AI_PROMPT_TOOL_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var showHelp bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("ai-prompt-tool version %s\n", version)
		os.Exit(0)
	}

	svc, err := service.NewService()
	if err != nil {
		fmt.Println(err)
		return
	}

	// CLI mode - execute command and exit
	args := flag.Args()
	if len(args) > 0 {
		cliHandler := cli.NewCLI(svc)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// No arguments provided - start TUI mode
	model := ui.NewModel(svc)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		return
	}
}
