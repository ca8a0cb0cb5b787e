package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seoku/promptforge/internal/api"
	"github.com/seoku/promptforge/internal/cli"
	"github.com/seoku/promptforge/internal/service"
	"github.com/seoku/promptforge/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Print(`promptforge - guideline-driven prompt builder for image and video models

USAGE:
    promptforge [OPTIONS] [COMMAND]

OPTIONS:
    --help       Show this help information
    --version    Print version information
    --serve      Start the HTTP API server
    --port       Port for the API server (default: 8080)

COMMANDS:
    (no command)               Start interactive TUI mode
    models, ls                 List models from the active guideline
    show <id>                  Show one model's template and rules
    build <id> [flags] <text>  Compile text into a prompt
    search <query>             Fuzzy-search models
    refresh                    Re-resolve the guideline document
    config                     Show or change settings
    help                       Show CLI command help

EXAMPLES:
    promptforge                                     # Interactive mode
    promptforge models                              # List models
    promptforge build midjourney --aspect 16:9 "a red shoe, on a wooden table"
    promptforge build veo -e fast --copy "향수병, 대리석 위, 따뜻한 조명"
    promptforge config set-url https://example.com/guideline.json
    promptforge --serve --port 9000                 # HTTP API

STORAGE:
    Default directory: ~/.promptforge
    Override with: PROMPTFORGE_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var showHelp bool
	var serve bool
	var port int

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&serve, "serve", false, "Start the HTTP API server")
	flag.IntVar(&port, "port", 8080, "Port for the API server")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("promptforge version %s\n", version)
		os.Exit(0)
	}

	svc, err := service.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if serve {
		// The server resolves once up front so /build works immediately,
		// then keeps the guideline fresh in the background.
		if _, err := svc.Refresh(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		svc.StartAutoRefresh()
		defer svc.StopAutoRefresh()

		if err := api.NewServer(svc, port).Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if args := flag.Args(); len(args) > 0 {
		if err := cli.NewCLI(svc).ExecuteCommand(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	svc.StartAutoRefresh()
	defer svc.StopAutoRefresh()

	p := tea.NewProgram(ui.NewModel(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
