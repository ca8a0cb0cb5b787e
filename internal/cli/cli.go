// Package cli provides the headless command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seoku/promptforge/internal/clipboard"
	"github.com/seoku/promptforge/internal/models"
	"github.com/seoku/promptforge/internal/service"
)

// CLI executes commands against the service layer.
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance.
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand dispatches one command. Every command starts by refreshing
// the guideline document so output always reflects the active configuration.
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "models", "ls":
		return c.listModels(commandArgs)
	case "show":
		return c.showModel(commandArgs)
	case "build":
		return c.build(commandArgs)
	case "refresh":
		return c.refresh()
	case "search":
		return c.searchModels(commandArgs)
	case "config":
		return c.handleConfig(commandArgs)
	case "help":
		return c.printUsage()
	default:
		return fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}
}

func (c *CLI) ensureGuideline() error {
	if _, err := c.service.Refresh(context.Background()); err != nil {
		return fmt.Errorf("failed to load guideline document: %w", err)
	}
	return nil
}

func (c *CLI) listModels(args []string) error {
	format := parseFlagValue(args, "--format", "-f")

	if err := c.ensureGuideline(); err != nil {
		return err
	}

	list := c.service.Models()
	if format == "json" {
		return printJSON(list)
	}

	doc, err := c.service.Document()
	if err != nil {
		return err
	}
	fmt.Printf("Guideline %s (%s, %d models)\n\n", doc.Version, doc.Source, len(list))
	for _, m := range list {
		fmt.Printf("%-14s %s (latest %s, engines: %s)\n", m.ID, m.Name, m.Latest, strings.Join(m.Engines, ", "))
	}
	return nil
}

func (c *CLI) showModel(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a model id")
	}

	if err := c.ensureGuideline(); err != nil {
		return err
	}

	doc, err := c.service.Document()
	if err != nil {
		return err
	}
	m, ok := doc.FindModel(args[0])
	if !ok {
		return fmt.Errorf("model %q not found", args[0])
	}

	if parseFlagValue(args, "--format", "-f") == "json" {
		return printJSON(m)
	}

	fmt.Printf("%s (%s, latest %s)\n", m.Name, m.ID, m.Latest)
	fmt.Printf("Engines:  %s\n", strings.Join(m.Engines, ", "))
	fmt.Printf("Template: %s\n", m.Template)
	if len(m.Guideline) > 0 {
		fmt.Println("Rules:")
		for _, rule := range m.Guideline {
			fmt.Printf("  - %s\n", rule)
		}
	}
	return nil
}

func (c *CLI) build(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("build requires a model id")
	}
	modelID := args[0]
	args = args[1:]

	opts := models.BuildOptions{
		Aspect:   parseFlagValue(args, "--aspect", "-a"),
		Seed:     parseFlagValue(args, "--seed", "-s"),
		Negative: parseFlagValue(args, "--negative", "-n"),
	}
	if v := parseFlagValue(args, "--stylize", ""); v != "" {
		stylize, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid --stylize value %q", v)
		}
		opts.Stylize = stylize
	}
	engine := parseFlagValue(args, "--engine", "-e")
	copyResult := hasFlag(args, "--copy", "-c")
	paramsOnly := hasFlag(args, "--params-only", "")

	text := strings.Join(positionalArgs(args), " ")
	if text == "" {
		return fmt.Errorf("build requires input text")
	}

	if err := c.ensureGuideline(); err != nil {
		return err
	}

	res, err := c.service.Build(modelID, engine, text, opts)
	if err != nil {
		return err
	}

	out := res.Full
	if paramsOnly {
		out = res.Params
	}
	fmt.Println(out)

	if copyResult {
		if err := clipboard.Copy(out); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to copy to clipboard: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Copied to clipboard!")
		}
	}
	return nil
}

func (c *CLI) refresh() error {
	doc, err := c.service.Refresh(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Guideline %s resolved from %s (%d models, updated %s)\n",
		doc.Version, doc.Source, len(doc.Models), doc.UpdatedAt)
	return nil
}

func (c *CLI) searchModels(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a query")
	}

	if err := c.ensureGuideline(); err != nil {
		return err
	}

	results := c.service.SearchModels(args[0])
	if len(results) == 0 {
		fmt.Println("No models found")
		return nil
	}
	for _, m := range results {
		fmt.Printf("%-14s %s\n", m.ID, m.Name)
	}
	return nil
}

func (c *CLI) handleConfig(args []string) error {
	if len(args) == 0 {
		settings, err := c.service.Settings()
		if err != nil {
			return err
		}
		url := settings.SourceURL
		if url == "" {
			url = "(bundled)"
		}
		minutes := settings.RefreshMinutes
		if minutes <= 0 {
			minutes = 60
		}
		fmt.Printf("source-url:       %s\n", url)
		fmt.Printf("refresh-minutes:  %d\n", minutes)
		return nil
	}

	switch args[0] {
	case "set-url":
		if len(args) < 2 {
			return fmt.Errorf("set-url requires a URL (use \"\" to revert to the bundled document)")
		}
		return c.service.SetSourceURL(args[1])
	case "set-interval":
		if len(args) < 2 {
			return fmt.Errorf("set-interval requires minutes")
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid minutes %q", args[1])
		}
		return c.service.SetRefreshMinutes(minutes)
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *CLI) printUsage() error {
	fmt.Println(`promptforge - guideline-driven prompt builder

COMMANDS:
    models, ls                 List models from the active guideline
    show <id>                  Show one model's template and rules
    build <id> [flags] <text>  Compile text into a prompt
    search <query>             Fuzzy-search models
    refresh                    Re-resolve the guideline document
    config                     Show settings
    config set-url <url>       Set the remote guideline URL
    config set-interval <min>  Set the auto-refresh interval
    help                       Show this help

BUILD FLAGS:
    --engine, -e <engine>      Engine identifier for the model
    --aspect, -a <ratio>       Aspect ratio, e.g. 16:9
    --stylize <n>              Stylize strength (default 50)
    --seed, -s <seed>          Seed value
    --negative, -n <text>      Elements to exclude
    --copy, -c                 Copy result to clipboard
    --params-only              Print only the parameter line`)
	return nil
}

// parseFlagValue returns the value following a flag, or "" when absent.
func parseFlagValue(args []string, long, short string) string {
	for i, arg := range args {
		if (arg == long || (short != "" && arg == short)) && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, long, short string) bool {
	for _, arg := range args {
		if arg == long || (short != "" && arg == short) {
			return true
		}
	}
	return false
}

// positionalArgs strips flags and their values, leaving the input text.
func positionalArgs(args []string) []string {
	valueFlags := map[string]bool{
		"--aspect": true, "-a": true,
		"--seed": true, "-s": true,
		"--negative": true, "-n": true,
		"--stylize": true,
		"--engine": true, "-e": true,
	}
	boolFlags := map[string]bool{
		"--copy": true, "-c": true,
		"--params-only": true,
	}

	var out []string
	for i := 0; i < len(args); i++ {
		if valueFlags[args[i]] {
			i++
			continue
		}
		if boolFlags[args[i]] {
			continue
		}
		out = append(out, args[i])
	}
	return out
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
