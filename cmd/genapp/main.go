package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sokinpui/genapp/cli"
	"github.com/sokinpui/genapp/genapp"
	"github.com/sokinpui/genapp/internal/tui"
	"github.com/sokinpui/genapp/internal/ui"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app, err := genapp.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// Snippet modes print to stdout and should not run the TUI.
	if cfg.Plain || cfg.Component || cfg.Function {
		runPlain(app)
		return
	}

	model := tui.New(app)
	p := tea.NewProgram(model)
	model.SetProgram(p)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func runPlain(app *genapp.App) {
	summary, err := app.Execute(context.Background())
	if err != nil {
		ui.Error("Error: %v", err)
		os.Exit(1)
	}

	if summary.Code != "" {
		fmt.Println(summary.Code)
		return
	}
	if summary.Message != "" {
		ui.Header(summary.Message)
	}
	ui.PrintSummary(summary.Created, summary.Updated, summary.Deleted, summary.Degraded)
}
