// cmd/poolpermit/main.go
//
// Entry point for the pool permit wizard. Running `poolpermit` from a
// directory initializes its .poolpermit folder (config, logs, exports),
// wires the wizard core, and starts the TUI.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"poolpermit/internal/config"
	"poolpermit/internal/documents"
	"poolpermit/internal/logbook"
	"poolpermit/internal/permit"
	"poolpermit/internal/tui"
	"poolpermit/internal/validator"
	"poolpermit/internal/wizard"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitPermitDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing %s directory: %v\n", config.PermitDir, err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logbook.New(cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening logbook: %v\n", err)
		os.Exit(1)
	}
	log.Info("poolpermit starting in %s", cwd)

	store := permit.NewStore()
	stage := documents.NewStage()
	controller := wizard.NewController(store, stage, log)
	client := validator.NewHTTPClient(cfg.ValidatorEndpoint(), cfg.AgentID())

	p := tea.NewProgram(
		tui.New(cfg, controller, client, log),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
