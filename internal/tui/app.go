// internal/tui/app.go
//
// This is the terminal UI for the pool permit wizard. It uses bubbletea,
// which follows The Elm Architecture: the App model holds all state, Update
// reacts to messages, View renders the current state to a string.
//
// The wizard core (state machine, gating, staging, validation) lives in the
// internal packages; this layer only translates key presses into controller
// actions and renders the projections back.

package tui

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"poolpermit/internal/config"
	"poolpermit/internal/documents"
	"poolpermit/internal/logbook"
	"poolpermit/internal/validator"
	"poolpermit/internal/wizard"
)

// submitFinishedMsg delivers the outcome of a validation round trip.
type submitFinishedMsg struct {
	result *validator.Result
	err    error
}

// uploadFinishedMsg delivers the outcome of staging a picked file.
type uploadFinishedMsg struct {
	doc documents.Document
	err error
}

// artifactSavedMsg delivers the outcome of exporting the text summary.
type artifactSavedMsg struct {
	path string
	err  error
}

// App is the main application model.
type App struct {
	cfg        *config.Config
	controller *wizard.Controller
	client     validator.Client
	log        *logbook.Logbook

	// Form state for the active step
	rows  []formRow
	focus int

	// Document picking
	picking      bool
	picker       filepicker.Model
	pickCategory documents.Category

	spin spinner.Model

	width     int
	height    int
	statusMsg string
	savedPath string
}

// New creates the TUI model around an already-wired wizard controller.
func New(cfg *config.Config, controller *wizard.Controller, client validator.Client, log *logbook.Logbook) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))

	picker := filepicker.New()
	if home, err := os.UserHomeDir(); err == nil {
		picker.CurrentDirectory = home
	}

	return &App{
		cfg:        cfg,
		controller: controller,
		client:     client,
		log:        log,
		spin:       sp,
		picker:     picker,
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.picker.Height = max(5, msg.Height-14)
		return a, nil

	case spinner.TickMsg:
		if !a.controller.Submitting() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case submitFinishedMsg:
		a.controller.FinishSubmit(msg.result, msg.err)
		if a.controller.Screen() == wizard.ScreenResults {
			a.statusMsg = "Validation report received"
		} else {
			a.statusMsg = "Submission failed, back on the review step"
		}
		return a, nil

	case uploadFinishedMsg:
		if msg.err != nil {
			a.statusMsg = msg.err.Error()
		} else {
			a.statusMsg = "Attached " + msg.doc.Name + " as " + string(msg.doc.Category)
		}
		return a, nil

	case artifactSavedMsg:
		if msg.err != nil {
			a.statusMsg = "Export failed: " + msg.err.Error()
		} else {
			a.savedPath = msg.path
			a.statusMsg = "Saved " + msg.path
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		// Ignore everything else while a validation round trip is in
		// flight; the submit control is busy and rejects repeated presses.
		if a.controller.Submitting() {
			return a, nil
		}
		switch a.controller.Screen() {
		case wizard.ScreenLanding:
			return a.updateLanding(msg)
		case wizard.ScreenForm:
			return a.updateForm(msg)
		case wizard.ScreenResults:
			return a.updateResults(msg)
		}
	}

	if a.picking {
		var cmd tea.Cmd
		a.picker, cmd = a.picker.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit
	case "enter":
		if a.controller.StartApplication() {
			a.savedPath = ""
			a.statusMsg = ""
			a.buildRows()
		}
	}
	return a, nil
}

func (a *App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "e":
		if a.controller.EditApplication() {
			a.statusMsg = ""
			a.buildRows()
		}
	case "n":
		if a.controller.StartNewApplication() {
			a.savedPath = ""
			a.statusMsg = ""
		}
	case "d":
		return a, a.saveArtifactCmd()
	}
	return a, nil
}

// submitCmd runs the validation round trip off the UI loop and reports the
// outcome as a message. The deadline comes from configuration; the core
// imposes no timeout of its own beyond it.
func (a *App) submitCmd() tea.Cmd {
	controller := a.controller
	client := a.client
	timeout := a.cfg.SubmitTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		property := controller.Property()
		pool := controller.Pool()
		var categories []string
		for _, doc := range controller.Documents() {
			categories = append(categories, string(doc.Category))
		}
		result, err := client.Submit(ctx, property, pool, categories)
		return submitFinishedMsg{result: result, err: err}
	}
}

// uploadCmd stages the picked file without blocking the UI loop. Each pick
// targets exactly one category; the stage replaces per category, so reads
// completing out of order still end last-writer-wins.
func (a *App) uploadCmd(category documents.Category, path string) tea.Cmd {
	controller := a.controller
	return func() tea.Msg {
		doc, err := controller.UploadDocument(category, path)
		return uploadFinishedMsg{doc: doc, err: err}
	}
}

func (a *App) saveArtifactCmd() tea.Cmd {
	result := a.controller.Result()
	dir := a.cfg.ExportsDir()
	return func() tea.Msg {
		path, err := saveArtifact(result, dir)
		return artifactSavedMsg{path: path, err: err}
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
