package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"poolpermit/internal/report"
	"poolpermit/internal/validator"
	"poolpermit/internal/wizard"
)

var (
	accentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// View renders the current screen.
func (a *App) View() string {
	header := accentStyle.Render("◆ POOL PERMIT WIZARD")

	var body string
	switch a.controller.Screen() {
	case wizard.ScreenLanding:
		body = a.viewLanding()
	case wizard.ScreenForm:
		body = a.viewForm()
	case wizard.ScreenResults:
		body = a.viewResults()
	}

	sections := []string{header, body}
	if a.statusMsg != "" {
		sections = append(sections, dimStyle.Padding(0, 1).Render(a.statusMsg))
	}
	sections = append(sections, a.renderLogPanel())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) viewLanding() string {
	var b strings.Builder
	b.WriteString("Swimming Pool Permit Application\n\n")
	b.WriteString("This wizard walks you through the municipal permit application:\n")
	b.WriteString("property details, pool specification, supporting documents, and\n")
	b.WriteString("a compliance review by the permit validation service.\n")
	box := panelStyle.Render(b.String())
	hint := faintStyle.Padding(1, 1, 0, 1).Render("Enter → start application    q → quit")
	return lipgloss.JoinVertical(lipgloss.Left, box, hint)
}

func (a *App) viewForm() string {
	if a.picking {
		title := accentStyle.Render("Attach: " + string(a.pickCategory))
		hint := faintStyle.Render("Enter → select file    Esc → cancel")
		return lipgloss.JoinVertical(lipgloss.Left, title, a.picker.View(), hint)
	}

	var sections []string
	sections = append(sections, a.renderStepBar())

	if a.controller.Step() == wizard.StepReview {
		sections = append(sections, a.renderReview())
	} else {
		sections = append(sections, panelStyle.Render(a.renderRows()))
	}

	if notice := a.controller.LastError(); notice != "" {
		sections = append(sections, errorStyle.Padding(0, 1).Render("✗ "+notice))
	}
	sections = append(sections, faintStyle.Padding(0, 1).Render(a.formHints()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderStepBar() string {
	var parts []string
	pos, total := a.controller.Step().Position()
	for i, step := range wizard.Steps() {
		label := fmt.Sprintf("%d. %s", i+1, step.Title())
		if step == a.controller.Step() {
			parts = append(parts, accentStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}
	bar := strings.Join(parts, dimStyle.Render("  ·  "))
	return lipgloss.JoinVertical(lipgloss.Left,
		bar,
		dimStyle.Render(fmt.Sprintf("Step %d of %d", pos+1, total)),
	)
}

func (a *App) renderRows() string {
	var b strings.Builder
	for i, row := range a.rows {
		cursor := "  "
		if i == a.focus {
			cursor = accentStyle.Render("▸ ")
		}
		b.WriteString(cursor)
		b.WriteString(a.renderRow(row, i == a.focus))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderRow(row formRow, focused bool) string {
	switch row.kind {
	case rowText:
		return fmt.Sprintf("%-18s %s", row.label+":", row.input.View())
	case rowChoice:
		value := a.fieldValue(row)
		display := value
		if focused {
			display = "◂ " + value + " ▸"
		}
		return fmt.Sprintf("%-18s %s", row.label+":", display)
	case rowToggle:
		mark := "[ ]"
		if a.boolValue(row.key) {
			mark = okStyle.Render("[✓]")
		}
		return fmt.Sprintf("%-18s %s", row.label+":", mark)
	case rowDocument:
		if doc, ok := a.stagedDoc(row.category); ok {
			return fmt.Sprintf("%-18s %s", row.label+":", okStyle.Render("✓ ")+doc.Name)
		}
		return fmt.Sprintf("%-18s %s", row.label+":", dimStyle.Render("(none attached)"))
	case rowContinue:
		if focused {
			return accentStyle.Render("[ " + row.label + " ]")
		}
		return dimStyle.Render("[ " + row.label + " ]")
	}
	return ""
}

func (a *App) renderReview() string {
	property := a.controller.Property()
	pool := a.controller.Pool()

	var b strings.Builder
	b.WriteString(accentStyle.Render("Property") + "\n")
	fmt.Fprintf(&b, "  Address:       %s\n", property.Address)
	fmt.Fprintf(&b, "  Lot Size:      %s acres\n", property.LotSize)
	fmt.Fprintf(&b, "  Zoning:        %s\n", property.Zoning)
	fmt.Fprintf(&b, "  Property Type: %s\n\n", property.PropertyType)

	b.WriteString(accentStyle.Render("Pool") + "\n")
	fmt.Fprintf(&b, "  Type:          %s\n", pool.PoolType)
	fmt.Fprintf(&b, "  Dimensions:    %s × %s ft, %s ft deep\n", pool.Length, pool.Width, pool.Depth)
	heating := "no"
	if pool.Heating {
		heating = fmt.Sprintf("yes (%s)", pool.HeatingType)
	}
	fmt.Fprintf(&b, "  Heating:       %s\n", heating)
	fmt.Fprintf(&b, "  Lighting:      %s\n", yesNo(pool.Lighting))
	fmt.Fprintf(&b, "  Diving Board:  %s\n", yesNo(pool.DivingBoard))
	fmt.Fprintf(&b, "  Safety Fence:  %s\n\n", yesNo(pool.Fence))

	b.WriteString(accentStyle.Render("Documents") + "\n")
	docs := a.controller.Documents()
	if len(docs) == 0 {
		b.WriteString(dimStyle.Render("  (none attached)") + "\n")
	}
	for _, doc := range docs {
		fmt.Fprintf(&b, "  %s: %s\n", doc.Category, doc.Name)
	}

	panel := panelStyle.Render(strings.TrimRight(b.String(), "\n"))
	if a.controller.Submitting() {
		busy := faintStyle.Render(a.spin.View() + " Waiting for the compliance review...")
		return lipgloss.JoinVertical(lipgloss.Left, panel, busy)
	}
	return panel
}

func (a *App) viewResults() string {
	result := a.controller.Result()
	if result == nil {
		return errorStyle.Render("No validation result available")
	}
	view := report.Present(result)

	var b strings.Builder
	if view.Banner.Tone == report.TonePositive {
		b.WriteString(okStyle.Render("✓ "+view.Banner.Headline) + "\n")
	} else {
		b.WriteString(errorStyle.Render("✗ "+view.Banner.Headline) + "\n")
	}
	b.WriteString(faintStyle.Render(view.Banner.Detail) + "\n\n")

	if len(view.Checklist) > 0 {
		b.WriteString(accentStyle.Render("Checklist") + "\n")
		for _, row := range view.Checklist {
			mark := errorStyle.Render("✗")
			if row.Passed {
				mark = okStyle.Render("✓")
			}
			fmt.Fprintf(&b, "  %s %s", mark, row.Item)
			if row.Details != "" {
				b.WriteString(dimStyle.Render("  (" + row.Details + ")"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(view.MissingItems) > 0 {
		b.WriteString(errorStyle.Render("Missing Items") + "\n")
		for _, item := range view.MissingItems {
			fmt.Fprintf(&b, "  • %s\n", item)
		}
		b.WriteString("\n")
	}

	if len(view.ComplianceNotes) > 0 {
		b.WriteString(accentStyle.Render("Compliance Notes") + "\n")
		for _, note := range view.ComplianceNotes {
			fmt.Fprintf(&b, "  • %s\n", note)
		}
		b.WriteString("\n")
	}

	b.WriteString(renderSummary("Property Summary", view.PropertySummary))
	b.WriteString(renderSummary("Pool Summary", view.PoolSummary))
	b.WriteString(renderSummary("Document Status", view.DocumentStatus))

	panel := panelStyle.Render(strings.TrimRight(b.String(), "\n"))

	hints := []string{"e → edit application", "n → new application", "q → quit"}
	if view.CanDownload {
		hints = append([]string{"d → download summary"}, hints...)
	}
	footer := faintStyle.Padding(0, 1).Render(strings.Join(hints, "    "))
	if a.savedPath != "" {
		footer = lipgloss.JoinVertical(lipgloss.Left,
			okStyle.Padding(0, 1).Render("Saved to "+a.savedPath), footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panel, footer)
}

func renderSummary(title string, fields []report.Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(accentStyle.Render(title) + "\n")
	for _, field := range fields {
		fmt.Fprintf(&b, "  %s: %s\n", field.Label, field.Value)
	}
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderLogPanel() string {
	lines := a.log.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := accentStyle.Render("LOG · " + filepath.Base(a.log.Path()))
	body := faintStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(head + "\n" + body)
}

func (a *App) formHints() string {
	switch a.controller.Step() {
	case wizard.StepDocuments:
		return "Enter → attach file (on a category)    x → remove    Tab/↑↓ → move    Esc → back"
	case wizard.StepReview:
		return "Enter → submit for validation    Esc → back"
	default:
		return "Tab/↑↓ → move    ←/→ → change choice    Space → toggle    Enter → continue    Esc → back"
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// saveArtifact exports the plain-text summary for a completed validation.
func saveArtifact(result *validator.Result, dir string) (string, error) {
	if result == nil {
		return "", fmt.Errorf("tui: no validation result to export")
	}
	return report.WriteArtifact(result, dir, time.Now())
}
