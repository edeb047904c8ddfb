package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"poolpermit/internal/documents"
	"poolpermit/internal/permit"
	"poolpermit/internal/wizard"
)

// rowKind distinguishes how a form row is edited and rendered.
type rowKind int

const (
	rowText     rowKind = iota // free text input
	rowChoice                  // enum cycled with left/right
	rowToggle                  // boolean flipped with space or left/right
	rowDocument                // document category slot, enter opens picker
	rowContinue                // advances to the next step
)

// formRow is one editable line of the active step.
type formRow struct {
	kind     rowKind
	label    string
	entity   permit.Entity
	key      string
	input    textinput.Model
	options  []string
	category documents.Category
}

func textRow(label string, entity permit.Entity, key, value string) formRow {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 120
	input.Width = 40
	input.SetValue(value)
	return formRow{kind: rowText, label: label, entity: entity, key: key, input: input}
}

func choiceRow(label string, entity permit.Entity, key string, options []string) formRow {
	return formRow{kind: rowChoice, label: label, entity: entity, key: key, options: options}
}

func toggleRow(label string, key string) formRow {
	return formRow{kind: rowToggle, label: label, entity: permit.EntityPool, key: key}
}

// buildRows rebuilds the editable rows for the active step from controller
// state. Called on every step change and whenever the pool's heating flag
// flips (the heating type row only exists while heating is on).
func (a *App) buildRows() {
	property := a.controller.Property()
	pool := a.controller.Pool()

	var rows []formRow
	switch a.controller.Step() {
	case wizard.StepProperty:
		rows = []formRow{
			textRow("Address", permit.EntityProperty, "address", property.Address),
			textRow("Lot Size (acres)", permit.EntityProperty, "lotSize", property.LotSize),
			choiceRow("Zoning", permit.EntityProperty, "zoning", stringsOf(permit.ZoningValues())),
			choiceRow("Property Type", permit.EntityProperty, "propertyType", stringsOf(permit.PropertyTypeValues())),
		}
	case wizard.StepPool:
		rows = []formRow{
			choiceRow("Pool Type", permit.EntityPool, "poolType", stringsOf(permit.PoolTypeValues())),
			textRow("Length (ft)", permit.EntityPool, "length", pool.Length),
			textRow("Width (ft)", permit.EntityPool, "width", pool.Width),
			textRow("Depth (ft)", permit.EntityPool, "depth", pool.Depth),
			toggleRow("Heating", "heating"),
		}
		if pool.Heating {
			rows = append(rows, choiceRow("Heating Type", permit.EntityPool, "heatingType", stringsOf(permit.HeatingTypeValues())))
		}
		rows = append(rows,
			toggleRow("Lighting", "lighting"),
			toggleRow("Diving Board", "divingBoard"),
			toggleRow("Safety Fence", "fence"),
		)
	case wizard.StepDocuments:
		for _, category := range documents.Categories() {
			rows = append(rows, formRow{kind: rowDocument, label: string(category), category: category})
		}
		rows = append(rows, formRow{kind: rowContinue, label: "Continue to review"})
	case wizard.StepReview:
		// read-only; enter submits
	}

	a.rows = rows
	a.focus = 0
	a.applyFocus()
}

func (a *App) applyFocus() {
	for i := range a.rows {
		a.rows[i].input.Blur()
	}
	if a.focus >= 0 && a.focus < len(a.rows) && a.rows[a.focus].kind == rowText {
		a.rows[a.focus].input.Focus()
	}
}

func (a *App) moveFocus(delta int) {
	if len(a.rows) == 0 {
		return
	}
	a.focus = (a.focus + delta + len(a.rows)) % len(a.rows)
	a.applyFocus()
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.picking {
		return a.updatePicker(msg)
	}

	// Any action after a failed submission dismisses the notice.
	if a.controller.LastError() != "" {
		a.controller.DismissError()
	}

	key := msg.String()
	switch key {
	case "esc":
		if a.controller.GoPrevious() {
			a.buildRows()
		}
		return a, nil
	case "tab", "down":
		a.moveFocus(1)
		return a, nil
	case "shift+tab", "up":
		a.moveFocus(-1)
		return a, nil
	case "enter":
		return a.handleEnter()
	case "x":
		if row, ok := a.focusedRow(); ok && row.kind == rowDocument {
			if doc, found := a.stagedDoc(row.category); found {
				a.controller.RemoveDocument(doc.ID)
				a.statusMsg = "Removed " + string(row.category)
			}
			return a, nil
		}
	}

	row, ok := a.focusedRow()
	if !ok {
		return a, nil
	}

	switch row.kind {
	case rowChoice:
		switch key {
		case "left":
			a.cycleChoice(row, -1)
		case "right", " ":
			a.cycleChoice(row, 1)
		}
		return a, nil
	case rowToggle:
		switch key {
		case " ", "left", "right":
			a.flipToggle(row)
		}
		return a, nil
	case rowText:
		var cmd tea.Cmd
		a.rows[a.focus].input, cmd = a.rows[a.focus].input.Update(msg)
		_ = a.controller.EditField(row.entity, row.key, a.rows[a.focus].input.Value())
		return a, cmd
	}
	return a, nil
}

func (a *App) handleEnter() (tea.Model, tea.Cmd) {
	if a.controller.Step() == wizard.StepReview {
		if err := a.controller.BeginSubmit(); err != nil {
			a.statusMsg = err.Error()
			return a, nil
		}
		a.statusMsg = "Validating application..."
		return a, tea.Batch(a.spin.Tick, a.submitCmd())
	}

	if row, ok := a.focusedRow(); ok && row.kind == rowDocument {
		a.picking = true
		a.pickCategory = row.category
		a.statusMsg = "Pick a file for " + string(row.category)
		return a, a.picker.Init()
	}

	if a.controller.GoNext() {
		a.buildRows()
		a.statusMsg = ""
	} else if !a.controller.CanAdvance() {
		a.statusMsg = stepBlockedHint(a.controller.Step())
	}
	return a, nil
}

func (a *App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		a.picking = false
		a.statusMsg = ""
		return a, nil
	}
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	if didSelect, path := a.picker.DidSelectFile(msg); didSelect {
		a.picking = false
		return a, a.uploadCmd(a.pickCategory, path)
	}
	return a, cmd
}

func (a *App) cycleChoice(row formRow, delta int) {
	if len(row.options) == 0 {
		return
	}
	current := a.fieldValue(row)
	index := 0
	for i, option := range row.options {
		if option == current {
			index = i
			break
		}
	}
	index = (index + delta + len(row.options)) % len(row.options)
	_ = a.controller.EditField(row.entity, row.key, row.options[index])
}

func (a *App) flipToggle(row formRow) {
	next := !a.boolValue(row.key)
	_ = a.controller.EditField(permit.EntityPool, row.key, strconv.FormatBool(next))
	if row.key == "heating" {
		// heating controls whether the heating type row exists
		focus := a.focus
		a.buildRows()
		if focus < len(a.rows) {
			a.focus = focus
			a.applyFocus()
		}
	}
}

func (a *App) focusedRow() (formRow, bool) {
	if a.focus < 0 || a.focus >= len(a.rows) {
		return formRow{}, false
	}
	return a.rows[a.focus], true
}

func (a *App) stagedDoc(category documents.Category) (documents.Document, bool) {
	for _, doc := range a.controller.Documents() {
		if doc.Category == category {
			return doc, true
		}
	}
	return documents.Document{}, false
}

// fieldValue reads the current value of a choice row from the controller.
func (a *App) fieldValue(row formRow) string {
	property := a.controller.Property()
	pool := a.controller.Pool()
	if row.entity == permit.EntityProperty {
		switch row.key {
		case "zoning":
			return string(property.Zoning)
		case "propertyType":
			return string(property.PropertyType)
		}
		return ""
	}
	switch row.key {
	case "poolType":
		return string(pool.PoolType)
	case "heatingType":
		return string(pool.HeatingType)
	}
	return ""
}

func (a *App) boolValue(key string) bool {
	pool := a.controller.Pool()
	switch key {
	case "heating":
		return pool.Heating
	case "lighting":
		return pool.Lighting
	case "divingBoard":
		return pool.DivingBoard
	case "fence":
		return pool.Fence
	}
	return false
}

func stepBlockedHint(step wizard.Step) string {
	switch step {
	case wizard.StepProperty:
		return "All four property fields are required before continuing"
	case wizard.StepPool:
		return "Pool type and dimensions are required (and a heating type when heating is on)"
	case wizard.StepDocuments:
		return "Attach at least two documents to continue"
	default:
		return "Cannot advance from this step yet"
	}
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
