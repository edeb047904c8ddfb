package wizard

import (
	"context"
	"errors"
	"fmt"

	"poolpermit/internal/documents"
	"poolpermit/internal/logbook"
	"poolpermit/internal/permit"
	"poolpermit/internal/validator"
)

// ErrSubmitInFlight is returned when a submission is requested while a
// validation round trip is already outstanding.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// Controller owns the wizard state and orchestrates every transition. It
// processes one action to completion before the next is accepted; the only
// long-running action, submission, is split into BeginSubmit/FinishSubmit so
// a caller can await the validation round trip without blocking the UI loop.
type Controller struct {
	screen Screen
	step   Step

	store *permit.Store
	stage *documents.Stage

	result     *validator.Result
	submitting bool
	lastError  string

	log *logbook.Logbook
}

// NewController creates a controller on the landing screen.
func NewController(store *permit.Store, stage *documents.Stage, log *logbook.Logbook) *Controller {
	return &Controller{
		screen: ScreenLanding,
		step:   StepProperty,
		store:  store,
		stage:  stage,
		log:    log,
	}
}

// Screen returns the current top-level screen.
func (c *Controller) Screen() Screen { return c.screen }

// Step returns the active form step.
func (c *Controller) Step() Step { return c.step }

// Property returns the current property record.
func (c *Controller) Property() permit.PropertyInfo { return c.store.Property() }

// Pool returns the current pool record.
func (c *Controller) Pool() permit.PoolInfo { return c.store.Pool() }

// Documents returns the staged documents in category order.
func (c *Controller) Documents() []documents.Document { return c.stage.List() }

// Result returns the stored validation result, nil until a submission
// succeeds.
func (c *Controller) Result() *validator.Result { return c.result }

// Submitting reports whether a validation round trip is outstanding.
func (c *Controller) Submitting() bool { return c.submitting }

// LastError returns the most recent user-facing error notice, empty when
// there is none.
func (c *Controller) LastError() string { return c.lastError }

// DismissError clears the current error notice.
func (c *Controller) DismissError() { c.lastError = "" }

// CanAdvance reports whether the gate passes for the active step.
func (c *Controller) CanAdvance() bool {
	return CanAdvance(c.step, c.store.Property(), c.store.Pool(), c.stage.Count())
}

// StartApplication moves landing -> form(property), seeding the field store
// and document stage with their defaults and clearing any prior result.
func (c *Controller) StartApplication() bool {
	if c.screen != ScreenLanding {
		return false
	}
	c.store.Reset()
	c.stage.Reset()
	c.result = nil
	c.lastError = ""
	c.screen = ScreenForm
	c.step = StepProperty
	c.log.Info("Application started with default values")
	return true
}

// EditField mutates one field of the property or pool record. Field edits
// are legal only while the form is showing; they never change wizard state.
func (c *Controller) EditField(entity permit.Entity, key, value string) error {
	if c.screen != ScreenForm {
		return fmt.Errorf("wizard: fields are not editable on the %s screen", c.screen)
	}
	return c.store.Edit(entity, key, value)
}

// UploadDocument stages a file under the given category, replacing any
// previous upload for that category.
func (c *Controller) UploadDocument(category documents.Category, path string) (documents.Document, error) {
	if c.screen != ScreenForm {
		return documents.Document{}, fmt.Errorf("wizard: documents are not editable on the %s screen", c.screen)
	}
	doc, err := c.stage.Upload(category, path)
	if err != nil {
		c.log.Warn("Upload failed for %s: %v", category, err)
		return documents.Document{}, err
	}
	c.log.Info("Document staged: %s -> %s", category, doc.Name)
	return doc, nil
}

// RemoveDocument deletes a staged document by identity; unknown identities
// are a no-op.
func (c *Controller) RemoveDocument(id string) {
	if c.screen != ScreenForm {
		return
	}
	c.stage.Remove(id)
}

// GoNext advances to the following step when the gate passes. It reports
// whether the step changed; a false return with a passing gate means the
// review step was reached (submission is the only way forward from there).
func (c *Controller) GoNext() bool {
	if c.screen != ScreenForm || c.submitting {
		return false
	}
	if !c.CanAdvance() {
		return false
	}
	next, ok := c.step.Next()
	if !ok {
		return false
	}
	c.step = next
	c.log.Info("Advanced to step: %s", next)
	return true
}

// GoPrevious steps back; a no-op on the first step.
func (c *Controller) GoPrevious() bool {
	if c.screen != ScreenForm || c.submitting {
		return false
	}
	prev, ok := c.step.Prev()
	if !ok {
		return false
	}
	c.step = prev
	return true
}

// BeginSubmit latches the in-flight submission. Legal only on the review
// step; a second call while outstanding fails with ErrSubmitInFlight.
func (c *Controller) BeginSubmit() error {
	if c.screen != ScreenForm || c.step != StepReview {
		return fmt.Errorf("wizard: submit is only available on the review step")
	}
	if c.submitting {
		return ErrSubmitInFlight
	}
	c.submitting = true
	c.lastError = ""
	c.log.Info("Submitting application for validation")
	return nil
}

// FinishSubmit completes the submission transition. On success the wizard
// shows the results screen with the report stored verbatim; on failure it
// stays on the review step with a dismissible notice and no result.
func (c *Controller) FinishSubmit(result *validator.Result, err error) {
	if !c.submitting {
		return
	}
	c.submitting = false
	if err != nil {
		c.lastError = err.Error()
		c.log.Error("Validation failed: %v", err)
		return
	}
	if result == nil {
		c.lastError = validator.ErrMalformedResponse.Error()
		c.log.Error("Validation returned no result")
		return
	}
	c.result = result
	c.screen = ScreenResults
	c.log.Info("Validation finished: %s", result.ValidationStatus)
}

// Submit runs the full submission round trip synchronously: gate the
// transition, call the client, and apply the outcome.
func (c *Controller) Submit(ctx context.Context, client validator.Client) (*validator.Result, error) {
	if err := c.BeginSubmit(); err != nil {
		return nil, err
	}
	result, err := client.Submit(ctx, c.store.Property(), c.store.Pool(), c.stage.CategoriesPresent())
	c.FinishSubmit(result, err)
	return result, err
}

// EditApplication returns from the results screen to the first form step.
// Field store and document stage keep their current values.
func (c *Controller) EditApplication() bool {
	if c.screen != ScreenResults {
		return false
	}
	c.screen = ScreenForm
	c.step = StepProperty
	c.log.Info("Editing application after validation")
	return true
}

// StartNewApplication returns to the landing screen and clears the stored
// result. The field store and document stage are reseeded on the next
// StartApplication, discarding prior edits.
func (c *Controller) StartNewApplication() bool {
	if c.screen != ScreenResults {
		return false
	}
	c.screen = ScreenLanding
	c.step = StepProperty
	c.result = nil
	c.lastError = ""
	c.log.Info("Ready for a new application")
	return true
}
