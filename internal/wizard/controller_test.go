package wizard

import (
	"context"
	"errors"
	"testing"

	"poolpermit/internal/documents"
	"poolpermit/internal/permit"
	"poolpermit/internal/validator"
)

type stubClient struct {
	result *validator.Result
	err    error
	calls  int
}

func (s *stubClient) Submit(ctx context.Context, property permit.PropertyInfo, pool permit.PoolInfo, categories []string) (*validator.Result, error) {
	s.calls++
	return s.result, s.err
}

func completeResult() *validator.Result {
	return &validator.Result{
		ValidationStatus: validator.StatusComplete,
		Checklist: []validator.ChecklistItem{
			{Item: "Safety fence present", Status: validator.CheckPass},
		},
	}
}

func newTestController(t *testing.T) (*Controller, *documents.Stage) {
	t.Helper()
	stage := documents.NewStage()
	c := NewController(permit.NewStore(), stage, nil)
	return c, stage
}

func stageDocs(t *testing.T, stage *documents.Stage, n int) {
	t.Helper()
	categories := documents.Categories()
	for i := 0; i < n; i++ {
		if _, err := stage.Put(categories[i], "file.pdf", []byte("x")); err != nil {
			t.Fatalf("stage doc: %v", err)
		}
	}
}

func advanceToReview(t *testing.T, c *Controller, stage *documents.Stage) {
	t.Helper()
	if !c.StartApplication() {
		t.Fatalf("StartApplication failed")
	}
	if !c.GoNext() || c.Step() != StepPool {
		t.Fatalf("property -> pool failed, step %v", c.Step())
	}
	if !c.GoNext() || c.Step() != StepDocuments {
		t.Fatalf("pool -> documents failed, step %v", c.Step())
	}
	stageDocs(t, stage, 2)
	if !c.GoNext() || c.Step() != StepReview {
		t.Fatalf("documents -> review failed, step %v", c.Step())
	}
}

func TestControllerStartsOnLanding(t *testing.T) {
	c, _ := newTestController(t)
	if c.Screen() != ScreenLanding {
		t.Fatalf("screen = %v", c.Screen())
	}
	if c.Result() != nil {
		t.Fatalf("fresh controller has a result")
	}
}

func TestStartApplicationSeedsDefaults(t *testing.T) {
	c, stage := newTestController(t)
	stageDocs(t, stage, 1)

	if !c.StartApplication() {
		t.Fatalf("StartApplication failed")
	}
	if c.Screen() != ScreenForm || c.Step() != StepProperty {
		t.Fatalf("landed on %v/%v", c.Screen(), c.Step())
	}
	if c.Property() != permit.DefaultProperty() {
		t.Fatalf("property not seeded: %+v", c.Property())
	}
	if len(c.Documents()) != 0 {
		t.Fatalf("stage not cleared: %d docs", len(c.Documents()))
	}

	if c.StartApplication() {
		t.Fatalf("StartApplication allowed off the landing screen")
	}
}

func TestGoNextBlockedByGate(t *testing.T) {
	c, _ := newTestController(t)
	c.StartApplication()

	if err := c.EditField(permit.EntityProperty, "address", "  "); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if c.GoNext() {
		t.Fatalf("advanced past an incomplete property step")
	}
	if c.Step() != StepProperty {
		t.Fatalf("step = %v", c.Step())
	}
}

func TestGoPrevious(t *testing.T) {
	c, _ := newTestController(t)
	c.StartApplication()

	if c.GoPrevious() {
		t.Fatalf("stepped back from the first step")
	}
	if !c.GoNext() {
		t.Fatalf("advance failed")
	}
	if !c.GoPrevious() || c.Step() != StepProperty {
		t.Fatalf("back failed, step %v", c.Step())
	}
}

func TestEditFieldOnlyOnForm(t *testing.T) {
	c, _ := newTestController(t)
	if err := c.EditField(permit.EntityProperty, "address", "x"); err == nil {
		t.Fatalf("edit accepted on landing screen")
	}
}

func TestSubmitSuccessShowsResults(t *testing.T) {
	c, stage := newTestController(t)
	advanceToReview(t, c, stage)

	want := completeResult()
	client := &stubClient{result: want}
	got, err := c.Submit(context.Background(), client)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got != want || c.Result() != want {
		t.Fatalf("result not stored verbatim")
	}
	if c.Screen() != ScreenResults {
		t.Fatalf("screen = %v", c.Screen())
	}
	if c.Submitting() {
		t.Fatalf("submitting latch still set")
	}
}

func TestSubmitFailureStaysOnReview(t *testing.T) {
	c, stage := newTestController(t)
	advanceToReview(t, c, stage)

	client := &stubClient{err: validator.ErrService}
	if _, err := c.Submit(context.Background(), client); !errors.Is(err, validator.ErrService) {
		t.Fatalf("err = %v", err)
	}
	if c.Screen() != ScreenForm || c.Step() != StepReview {
		t.Fatalf("left review: %v/%v", c.Screen(), c.Step())
	}
	if c.Result() != nil {
		t.Fatalf("failed submission stored a result")
	}
	if c.LastError() == "" {
		t.Fatalf("no error notice")
	}

	c.DismissError()
	if c.LastError() != "" {
		t.Fatalf("notice not dismissed")
	}

	client = &stubClient{result: completeResult()}
	if _, err := c.Submit(context.Background(), client); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if c.Screen() != ScreenResults {
		t.Fatalf("resubmit did not reach results")
	}
}

func TestSubmitNilResultTreatedAsMalformed(t *testing.T) {
	c, stage := newTestController(t)
	advanceToReview(t, c, stage)

	c.FinishSubmit(nil, nil)
	if c.Submitting() {
		t.Fatalf("latch without BeginSubmit")
	}

	if err := c.BeginSubmit(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	c.FinishSubmit(nil, nil)
	if c.Screen() != ScreenForm || c.Result() != nil {
		t.Fatalf("nil result advanced the wizard")
	}
	if c.LastError() != validator.ErrMalformedResponse.Error() {
		t.Fatalf("notice = %q", c.LastError())
	}
}

func TestSubmitIsNotReentrant(t *testing.T) {
	c, stage := newTestController(t)
	advanceToReview(t, c, stage)

	if err := c.BeginSubmit(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := c.BeginSubmit(); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("second begin err = %v", err)
	}
	if c.GoNext() || c.GoPrevious() {
		t.Fatalf("navigation allowed while submitting")
	}
	c.FinishSubmit(completeResult(), nil)
	if c.Screen() != ScreenResults {
		t.Fatalf("screen = %v", c.Screen())
	}
}

func TestSubmitOnlyFromReview(t *testing.T) {
	c, _ := newTestController(t)
	c.StartApplication()
	if err := c.BeginSubmit(); err == nil {
		t.Fatalf("submit accepted on the property step")
	}
}

func TestEditApplicationRetainsValues(t *testing.T) {
	c, stage := newTestController(t)
	advanceToReview(t, c, stage)
	if err := c.EditField(permit.EntityProperty, "address", "9 Harbor Road"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	c.Submit(context.Background(), &stubClient{result: completeResult()})

	if !c.EditApplication() {
		t.Fatalf("EditApplication failed")
	}
	if c.Screen() != ScreenForm || c.Step() != StepProperty {
		t.Fatalf("landed on %v/%v", c.Screen(), c.Step())
	}
	if c.Property().Address != "9 Harbor Road" {
		t.Fatalf("edits lost: %q", c.Property().Address)
	}
	if len(c.Documents()) != 2 {
		t.Fatalf("documents lost: %d", len(c.Documents()))
	}
}

func TestStartNewApplicationDiscardsEverything(t *testing.T) {
	c, stage := newTestController(t)
	advanceToReview(t, c, stage)
	if err := c.EditField(permit.EntityProperty, "address", "9 Harbor Road"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	c.Submit(context.Background(), &stubClient{result: completeResult()})

	if !c.StartNewApplication() {
		t.Fatalf("StartNewApplication failed")
	}
	if c.Screen() != ScreenLanding {
		t.Fatalf("screen = %v", c.Screen())
	}
	if c.Result() != nil {
		t.Fatalf("result survived")
	}

	if !c.StartApplication() {
		t.Fatalf("restart failed")
	}
	if c.Property() != permit.DefaultProperty() {
		t.Fatalf("new application kept old values: %+v", c.Property())
	}
	if len(c.Documents()) != 0 {
		t.Fatalf("new application kept documents")
	}
}
