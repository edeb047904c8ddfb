// Package wizard is the application state machine: which screen is showing,
// which form step is active, and which transitions are legal. All mutation
// of the field store and document stage funnels through the Controller so
// every legal transition stays enumerable.
package wizard

// Screen represents which top-level view the wizard is on.
type Screen string

const (
	ScreenLanding Screen = "landing"
	ScreenForm    Screen = "form"
	ScreenResults Screen = "results"
)

// Step is one stage of the application form, in fixed order.
type Step string

const (
	StepProperty  Step = "property"
	StepPool      Step = "pool"
	StepDocuments Step = "documents"
	StepReview    Step = "review"
)

var stepOrder = []Step{StepProperty, StepPool, StepDocuments, StepReview}

// Steps returns the form steps in wizard order.
func Steps() []Step {
	out := make([]Step, len(stepOrder))
	copy(out, stepOrder)
	return out
}

// Position returns the zero-based index of s and the total step count.
// Unknown steps report an index past the end.
func (s Step) Position() (int, int) {
	for i, step := range stepOrder {
		if step == s {
			return i, len(stepOrder)
		}
	}
	return len(stepOrder), len(stepOrder)
}

// Next returns the step after s. ok is false at the review step, which has
// no successor: leaving it means submitting.
func (s Step) Next() (Step, bool) {
	pos, total := s.Position()
	if pos+1 >= total {
		return s, false
	}
	return stepOrder[pos+1], true
}

// Prev returns the step before s. ok is false at the property step.
func (s Step) Prev() (Step, bool) {
	pos, _ := s.Position()
	if pos == 0 || pos >= len(stepOrder) {
		return s, false
	}
	return stepOrder[pos-1], true
}

// Title returns the step's display name.
func (s Step) Title() string {
	switch s {
	case StepProperty:
		return "Property Details"
	case StepPool:
		return "Pool Specification"
	case StepDocuments:
		return "Supporting Documents"
	case StepReview:
		return "Review & Submit"
	default:
		return string(s)
	}
}
