package wizard

import "poolpermit/internal/permit"

// MinDocumentsToAdvance is how many staged documents the documents step
// requires. Deliberately lenient: two of the three categories are enough to
// proceed, and the compliance service reports whatever is still missing.
const MinDocumentsToAdvance = 2

// CanAdvance reports whether the wizard may move past step with the given
// data. Pure predicate, no side effects. Whitespace-only decimal fields
// count as not provided; no range or unit checks happen locally.
func CanAdvance(step Step, property permit.PropertyInfo, pool permit.PoolInfo, documentCount int) bool {
	switch step {
	case StepProperty:
		return permit.PropertyComplete(property)
	case StepPool:
		return permit.PoolComplete(pool)
	case StepDocuments:
		return documentCount >= MinDocumentsToAdvance
	case StepReview:
		// terminal gate before submission
		return true
	default:
		return false
	}
}
