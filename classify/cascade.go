package classify

import "github.com/appleseedlab/merc/facts"

// condition pairs a per-invocation predicate with the Reason reported
// when it fails. Cascades are built as ordered slices of condition
// rather than hand-unrolled if-chains (spec.md §9's Design Notes) so
// that a new condition can be inserted at the right precedence without
// reshuffling the rest.
type condition struct {
	// holds reports whether i satisfies this condition (true == passes).
	holds  func(i facts.Invocation) bool
	reason Reason
}

// firstFailure evaluates conditions, in order, against every invocation
// in is. It returns the Reason of the first condition for which any
// invocation fails, or false if every invocation satisfies every
// condition. Conditions are checked one at a time across the whole set
// before moving to the next, so the reason reported is always the
// earliest-precedence failure regardless of which invocation or which
// later condition would also have failed.
func firstFailure(is []facts.Invocation, conditions []condition) (Reason, bool) {
	for _, c := range conditions {
		for _, i := range is {
			if !c.holds(i) {
				return c.reason, true
			}
		}
	}
	return 0, false
}
