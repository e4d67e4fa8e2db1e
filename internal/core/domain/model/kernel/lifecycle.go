package kernel

import "slices"

// Transitions is the guarded-transition table shared by every lifecycle in the
// domain model: each known status maps to the statuses it may move to. A known
// status with no targets is terminal.
//
// Example:
//
//	var transitions = kernel.Transitions[Status]{
//	    Requested:  {Approved, Rejected},
//	    Approved:   {Processing},
//	    Processing: {Completed, Failed},
//	    Rejected:   nil,
//	    Completed:  nil,
//	    Failed:     nil,
//	}
//
//	if !transitions.Allows(r.status, Approved) {
//	    return newError(KindInvalidState, ...)
//	}
type Transitions[S comparable] map[S][]S

// Allows reports whether from -> to is a declared edge.
func (t Transitions[S]) Allows(from, to S) bool {
	return slices.Contains(t[from], to)
}

// Targets returns a copy of the statuses reachable from the given one.
func (t Transitions[S]) Targets(from S) []S {
	return slices.Clone(t[from])
}

// Knows reports whether the status appears in the table.
func (t Transitions[S]) Knows(s S) bool {
	_, ok := t[s]
	return ok
}

// IsTerminal reports whether a known status has no outgoing edge.
func (t Transitions[S]) IsTerminal(s S) bool {
	return t.Knows(s) && len(t[s]) == 0
}

// StatusIn is the guard helper used by predicates such as IsCancellable.
func StatusIn[S comparable](s S, set ...S) bool {
	return slices.Contains(set, s)
}
