package tablefsm

import (
	"fmt"

	"github.com/enetx/g"
)

// ErrOutOfRange is returned when AddTransitions receives one or more
// transitions referencing a state or input outside the machine's declared
// universes. It indicates a programming mistake in the caller's transition
// table, not a runtime condition: the whole list is validated before any cell
// is written, so the table is left untouched, and Bad enumerates every
// offending triple.
type ErrOutOfRange[S, I Enum] struct {
	// StateCount and InputCount are the machine's declared universe sizes.
	StateCount int
	InputCount int
	// Bad holds all transitions from the rejected call that fall outside
	// [0,StateCount) x [0,InputCount), in the order they were supplied.
	Bad g.Slice[Transition[S, I]]
}

func (e *ErrOutOfRange[S, I]) Error() string {
	var triples g.Slice[g.String]
	for t := range e.Bad.Iter() {
		triples.Push(g.Format("(from: {}, input: {}, to: {})", t.From, t.Input, t.To))
	}

	return fmt.Sprintf("tablefsm: transition out of range for %d states and %d inputs: %s",
		e.StateCount, e.InputCount, triples.Join("; "))
}

// ErrUnknownState is returned when a snapshot restore names a state outside
// the machine's declared universe. This prevents the machine from entering an
// invalid, undeclared state.
type ErrUnknownState[S Enum] struct {
	State      S
	StateCount int
}

func (e *ErrUnknownState[S]) Error() string {
	return fmt.Sprintf("tablefsm: unknown state %d for a machine with %d states", e.State, e.StateCount)
}
