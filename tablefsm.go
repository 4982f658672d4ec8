// Package tablefsm implements a dense, table-driven finite state machine over
// closed integer universes of states and inputs. State changes are broadcast
// through per-state entered/exited signals from the
// github.com/enetx/tablefsm/signal package. It is built with types and
// utilities from the github.com/enetx/g library.
package tablefsm

import (
	"fmt"

	"github.com/enetx/g"

	"github.com/enetx/tablefsm/signal"
)

// New creates a machine with the given number of states and inputs. Every
// cell of the transition table starts as a self-loop, so a freshly
// constructed machine accepts any input without moving or notifying. The
// current state starts at ordinal 0. Panics if either count is not positive.
func New[S, I Enum](states, inputs int) *Machine[S, I] {
	if states <= 0 || inputs <= 0 {
		panic(fmt.Sprintf("tablefsm: machine requires at least one state and one input, got %d states and %d inputs",
			states, inputs))
	}

	m := &Machine[S, I]{
		states:  states,
		inputs:  inputs,
		table:   make(g.Slice[S], states*inputs),
		entered: make(g.Slice[*signal.Signal], states),
		exited:  make(g.Slice[*signal.Signal], states),
	}

	for s := range states {
		for i := range inputs {
			m.table[s*inputs+i] = S(s)
		}

		m.entered[s] = signal.New()
		m.exited[s] = signal.New()
	}

	return m
}

// StateCount returns the size of the state universe.
func (m *Machine[S, I]) StateCount() int { return m.states }

// InputCount returns the size of the input universe.
func (m *Machine[S, I]) InputCount() int { return m.inputs }

// Current returns the machine's current state.
func (m *Machine[S, I]) Current() S { return m.current }

// AddTransitions bulk-loads transitions into the table. The whole list is
// range-checked first; if any triple references a state or input outside the
// declared universes, an *ErrOutOfRange enumerating every offending triple is
// returned and the table is left untouched. On success each transition
// overwrites its (from, input) cell in order, so a later duplicate of the
// same cell wins. May be called any number of times; cells not named in the
// call keep their previous value.
func (m *Machine[S, I]) AddTransitions(transitions ...Transition[S, I]) error {
	var bad g.Slice[Transition[S, I]]

	for _, t := range transitions {
		if !m.stateInRange(t.From) || !m.inputInRange(t.Input) || !m.stateInRange(t.To) {
			bad.Push(t)
		}
	}

	if bad.NotEmpty() {
		return &ErrOutOfRange[S, I]{StateCount: m.states, InputCount: m.inputs, Bad: bad}
	}

	for _, t := range transitions {
		m.table[m.at(t.From, t.Input)] = t.To
	}

	return nil
}

// Step feeds one input to the machine and returns the receiver for chaining.
// If the table cell for (current, input) equals the current state, nothing
// happens and nothing is emitted; self-loops and unconfigured cells are
// indistinguishable. Otherwise the old state's Exited signal is emitted, the
// current state is updated, and the new state's Entered signal is emitted, in
// that order and synchronously on the calling goroutine. An observer of the
// exit emission that reads Current re-entrantly still sees the old state.
//
// The input must lie in [0, InputCount); Step panics otherwise, since an
// out-of-range input is a programming error on par with a malformed
// transition table.
func (m *Machine[S, I]) Step(input I) *Machine[S, I] {
	if !m.inputInRange(input) {
		panic(fmt.Sprintf("tablefsm: input %d out of range for a machine with %d inputs", input, m.inputs))
	}

	next := m.table[m.at(m.current, input)]
	if next != m.current {
		m.exited[int(m.current)].Emit()
		m.current = next
		m.entered[int(next)].Emit()
	}

	return m
}

// Entered returns the signal emitted when the machine enters the given state
// from a different one. Each state owns its own distinct signal, so an
// observer binds to exactly one state without any runtime filtering. Panics
// if state is outside [0, StateCount).
func (m *Machine[S, I]) Entered(state S) *signal.Signal {
	m.mustState(state)
	return m.entered[int(state)]
}

// Exited returns the signal emitted when the machine leaves the given state
// for a different one, right before the corresponding Entered emission.
// Panics if state is outside [0, StateCount).
func (m *Machine[S, I]) Exited(state S) *signal.Signal {
	m.mustState(state)
	return m.exited[int(state)]
}

// Reset returns the machine to state ordinal 0 without emitting anything.
// The transition table is left as configured.
func (m *Machine[S, I]) Reset() {
	var zero S
	m.current = zero
}

func (m *Machine[S, I]) at(state S, input I) int {
	return int(state)*m.inputs + int(input)
}

func (m *Machine[S, I]) stateInRange(state S) bool {
	v := int64(state)
	return v >= 0 && v < int64(m.states)
}

func (m *Machine[S, I]) inputInRange(input I) bool {
	v := int64(input)
	return v >= 0 && v < int64(m.inputs)
}

func (m *Machine[S, I]) mustState(state S) {
	if !m.stateInRange(state) {
		panic(fmt.Sprintf("tablefsm: state %d out of range for a machine with %d states", state, m.states))
	}
}
