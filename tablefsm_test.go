package tablefsm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/enetx/g"

	. "github.com/enetx/tablefsm"
)

func assertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func assertTrue(t *testing.T, cond bool) {
	t.Helper()
	if !cond {
		t.Fatalf("expected true, got false")
	}
}

func assertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

type printerState uint8

const (
	ready printerState = iota
	printing
	finished
)

type printerInput uint8

const (
	operate printerInput = iota
	removeDocument
)

// newPrinter builds the three-state printer machine used across the tests.
func newPrinter(t *testing.T) *Machine[printerState, printerInput] {
	t.Helper()

	m := New[printerState, printerInput](3, 2)
	assertNoError(t, m.AddTransitions(
		Transition[printerState, printerInput]{From: ready, Input: operate, To: printing},
		Transition[printerState, printerInput]{From: printing, Input: operate, To: finished},
		Transition[printerState, printerInput]{From: finished, Input: removeDocument, To: ready},
	))

	return m
}

// watch connects recording observers to every signal of the machine and
// returns the shared event log.
func watch(m *Machine[printerState, printerInput]) *g.Slice[g.String] {
	events := &g.Slice[g.String]{}

	names := g.SliceOf[g.String]("ready", "printing", "finished")
	for s := range m.StateCount() {
		name := names[s]
		m.Entered(printerState(s)).Connect(func() { events.Push("entered " + name) })
		m.Exited(printerState(s)).Connect(func() { events.Push("exited " + name) })
	}

	return events
}

func TestMachine_DefaultInert(t *testing.T) {
	m := New[printerState, printerInput](3, 2)
	events := watch(m)

	assertEqual(t, m.Current(), ready)

	for i := range m.InputCount() {
		m.Step(printerInput(i))
		assertEqual(t, m.Current(), ready)
	}

	assertEqual(t, events.Len(), 0)
}

func TestMachine_DefaultTableCompleteEverywhere(t *testing.T) {
	m := New[printerState, printerInput](3, 2)
	events := watch(m)

	// Place the machine in each state via snapshot restore, then verify every
	// input is a silent self-loop there.
	for s := range m.StateCount() {
		assertNoError(t, m.UnmarshalJSON([]byte(fmt.Sprintf(`{"current": %d}`, s))))

		for i := range m.InputCount() {
			m.Step(printerInput(i))
			assertEqual(t, m.Current(), printerState(s))
		}
	}

	assertEqual(t, events.Len(), 0)
}

func TestMachine_PrinterScenario(t *testing.T) {
	m := newPrinter(t)
	events := watch(m)

	m.Step(operate)
	assertEqual(t, m.Current(), printing)

	m.Step(operate)
	assertEqual(t, m.Current(), finished)

	m.Step(removeDocument)
	assertEqual(t, m.Current(), ready)

	// No transition for (ready, removeDocument): silent no-op.
	m.Step(removeDocument)
	assertEqual(t, m.Current(), ready)

	want := g.SliceOf[g.String](
		"exited ready", "entered printing",
		"exited printing", "entered finished",
		"exited finished", "entered ready",
	)
	if !events.Eq(want) {
		t.Fatalf("expected events %v, got %v", want, *events)
	}
}

func TestMachine_ExitObserverSeesOldState(t *testing.T) {
	m := newPrinter(t)

	var exitSaw, enterSaw printerState
	m.Exited(ready).Connect(func() { exitSaw = m.Current() })
	m.Entered(printing).Connect(func() { enterSaw = m.Current() })

	m.Step(operate)

	assertEqual(t, exitSaw, ready)
	assertEqual(t, enterSaw, printing)
}

func TestMachine_ExplicitSelfLoopIsSilent(t *testing.T) {
	m := New[printerState, printerInput](3, 2)
	assertNoError(t, m.AddTransitions(
		Transition[printerState, printerInput]{From: ready, Input: operate, To: ready},
	))

	events := watch(m)

	// Explicit self-loop and unconfigured default behave identically.
	m.Step(operate)
	m.Step(removeDocument)

	assertEqual(t, m.Current(), ready)
	assertEqual(t, events.Len(), 0)
}

func TestMachine_LastWriteWins(t *testing.T) {
	m := New[printerState, printerInput](3, 2)
	assertNoError(t, m.AddTransitions(
		Transition[printerState, printerInput]{From: ready, Input: operate, To: printing},
		Transition[printerState, printerInput]{From: ready, Input: operate, To: finished},
	))

	m.Step(operate)
	assertEqual(t, m.Current(), finished)
}

func TestMachine_ConfigurationOrderIndependent(t *testing.T) {
	forward := []Transition[printerState, printerInput]{
		{From: ready, Input: operate, To: printing},
		{From: printing, Input: operate, To: finished},
		{From: finished, Input: removeDocument, To: ready},
	}

	a := New[printerState, printerInput](3, 2)
	assertNoError(t, a.AddTransitions(forward...))

	b := New[printerState, printerInput](3, 2)
	assertNoError(t, b.AddTransitions(forward[2], forward[0]))
	assertNoError(t, b.AddTransitions(forward[1]))

	// With no duplicate (from, input) keys the net table is identical.
	assertEqual(t, a.ToDOT(), b.ToDOT())
}

func TestMachine_LaterCallsKeepOtherCells(t *testing.T) {
	m := New[printerState, printerInput](3, 2)
	assertNoError(t, m.AddTransitions(
		Transition[printerState, printerInput]{From: ready, Input: operate, To: printing},
	))
	assertNoError(t, m.AddTransitions(
		Transition[printerState, printerInput]{From: printing, Input: operate, To: finished},
	))

	m.Step(operate)
	m.Step(operate)
	assertEqual(t, m.Current(), finished)
}

func TestMachine_OutOfRangeConfigRejected(t *testing.T) {
	m := New[printerState, printerInput](3, 2)

	err := m.AddTransitions(
		Transition[printerState, printerInput]{From: ready, Input: operate, To: printing},
		Transition[printerState, printerInput]{From: 3, Input: operate, To: ready},
		Transition[printerState, printerInput]{From: ready, Input: 2, To: ready},
		Transition[printerState, printerInput]{From: ready, Input: operate, To: 7},
	)
	assertError(t, err)

	var oor *ErrOutOfRange[printerState, printerInput]
	assertTrue(t, errors.As(err, &oor))
	assertEqual(t, oor.StateCount, 3)
	assertEqual(t, oor.InputCount, 2)
	assertEqual(t, oor.Bad.Len(), 3)

	// Validation happens before any cell is written, so the valid first
	// entry was not applied either.
	events := watch(m)
	m.Step(operate)
	assertEqual(t, m.Current(), ready)
	assertEqual(t, events.Len(), 0)
}

func TestMachine_StepChaining(t *testing.T) {
	m := newPrinter(t)

	m.Step(operate).Step(operate).Step(removeDocument)
	assertEqual(t, m.Current(), ready)
}

func TestMachine_ReentrantStep(t *testing.T) {
	m := newPrinter(t)
	events := watch(m)

	// Stepping again from inside an observer nests depth-first.
	m.Entered(printing).Connect(func() { m.Step(operate) })

	m.Step(operate)
	assertEqual(t, m.Current(), finished)

	want := g.SliceOf[g.String](
		"exited ready", "entered printing",
		"exited printing", "entered finished",
	)
	if !events.Eq(want) {
		t.Fatalf("expected events %v, got %v", want, *events)
	}
}

func TestMachine_Reset(t *testing.T) {
	m := newPrinter(t)

	m.Step(operate)
	assertEqual(t, m.Current(), printing)

	events := watch(m)
	m.Reset()

	assertEqual(t, m.Current(), ready)
	assertEqual(t, events.Len(), 0)

	// The table survives a reset.
	m.Step(operate)
	assertEqual(t, m.Current(), printing)
}

func TestMachine_Counts(t *testing.T) {
	m := New[printerState, printerInput](3, 2)

	assertEqual(t, m.StateCount(), 3)
	assertEqual(t, m.InputCount(), 2)
}

func TestMachine_StepOutOfRangePanics(t *testing.T) {
	m := newPrinter(t)
	assertPanics(t, func() { m.Step(5) })
}

func TestMachine_SignalAccessorOutOfRangePanics(t *testing.T) {
	m := newPrinter(t)
	assertPanics(t, func() { m.Entered(3) })
	assertPanics(t, func() { m.Exited(9) })
}

func TestMachine_NewRequiresPositiveCounts(t *testing.T) {
	assertPanics(t, func() { New[printerState, printerInput](0, 2) })
	assertPanics(t, func() { New[printerState, printerInput](3, 0) })
}
