package tablefsm

import (
	"sync"

	"github.com/enetx/g"

	"github.com/enetx/tablefsm/signal"
)

// Enum constrains state and input types to integer kinds. Values are expected
// to be consecutive ordinals starting from 0, the way Go enums declared with
// iota come out.
type Enum interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type (
	// Transition describes a single cell of the transition table: on Input,
	// the machine moves from From to To. Transitions are plain values; once
	// applied only the resulting table cell persists.
	Transition[S, I Enum] struct {
		From  S
		Input I
		To    S
	}

	// Machine is a dense table-driven finite state machine over the closed
	// universes [0,states) and [0,inputs). Every (state, input) cell is
	// defined at all times; unconfigured cells are identity self-loops, so an
	// unconfigured machine accepts every input and never moves.
	//
	// Each state owns two distinct signals, one per direction. Observers
	// connect to Entered(s) or Exited(s) and are notified synchronously from
	// Step whenever the current state actually changes.
	Machine[S, I Enum] struct {
		states  int
		inputs  int
		table   g.Slice[S]
		current S
		entered g.Slice[*signal.Signal]
		exited  g.Slice[*signal.Signal]
	}

	// SyncMachine is a thread-safe wrapper around a Machine.
	// It protects all state-mutating and state-reading operations with a
	// sync.RWMutex, making it safe for use across multiple goroutines. The
	// whole Step sequence (lookup, exit notification, state change, enter
	// notification) runs as one critical section.
	SyncMachine[S, I Enum] struct {
		machine *Machine[S, I]
		mu      sync.RWMutex
	}
)
