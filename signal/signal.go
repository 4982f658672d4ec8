// Package signal provides the payload-free notification primitive the state
// machine broadcasts through. A Signal is a distinct identity observers
// connect to; emitting it synchronously invokes every connected observer in
// registration order.
package signal

import "github.com/enetx/g"

type (
	// Signal is a single notification identity with an ordered list of
	// connected observers. The zero value is ready to use.
	Signal struct {
		next  uint64
		slots g.Slice[slot]
	}

	// Connection is a handle to one observer's registration on a Signal.
	// Disconnecting an already-disconnected Connection is a no-op.
	Connection struct {
		signal *Signal
		id     uint64
	}

	slot struct {
		id uint64
		fn func()
	}
)

// New creates a new Signal with no observers.
func New() *Signal { return &Signal{} }

// Connect registers an observer and returns its Connection handle.
func (s *Signal) Connect(fn func()) Connection {
	s.next++
	s.slots.Push(slot{id: s.next, fn: fn})

	return Connection{signal: s, id: s.next}
}

// Emit synchronously invokes all currently connected observers in the order
// they were connected. Delivery iterates a snapshot, so an observer may
// connect or disconnect (including itself) during delivery without affecting
// the emission in flight.
func (s *Signal) Emit() {
	for sl := range s.slots.Clone().Iter() {
		sl.fn()
	}
}

// Len returns the number of connected observers.
func (s *Signal) Len() int { return int(s.slots.Len()) }

// Disconnect removes the observer from its Signal. Safe to call on the zero
// Connection and safe to call more than once.
func (c Connection) Disconnect() {
	if c.signal == nil {
		return
	}

	c.signal.slots = c.signal.slots.
		Iter().
		Exclude(func(sl slot) bool { return sl.id == c.id }).
		Collect()
}
