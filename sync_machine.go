package tablefsm

import (
	"github.com/enetx/g"

	"github.com/enetx/tablefsm/signal"
)

// NewSync creates a thread-safe machine with the given number of states and
// inputs. The whole Step sequence (table lookup, exit emission, state change,
// enter emission) runs under one lock, so observers never see a partially
// applied transition from another goroutine. Observers themselves should be
// connected before the machine is shared, since Signal registration is not
// synchronized.
func NewSync[S, I Enum](states, inputs int) *SyncMachine[S, I] {
	return &SyncMachine[S, I]{machine: New[S, I](states, inputs)}
}

// AddTransitions is the thread-safe version of Machine.AddTransitions.
func (sm *SyncMachine[S, I]) AddTransitions(transitions ...Transition[S, I]) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.machine.AddTransitions(transitions...)
}

// Step is the thread-safe version of Machine.Step. It atomically performs the
// lookup, both emissions and the state change, and returns the receiver for
// chaining.
func (sm *SyncMachine[S, I]) Step(input I) *SyncMachine[S, I] {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.machine.Step(input)

	return sm
}

// Current is the thread-safe version of Machine.Current.
func (sm *SyncMachine[S, I]) Current() S {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.machine.Current()
}

// StateCount returns the size of the state universe.
func (sm *SyncMachine[S, I]) StateCount() int { return sm.machine.StateCount() }

// InputCount returns the size of the input universe.
func (sm *SyncMachine[S, I]) InputCount() int { return sm.machine.InputCount() }

// Entered is the thread-safe version of Machine.Entered.
func (sm *SyncMachine[S, I]) Entered(state S) *signal.Signal {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.machine.Entered(state)
}

// Exited is the thread-safe version of Machine.Exited.
func (sm *SyncMachine[S, I]) Exited(state S) *signal.Signal {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.machine.Exited(state)
}

// Reset is the thread-safe version of Machine.Reset.
func (sm *SyncMachine[S, I]) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.machine.Reset()
}

// ToDOT is the thread-safe version of Machine.ToDOT.
func (sm *SyncMachine[S, I]) ToDOT() g.String {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.machine.ToDOT()
}

// MarshalJSON implements the json.Marshaler interface for thread-safe
// serialization of the machine's position.
func (sm *SyncMachine[S, I]) MarshalJSON() ([]byte, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.machine.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for thread-safe
// restoration of the machine's position.
func (sm *SyncMachine[S, I]) UnmarshalJSON(data []byte) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.machine.UnmarshalJSON(data)
}
