package tablefsm

import (
	"encoding/json"
	"fmt"
)

// Snapshot is a serializable representation of a machine's position. The
// transition table and connected observers are configuration, not state, so a
// snapshot carries only the current state and is restored into a machine
// configured the same way it was taken from.
type Snapshot[S Enum] struct {
	Current S `json:"current"`
}

// MarshalJSON implements the json.Marshaler interface.
func (m *Machine[S, I]) MarshalJSON() ([]byte, error) {
	return json.Marshal(Snapshot[S]{Current: m.current})
}

// UnmarshalJSON implements the json.Unmarshaler interface. Restoring sets the
// current state without emitting any signals. A snapshot naming a state
// outside the machine's universe is rejected with *ErrUnknownState.
func (m *Machine[S, I]) UnmarshalJSON(data []byte) error {
	var snap Snapshot[S]
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to unmarshal machine snapshot: %w", err)
	}

	if !m.stateInRange(snap.Current) {
		return &ErrUnknownState[S]{State: snap.Current, StateCount: m.states}
	}

	m.current = snap.Current

	return nil
}
