package tablefsm

import (
	"fmt"

	"github.com/enetx/g"
	"gopkg.in/yaml.v3"
)

type (
	// Definition is a declarative, name-based description of a machine,
	// loadable from YAML. States and inputs are listed in ordinal order, so
	// declaration position is the ordinal used by the built machine.
	Definition struct {
		States      []string `yaml:"states"      json:"states"`
		Inputs      []string `yaml:"inputs"      json:"inputs"`
		Transitions []Rule   `yaml:"transitions" json:"transitions"`
	}

	// Rule names one transition of a Definition.
	Rule struct {
		From  string `yaml:"from"  json:"from"`
		Input string `yaml:"input" json:"input"`
		To    string `yaml:"to"    json:"to"`
	}
)

// ParseDefinition unmarshals a YAML definition and validates it.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal machine definition: %w", err)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

// Validate checks the definition for errors: empty universes, blank or
// duplicate names, and transitions referencing undefined states or inputs.
func (d *Definition) Validate() error {
	if len(d.States) == 0 {
		return fmt.Errorf("definition declares no states")
	}

	if len(d.Inputs) == 0 {
		return fmt.Errorf("definition declares no inputs")
	}

	states := g.NewSet[g.String]()
	for _, s := range d.States {
		if s == "" {
			return fmt.Errorf("definition contains a state with an empty name")
		}

		if states.Contains(g.String(s)) {
			return fmt.Errorf("duplicate state %q", s)
		}

		states.Insert(g.String(s))
	}

	inputs := g.NewSet[g.String]()
	for _, in := range d.Inputs {
		if in == "" {
			return fmt.Errorf("definition contains an input with an empty name")
		}

		if inputs.Contains(g.String(in)) {
			return fmt.Errorf("duplicate input %q", in)
		}

		inputs.Insert(g.String(in))
	}

	for i, r := range d.Transitions {
		if !states.Contains(g.String(r.From)) {
			return fmt.Errorf("transition %d references undefined state %q", i, r.From)
		}

		if !inputs.Contains(g.String(r.Input)) {
			return fmt.Errorf("transition %d references undefined input %q", i, r.Input)
		}

		if !states.Contains(g.String(r.To)) {
			return fmt.Errorf("transition %d references undefined state %q", i, r.To)
		}
	}

	return nil
}

// StateOrdinal returns the ordinal of the named state, or None if the
// definition does not declare it.
func (d *Definition) StateOrdinal(name g.String) g.Option[int] {
	return ordinals(d.States).Get(name)
}

// InputOrdinal returns the ordinal of the named input, or None if the
// definition does not declare it.
func (d *Definition) InputOrdinal(name g.String) g.Option[int] {
	return ordinals(d.Inputs).Get(name)
}

func ordinals(names []string) g.Map[g.String, int] {
	idx := g.NewMap[g.String, int]()
	for i, name := range names {
		idx[g.String(name)] = i
	}

	return idx
}

// Build validates the definition and constructs a machine from it, with
// states and inputs mapped to their declaration ordinals.
func (d *Definition) Build() (*Machine[int, int], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var transitions g.Slice[Transition[int, int]]
	for _, r := range d.Transitions {
		transitions.Push(Transition[int, int]{
			From:  d.StateOrdinal(g.String(r.From)).Unwrap(),
			Input: d.InputOrdinal(g.String(r.Input)).Unwrap(),
			To:    d.StateOrdinal(g.String(r.To)).Unwrap(),
		})
	}

	m := New[int, int](len(d.States), len(d.Inputs))
	if err := m.AddTransitions(transitions...); err != nil {
		return nil, err
	}

	return m, nil
}
