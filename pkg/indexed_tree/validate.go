package indexed_tree

import "fmt"

// Validate checks the gate graph for structural defects before any
// transformation: cycles, dangling references, bad arities, zero or
// self-referencing children. It also rebuilds the parent back
// references returned by Parents; the preprocessing passes do not read
// them. Basic event indices must fall in [1, numBasicEvents].
func (t *IndexedFaultTree) Validate(numBasicEvents int) error {
	for _, g := range t.gates {
		g.EraseParents()
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	colors := make(map[int]int, len(t.gates))

	var walk func(index int) error
	walk = func(index int) error {
		gate := t.gates[index]
		if gate == nil {
			return &StructuralError{Index: index, Reason: "dangling gate reference"}
		}
		switch colors[index] {
		case gray:
			return &StructuralError{Index: index, Reason: "cycle detected"}
		case black:
			return nil
		}
		colors[index] = gray

		if gate.State() == NormalState {
			if err := t.validateArity(gate); err != nil {
				return err
			}
		}

		seen := make(map[int]bool, len(gate.Children()))
		for _, c := range gate.Children() {
			if c == 0 {
				return &StructuralError{Index: index, Reason: "zero child index"}
			}
			a := abs(c)
			if a == index {
				return &StructuralError{Index: index, Reason: "self-referencing child"}
			}
			if seen[a] {
				return &StructuralError{Index: index, Reason: fmt.Sprintf("child %d appears twice", a)}
			}
			seen[a] = true

			if t.IsGateIndex(c) {
				if err := walk(a); err != nil {
					return err
				}
				t.gates[a].AddParent(index)
			} else if a > numBasicEvents {
				return &StructuralError{Index: index, Reason: fmt.Sprintf("basic event %d out of range", a)}
			}
		}
		colors[index] = black
		return nil
	}

	return walk(t.topEventIndex)
}

func (t *IndexedFaultTree) validateArity(gate *IndexedGate) error {
	n := len(gate.Children())
	switch gate.Type() {
	case AndGate, OrGate, NandGate, NorGate:
		if n < 2 {
			return &StructuralError{Index: gate.Index(), Reason: "gate requires at least two children"}
		}
	case XorGate:
		if n != 2 {
			return &StructuralError{Index: gate.Index(), Reason: "xor gate requires exactly two children"}
		}
	case NotGate, NullGate:
		if n != 1 {
			return &StructuralError{Index: gate.Index(), Reason: "gate requires exactly one child"}
		}
	case AtleastGate:
		if gate.VoteNumber() < 1 || gate.VoteNumber() > n {
			return &StructuralError{Index: gate.Index(), Reason: "invalid vote number"}
		}
	}
	return nil
}
