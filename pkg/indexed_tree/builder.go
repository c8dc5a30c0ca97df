package indexed_tree

import "fmt"

// Formula is the externally supplied description of one gate: an
// operator, named event arguments, and optionally nested anonymous
// sub-formulas. It is the bridge between a symbolic model and the
// indexed graph.
type Formula struct {
	Type        string
	VoteNumber  int
	EventArgs   []string
	FormulaArgs []*Formula
}

var stringToType = map[string]GateType{
	"and":     AndGate,
	"or":      OrGate,
	"atleast": AtleastGate,
	"xor":     XorGate,
	"not":     NotGate,
	"nor":     NorGate,
	"nand":    NandGate,
	"null":    NullGate,
}

// Initiate populates the graph from per-gate formulas. Event argument
// names resolve through nameToIndex; names present in ccfBasicToGates
// resolve to their replacement gate index instead. Nested formulas
// receive fresh gate indices above all named ones.
func (t *IndexedFaultTree) Initiate(
	gateFormulas map[int]*Formula,
	ccfBasicToGates map[string]int,
	nameToIndex map[string]int,
) error {
	highest := t.gateIndex
	for index := range gateFormulas {
		if index > highest {
			highest = index
		}
	}
	t.newGateIndex = highest

	for index, formula := range gateFormulas {
		if err := t.processFormula(index, formula, ccfBasicToGates, nameToIndex); err != nil {
			return err
		}
	}
	return nil
}

func (t *IndexedFaultTree) processFormula(
	index int,
	formula *Formula,
	ccfBasicToGates map[string]int,
	nameToIndex map[string]int,
) error {
	gtype, ok := stringToType[formula.Type]
	if !ok {
		return fmt.Errorf("%w: %q at gate %d", ErrUnknownFormula, formula.Type, index)
	}

	gate := NewIndexedGate(index, gtype)
	if gtype == AtleastGate {
		if formula.VoteNumber < 1 {
			return fmt.Errorf("%w: gate %d", ErrMissingVote, index)
		}
		gate.SetVoteNumber(formula.VoteNumber)
	}
	t.AddGate(gate)

	for _, name := range formula.EventArgs {
		child, ok := ccfBasicToGates[name]
		if !ok {
			child, ok = nameToIndex[name]
			if !ok {
				return fmt.Errorf("%w: %q at gate %d", ErrUnknownEvent, name, index)
			}
		}
		if gate.HasChild(child) {
			return &StructuralError{Index: index, Reason: fmt.Sprintf("duplicate argument %q", name)}
		}
		gate.InitiateWithChild(child)
	}

	for _, sub := range formula.FormulaArgs {
		subIndex := t.nextGateIndex()
		gate.InitiateWithChild(subIndex)
		if err := t.processFormula(subIndex, sub, ccfBasicToGates, nameToIndex); err != nil {
			return err
		}
	}
	return nil
}
