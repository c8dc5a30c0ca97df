package fault_tree

import (
	"fmt"

	"github.com/jtomasevic/cutset/pkg/indexed_tree"
)

// Evaluate computes the boolean value of a gate under an assignment:
// the named basic events in trueEvents are true, every other basic
// event is false, and house events keep their fixed constants.
func (ft *FaultTree) Evaluate(gateName string, trueEvents map[string]bool) (bool, error) {
	gate, ok := ft.Gate(gateName)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUndefinedEvent, gateName)
	}
	return ft.evalFormula(gate.Formula, trueEvents)
}

func (ft *FaultTree) evalFormula(formula *indexed_tree.Formula, trueEvents map[string]bool) (bool, error) {
	count := 0
	total := 0

	for _, name := range formula.EventArgs {
		v, err := ft.evalEvent(name, trueEvents)
		if err != nil {
			return false, err
		}
		total++
		if v {
			count++
		}
	}
	for _, sub := range formula.FormulaArgs {
		v, err := ft.evalFormula(sub, trueEvents)
		if err != nil {
			return false, err
		}
		total++
		if v {
			count++
		}
	}

	switch formula.Type {
	case "and":
		return count == total, nil
	case "or":
		return count > 0, nil
	case "nand":
		return count != total, nil
	case "nor":
		return count == 0, nil
	case "xor":
		return count == 1, nil
	case "not":
		return count == 0, nil
	case "null":
		return count == 1, nil
	case "atleast":
		return count >= formula.VoteNumber, nil
	}
	return false, fmt.Errorf("unknown formula type %q", formula.Type)
}

func (ft *FaultTree) evalEvent(name string, trueEvents map[string]bool) (bool, error) {
	if house, ok := ft.houseEvents[name]; ok {
		return house.State, nil
	}
	if _, ok := ft.basicEvents[name]; ok {
		return trueEvents[name], nil
	}
	if gate, ok := ft.gates[name]; ok {
		return ft.evalFormula(gate.Formula, trueEvents)
	}
	return false, fmt.Errorf("%w: %q", ErrUndefinedEvent, name)
}
