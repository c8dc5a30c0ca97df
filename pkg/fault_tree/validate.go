package fault_tree

import (
	"fmt"
	"sort"

	"github.com/jtomasevic/cutset/pkg/indexed_tree"
)

// Validate checks every gate formula: the operator must be known, the
// argument count must fit the operator, and every referenced name must
// be a registered event.
func (ft *FaultTree) Validate() error {
	names := make([]string, 0, len(ft.gates))
	for name := range ft.gates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ft.validateFormula(name, ft.gates[name].Formula); err != nil {
			return err
		}
	}
	return nil
}

func (ft *FaultTree) validateFormula(gateName string, formula *indexed_tree.Formula) error {
	if formula == nil {
		return fmt.Errorf("gate %q has no formula", gateName)
	}
	n := len(formula.EventArgs) + len(formula.FormulaArgs)

	switch formula.Type {
	case "and", "or", "nand", "nor":
		if n < 2 {
			return fmt.Errorf("gate %q: %s formula requires at least two arguments, got %d",
				gateName, formula.Type, n)
		}
	case "xor":
		if n != 2 {
			return fmt.Errorf("gate %q: xor formula requires exactly two arguments, got %d",
				gateName, n)
		}
	case "not", "null":
		if n != 1 {
			return fmt.Errorf("gate %q: %s formula requires exactly one argument, got %d",
				gateName, formula.Type, n)
		}
	case "atleast":
		if formula.VoteNumber < 1 {
			return fmt.Errorf("gate %q: atleast formula requires a vote number of at least one",
				gateName)
		}
		if n <= formula.VoteNumber {
			return fmt.Errorf("gate %q: atleast formula requires more arguments than its vote number %d",
				gateName, formula.VoteNumber)
		}
	default:
		return fmt.Errorf("gate %q: unknown formula type %q", gateName, formula.Type)
	}

	for _, arg := range formula.EventArgs {
		if !ft.isDefined(arg) {
			return fmt.Errorf("%w: %q in gate %q", ErrUndefinedEvent, arg, gateName)
		}
	}
	for _, sub := range formula.FormulaArgs {
		if err := ft.validateFormula(gateName, sub); err != nil {
			return err
		}
	}
	return nil
}

func (ft *FaultTree) isDefined(name string) bool {
	if ft.isPrimary(name) {
		return true
	}
	_, ok := ft.gates[name]
	return ok
}

func (ft *FaultTree) markReferences(formula *indexed_tree.Formula, referenced map[string]bool) {
	if formula == nil {
		return
	}
	for _, arg := range formula.EventArgs {
		if _, ok := ft.gates[arg]; ok {
			referenced[arg] = true
		}
	}
	for _, sub := range formula.FormulaArgs {
		ft.markReferences(sub, referenced)
	}
}
