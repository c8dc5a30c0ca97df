package indexed_tree

// PropagateConstants fixes house events to their boolean constants and
// folds the result through the graph. Passing two empty sets is a
// no-op. The pass is idempotent: constant children are erased as they
// are processed, so a second run finds nothing to fold.
func (t *IndexedFaultTree) PropagateConstants(trueHouse, falseHouse map[int]bool) error {
	if len(trueHouse) == 0 && len(falseHouse) == 0 {
		return nil
	}
	t.ClearGateVisits()
	err := t.propagateConstants(t.gates[t.topEventIndex], trueHouse, falseHouse)
	t.debug("constant propagation done", "top_state", int(t.gates[t.topEventIndex].State()))
	return err
}

func (t *IndexedFaultTree) propagateConstants(
	gate *IndexedGate,
	trueHouse, falseHouse map[int]bool,
) error {
	if gate.Visited() {
		return nil
	}
	gate.Visit(1)

	var toErase []int
	children := append([]int(nil), gate.Children()...)
	for _, c := range children {
		if t.IsGateIndex(c) {
			child := t.gates[abs(c)]
			if err := t.propagateConstants(child, trueHouse, falseHouse); err != nil {
				return err
			}
			var state bool
			switch child.State() {
			case NullState:
				state = false
			case UnityState:
				state = true
			default:
				continue
			}
			if c < 0 {
				state = !state
			}
			constant, err := t.processConstantChild(gate, c, state, &toErase)
			if err != nil {
				return err
			}
			if constant {
				return nil
			}
		} else {
			idx := abs(c)
			var state bool
			switch {
			case falseHouse[idx]:
				state = false
			case trueHouse[idx]:
				state = true
			default:
				continue
			}
			if c < 0 {
				state = !state
			}
			constant, err := t.processConstantChild(gate, c, state, &toErase)
			if err != nil {
				return err
			}
			if constant {
				return nil
			}
		}
	}
	t.removeChildren(gate, toErase)
	return nil
}

// processConstantChild folds one constant child into the gate. It
// either turns the whole gate into a constant, reducing the return to
// true, or schedules the child for erasure and possibly retypes the
// gate. ATLEAST gates must be normalized away before a complement
// constant child can reach them.
func (t *IndexedFaultTree) processConstantChild(
	gate *IndexedGate,
	child int,
	state bool,
	toErase *[]int,
) (bool, error) {
	if !state { // constant false child
		switch gate.Type() {
		case NorGate, XorGate, OrGate:
			*toErase = append(*toErase, child)
			return false, nil
		case NullGate, AndGate:
			gate.Nullify()
		case NandGate, NotGate:
			gate.MakeUnity()
		case AtleastGate:
			*toErase = append(*toErase, child)
			if gate.VoteNumber() == len(gate.Children())-len(*toErase) {
				gate.SetType(AndGate)
			}
			return false, nil
		}
		return true, nil
	}

	// constant true child
	switch gate.Type() {
	case NullGate, OrGate:
		gate.MakeUnity()
	case NandGate, AndGate:
		*toErase = append(*toErase, child)
		return false, nil
	case NorGate, NotGate:
		gate.Nullify()
	case XorGate:
		if len(*toErase) == 1 {
			// The other child is already known false.
			gate.MakeUnity()
		} else {
			gate.SetType(NotGate)
			*toErase = append(*toErase, child)
			return false, nil
		}
	case AtleastGate:
		if child < 0 {
			return false, &StructuralError{
				Index:  gate.Index(),
				Reason: "complement constant child on an atleast gate",
			}
		}
		k := gate.VoteNumber() - 1
		if k == 1 {
			gate.SetType(OrGate)
		} else {
			gate.SetVoteNumber(k)
		}
		*toErase = append(*toErase, child)
		return false, nil
	}
	return true, nil
}

// removeChildren erases the scheduled children and handles the gate
// shapes that degenerate as a result.
func (t *IndexedFaultTree) removeChildren(gate *IndexedGate, toErase []int) {
	if len(toErase) == 0 {
		return
	}
	for _, c := range toErase {
		gate.EraseChild(c)
	}
	switch len(gate.Children()) {
	case 0:
		switch gate.Type() {
		case NandGate, XorGate, OrGate:
			gate.Nullify()
		case NorGate, AndGate:
			gate.MakeUnity()
		}
	case 1:
		switch gate.Type() {
		case XorGate, OrGate, AndGate:
			gate.SetType(NullGate)
		case NorGate, NandGate:
			gate.SetType(NotGate)
		}
	}
}
