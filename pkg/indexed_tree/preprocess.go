package indexed_tree

// Preprocess rewrites the graph into a form ready for cut set
// generation: only AND and OR gates remain, complements sit on basic
// events alone, degenerate gates are folded away, and independent
// sub-graphs are marked as modules. The passes run in a fixed order;
// the simplification trio iterates to a fixed point.
func (t *IndexedFaultTree) Preprocess(numBasicEvents int) error {
	if err := t.Validate(numBasicEvents); err != nil {
		return err
	}

	top := t.gates[t.topEventIndex]
	if top.State() != NormalState {
		return nil
	}

	t.normalizeGates()
	t.debug("gates normalized", "top", t.topEventIndex)

	top = t.gates[t.topEventIndex]
	if t.topEventSign < 0 {
		top.SetType(complementType(top.Type()))
		top.InvertChildren()
		t.topEventSign = 1
	}

	t.ClearGateVisits()
	top.Visit(1)
	t.propagateComplements(top, make(map[int]int))
	t.debug("complements propagated")

	t.ClearGateVisits()
	if _, err := t.removeConstGates(top); err != nil {
		return err
	}

	for {
		changed := false

		t.ClearGateVisits()
		if t.removeNullGates(top) {
			changed = true
		}

		t.ClearGateVisits()
		if t.joinGates(top) {
			changed = true
		}

		t.ClearGateVisits()
		constChanged, err := t.removeConstGates(top)
		if err != nil {
			return err
		}
		if constChanged {
			changed = true
		}

		if !changed {
			break
		}
	}
	t.debug("graph simplified", "top_state", int(top.State()))

	if top.State() != NormalState || len(top.Children()) == 0 {
		return nil
	}

	t.detectModules(numBasicEvents)
	t.debug("modules detected")
	return nil
}
