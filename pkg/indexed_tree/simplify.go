package indexed_tree

// removeConstGates folds children whose gates became constant during
// earlier passes. Returns true when anything changed.
func (t *IndexedFaultTree) removeConstGates(gate *IndexedGate) (bool, error) {
	if gate.Visited() {
		return false, nil
	}
	gate.Visit(1)

	if gate.State() != NormalState {
		return false, nil
	}

	changed := false
	var toErase []int
	children := append([]int(nil), gate.Children()...)
	for _, c := range children {
		if !t.IsGateIndex(c) {
			continue
		}
		child := t.gates[abs(c)]
		childChanged, err := t.removeConstGates(child)
		if err != nil {
			return false, err
		}
		changed = changed || childChanged

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
			return false, err
		}
		if constant {
			return true, nil
		}
		changed = true
	}
	t.removeChildren(gate, toErase)
	return changed || len(toErase) > 0, nil
}

// removeNullGates splices out pass-through gates, composing the sign
// of the reference with the sign of the sole child.
func (t *IndexedFaultTree) removeNullGates(gate *IndexedGate) bool {
	if gate.Visited() {
		return false
	}
	gate.Visit(1)

	changed := false
	var nulls []int
	for _, c := range gate.Children() {
		if !t.IsGateIndex(c) {
			continue
		}
		child := t.gates[abs(c)]
		if t.removeNullGates(child) {
			changed = true
		}
		if child.Type() == NullGate && child.State() == NormalState {
			nulls = append(nulls, c)
		}
	}
	for _, c := range nulls {
		child := t.gates[abs(c)]
		grand := child.Children()[0]
		if c < 0 {
			grand = -grand
		}
		changed = true
		if !gate.SwapChild(c, grand) {
			return true
		}
	}
	return changed
}

// joinGates merges same-type AND and OR child gates into their parent.
// Complemented children and modules stay untouched.
func (t *IndexedFaultTree) joinGates(gate *IndexedGate) bool {
	if gate.Visited() {
		return false
	}
	gate.Visit(1)

	changed := false
	var toJoin []*IndexedGate
	for _, c := range gate.Children() {
		if c < 0 || !t.IsGateIndex(c) {
			continue
		}
		child := t.gates[c]
		if t.joinGates(child) {
			changed = true
		}
		if child.IsModule() {
			continue
		}
		if child.Type() == gate.Type() && (gate.Type() == AndGate || gate.Type() == OrGate) {
			toJoin = append(toJoin, child)
		}
	}
	for _, child := range toJoin {
		changed = true
		if !gate.JoinGate(child) {
			return true
		}
	}
	return changed
}
