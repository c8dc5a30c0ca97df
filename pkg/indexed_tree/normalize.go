package indexed_tree

// normalizeGates rewrites every gate into AND/OR form. The top gate
// gets special treatment: NOT and NULL tops are stripped, NOR and NAND
// tops flip the accumulated top sign. Internal NOR and NAND gates turn
// into OR and AND with their occurrences in parents negated.
func (t *IndexedFaultTree) normalizeGates() {
	top := t.gates[t.topEventIndex]
	switch top.Type() {
	case NorGate:
		t.topEventSign = -t.topEventSign
		top.SetType(OrGate)
	case NandGate:
		t.topEventSign = -t.topEventSign
		top.SetType(AndGate)
	case NotGate, NullGate:
		if top.Type() == NotGate {
			t.topEventSign = -t.topEventSign
		}
		child := top.Children()[0]
		if child < 0 {
			t.topEventSign = -t.topEventSign
			child = -child
		}
		if !t.IsGateIndex(child) {
			// A lone basic event under the top. Keep a real gate above
			// it so the rest of the pipeline has a top gate to work on.
			top.SetType(OrGate)
			break
		}
		delete(t.gates, t.topEventIndex)
		t.topEventIndex = child
		t.normalizeGates()
		return
	}

	t.ClearGateVisits()
	t.notifyParentsOfNegativeGates(t.gates[t.topEventIndex])

	t.ClearGateVisits()
	t.normalizeGate(t.gates[t.topEventIndex])
}

// notifyParentsOfNegativeGates negates, in each parent, the child
// references to NOR and NAND gates so that the later type rewrite
// keeps the boolean value unchanged.
func (t *IndexedFaultTree) notifyParentsOfNegativeGates(gate *IndexedGate) {
	if gate.Visited() {
		return
	}
	gate.Visit(1)

	var toNegate []int
	for _, c := range gate.Children() {
		if !t.IsGateIndex(c) {
			continue
		}
		child := t.gates[abs(c)]
		t.notifyParentsOfNegativeGates(child)
		switch child.Type() {
		case NorGate, NandGate:
			toNegate = append(toNegate, c)
		}
	}
	for _, c := range toNegate {
		gate.SwapChild(c, -c)
	}
}

func (t *IndexedFaultTree) normalizeGate(gate *IndexedGate) {
	if gate.Visited() {
		return
	}
	gate.Visit(1)

	children := append([]int(nil), gate.Children()...)
	for _, c := range children {
		if t.IsGateIndex(c) {
			t.normalizeGate(t.gates[abs(c)])
		}
	}

	switch gate.Type() {
	case NorGate:
		gate.SetType(OrGate)
	case NandGate:
		gate.SetType(AndGate)
	case XorGate:
		t.normalizeXorGate(gate)
	case AtleastGate:
		t.normalizeAtleastGate(gate)
	}
}

// normalizeXorGate turns XOR(a, b) into OR(AND(a, -b), AND(-a, b)).
func (t *IndexedFaultTree) normalizeXorGate(gate *IndexedGate) {
	a := gate.Children()[0]
	b := gate.Children()[1]

	left := NewIndexedGate(t.nextGateIndex(), AndGate)
	left.InitiateWithChild(a)
	left.InitiateWithChild(-b)
	t.AddGate(left)
	left.Visit(1)

	right := NewIndexedGate(t.nextGateIndex(), AndGate)
	right.InitiateWithChild(-a)
	right.InitiateWithChild(b)
	t.AddGate(right)
	right.Visit(1)

	gate.SetType(OrGate)
	gate.EraseAllChildren()
	gate.InitiateWithChild(left.Index())
	gate.InitiateWithChild(right.Index())
}

// normalizeAtleastGate applies the Shannon decomposition on the first
// child x of ATLEAST(k, [x, rest...]):
//
//	OR(AND(x, ATLEAST(k-1, rest)), ATLEAST(k, rest))
//
// The boundary shapes collapse directly: a gate whose vote equals its
// child count is an AND, and a vote of one is an OR.
func (t *IndexedFaultTree) normalizeAtleastGate(gate *IndexedGate) {
	vote := gate.VoteNumber()
	children := gate.Children()

	if vote == len(children) {
		gate.SetType(AndGate)
		return
	}
	if vote == 1 {
		gate.SetType(OrGate)
		return
	}

	x := children[0]
	rest := append([]int(nil), children[1:]...)

	grand := NewIndexedGate(t.nextGateIndex(), AtleastGate)
	grand.SetVoteNumber(vote - 1)
	for _, c := range rest {
		grand.InitiateWithChild(c)
	}
	t.AddGate(grand)

	first := NewIndexedGate(t.nextGateIndex(), AndGate)
	first.InitiateWithChild(x)
	first.InitiateWithChild(grand.Index())
	t.AddGate(first)
	first.Visit(1)

	second := NewIndexedGate(t.nextGateIndex(), AtleastGate)
	second.SetVoteNumber(vote)
	for _, c := range rest {
		second.InitiateWithChild(c)
	}
	t.AddGate(second)

	gate.SetType(OrGate)
	gate.EraseAllChildren()
	gate.InitiateWithChild(first.Index())
	gate.InitiateWithChild(second.Index())

	t.normalizeAtleastGate(grand)
	grand.Visit(1)
	t.normalizeAtleastGate(second)
	second.Visit(1)
}
