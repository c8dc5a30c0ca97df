package indexed_tree

// propagateComplements pushes complements of gates down to the basic
// events with De Morgan's law. Each complemented gate is rewritten
// once into a clone with the opposite type and inverted children; the
// clone is memoized in gateComplements so shared complements stay
// shared.
func (t *IndexedFaultTree) propagateComplements(
	gate *IndexedGate,
	gateComplements map[int]int,
) {
	// Child processing can splice and swap children, so the loop
	// restarts from the beginning after every mutation.
	for i := 0; i < len(gate.Children()); i++ {
		c := gate.Children()[i]
		if !t.IsGateIndex(c) {
			continue
		}
		child := t.gates[abs(c)]

		if child.Type() == NotGate || child.Type() == NullGate {
			sign := 1
			if child.Type() == NotGate {
				sign = -1
			}
			if c < 0 {
				sign = -sign
			}
			if !gate.SwapChild(c, sign*child.Children()[0]) {
				return
			}
			i = -1
			continue
		}

		if c < 0 {
			cloneIndex, ok := gateComplements[-c]
			if !ok {
				clone := NewIndexedGate(t.nextGateIndex(), complementType(child.Type()))
				for _, cc := range child.Children() {
					clone.InitiateWithChild(cc)
				}
				clone.InvertChildren()
				t.AddGate(clone)
				cloneIndex = clone.Index()
				gateComplements[-c] = cloneIndex
				clone.Visit(1)
				if !gate.SwapChild(c, cloneIndex) {
					return
				}
				t.propagateComplements(clone, gateComplements)
			} else if !gate.SwapChild(c, cloneIndex) {
				return
			}
			i = -1
			continue
		}

		if !child.Visited() {
			child.Visit(1)
			t.propagateComplements(child, gateComplements)
		}
	}
}

func complementType(gtype GateType) GateType {
	if gtype == AndGate {
		return OrGate
	}
	return AndGate
}
