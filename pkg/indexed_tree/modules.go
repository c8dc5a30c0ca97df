package indexed_tree

// detectModules finds gates whose sub-graph shares nothing with the
// rest of the tree and marks them as modules. The test uses DFS visit
// intervals: a sub-graph is independent exactly when every node in it
// is entered and exited within the parent gate's own interval.
func (t *IndexedFaultTree) detectModules(numBasicEvents int) {
	// visitBasics[i] holds the first and last visit time of basic
	// event i across the whole traversal.
	visitBasics := make([][2]int, numBasicEvents+1)

	t.ClearGateVisits()
	top := t.gates[t.topEventIndex]
	t.assignTiming(0, top, visitBasics)

	visitedGates := make(map[int][2]int)
	t.findOriginalModules(top, visitBasics, visitedGates)
}

func (t *IndexedFaultTree) assignTiming(time int, gate *IndexedGate, visitBasics [][2]int) int {
	time++
	if gate.Visit(time) {
		return time - 1 // revisit, interval already assigned
	}
	for _, c := range gate.Children() {
		idx := abs(c)
		if t.IsGateIndex(c) {
			time = t.assignTiming(time, t.gates[idx], visitBasics)
		} else {
			time++
			if visitBasics[idx][0] == 0 {
				visitBasics[idx][0] = time
				visitBasics[idx][1] = time
			} else {
				visitBasics[idx][1] = time
			}
		}
	}
	time++
	gate.Visit(time)
	return time
}

// findOriginalModules classifies the children of each gate by their
// visit intervals. Children fully inside the gate's own interval are
// modular; non-shared basic events and module gates can be grouped
// into a new module gate of their own.
func (t *IndexedFaultTree) findOriginalModules(
	gate *IndexedGate,
	visitBasics [][2]int,
	visitedGates map[int][2]int,
) {
	if _, ok := visitedGates[gate.Index()]; ok {
		return
	}

	enter := gate.EnterTime()
	exit := gate.ExitTime()
	minTime := enter
	maxTime := exit

	var nonShared []int
	var modular []int
	var nonModular []int

	for _, c := range gate.Children() {
		idx := abs(c)
		var lo, hi int
		if t.IsGateIndex(c) {
			child := t.gates[idx]
			t.findOriginalModules(child, visitBasics, visitedGates)
			interval := visitedGates[idx]
			lo, hi = interval[0], interval[1]
			if child.IsModule() && !child.Revisited() {
				nonShared = append(nonShared, c)
			} else if lo > enter && hi < exit {
				modular = append(modular, c)
			} else {
				nonModular = append(nonModular, c)
			}
		} else {
			lo = visitBasics[idx][0]
			hi = visitBasics[idx][1]
			if lo == hi {
				nonShared = append(nonShared, c)
			} else if lo > enter && hi < exit {
				modular = append(modular, c)
			} else {
				nonModular = append(nonModular, c)
			}
		}
		if lo < minTime {
			minTime = lo
		}
		if hi > maxTime {
			maxTime = hi
		}
	}

	if !gate.IsModule() && minTime == enter && maxTime == exit {
		gate.TurnModule()
	}

	if len(nonShared) > 1 {
		t.createNewModule(gate, nonShared)
	}

	t.filterModularChildren(&modular, &nonModular, visitBasics, visitedGates)
	if len(modular) > 0 {
		t.createNewModule(gate, modular)
	}

	if last := gate.LastVisit(); last > maxTime {
		maxTime = last
	}
	visitedGates[gate.Index()] = [2]int{minTime, maxTime}
}

// createNewModule groups the given children of the gate under a fresh
// module gate of the same type. When the group is the whole child set
// the gate itself becomes the module.
func (t *IndexedFaultTree) createNewModule(gate *IndexedGate, children []int) {
	if len(children) == len(gate.Children()) {
		gate.TurnModule()
		return
	}
	module := NewIndexedGate(t.nextGateIndex(), gate.Type())
	module.TurnModule()
	for _, c := range children {
		gate.EraseChild(c)
		module.InitiateWithChild(c)
	}
	t.AddGate(module)
	gate.AddChild(module.Index())
}

// filterModularChildren demotes modular children whose visit interval
// overlaps a non-modular child's interval, repeating until stable.
func (t *IndexedFaultTree) filterModularChildren(
	modular *[]int,
	nonModular *[]int,
	visitBasics [][2]int,
	visitedGates map[int][2]int,
) {
	interval := func(c int) (int, int) {
		idx := abs(c)
		if idx >= t.gateIndex {
			iv := visitedGates[idx]
			return iv[0], iv[1]
		}
		return visitBasics[idx][0], visitBasics[idx][1]
	}

	for {
		var kept, demoted []int
		for _, m := range *modular {
			lo, hi := interval(m)
			overlaps := false
			for _, n := range *nonModular {
				nLo, nHi := interval(n)
				upper := hi
				if nHi < upper {
					upper = nHi
				}
				lower := lo
				if nLo > lower {
					lower = nLo
				}
				if lower <= upper {
					overlaps = true
					break
				}
			}
			if overlaps {
				demoted = append(demoted, m)
			} else {
				kept = append(kept, m)
			}
		}
		*modular = kept
		if len(demoted) == 0 {
			return
		}
		*nonModular = append(*nonModular, demoted...)
	}
}
