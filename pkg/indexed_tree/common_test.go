package indexed_tree

import "testing"

// gateSpec is a compact description of one gate for test graphs.
type gateSpec struct {
	gtype    GateType
	vote     int
	children []int
}

// buildGraph constructs an indexed graph directly from gate specs.
// Basic events occupy [1, top); gate indices start at top.
func buildGraph(t *testing.T, top int, specs map[int]gateSpec) *IndexedFaultTree {
	t.Helper()
	tree := NewIndexedFaultTree(top)
	for index, s := range specs {
		gate := NewIndexedGate(index, s.gtype)
		if s.vote > 0 {
			gate.SetVoteNumber(s.vote)
		}
		for _, c := range s.children {
			gate.InitiateWithChild(c)
		}
		tree.AddGate(gate)
	}
	return tree
}

// analyze runs the full pipeline on a directly built graph.
func analyze(
	t *testing.T,
	top int,
	numBasic int,
	specs map[int]gateSpec,
	trueHouse, falseHouse map[int]bool,
	limitOrder int,
) [][]int {
	t.Helper()
	tree := buildGraph(t, top, specs)
	if err := tree.PropagateConstants(trueHouse, falseHouse); err != nil {
		t.Fatalf("constant propagation failed: %v", err)
	}
	if err := tree.Preprocess(numBasic); err != nil {
		t.Fatalf("preprocessing failed: %v", err)
	}
	sets, err := tree.FindMinimalCutSets(limitOrder)
	if err != nil {
		t.Fatalf("cut set generation failed: %v", err)
	}
	return sets
}
