package indexed_tree

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessLeavesOnlyAndOrGates(t *testing.T) {
	// top = NAND(NOR(a, b), XOR(c, d), ATLEAST(2, [a, c, d]))
	tree := buildGraph(t, 5, map[int]gateSpec{
		5: {gtype: NandGate, children: []int{6, 7, 8}},
		6: {gtype: NorGate, children: []int{1, 2}},
		7: {gtype: XorGate, children: []int{3, 4}},
		8: {gtype: AtleastGate, vote: 2, children: []int{1, 3, 4}},
	})

	require.NoError(t, tree.Preprocess(4))

	var check func(index int, seen map[int]bool)
	check = func(index int, seen map[int]bool) {
		if seen[index] {
			return
		}
		seen[index] = true
		gate := tree.Gate(index)
		require.NotNil(t, gate)
		assert.Contains(t, []GateType{AndGate, OrGate}, gate.Type())
		for _, c := range gate.Children() {
			if tree.IsGateIndex(c) {
				// complements must sit on basic events only
				assert.Greater(t, c, 0)
				check(c, seen)
			}
		}
	}
	check(tree.TopEventIndex(), make(map[int]bool))
}

func TestPreprocessStripsNotTop(t *testing.T) {
	// top = NOT(AND(a, b)); the top gate dissolves into its child with
	// an accumulated sign that flips the child into OR(-a, -b).
	tree := buildGraph(t, 3, map[int]gateSpec{
		3: {gtype: NotGate, children: []int{4}},
		4: {gtype: AndGate, children: []int{1, 2}},
	})

	require.NoError(t, tree.Preprocess(2))

	top := tree.Gate(tree.TopEventIndex())
	assert.Equal(t, OrGate, top.Type())
	assert.Equal(t, []int{-2, -1}, top.Children())
}

func TestPreprocessNotTopOverBasicEvent(t *testing.T) {
	tree := buildGraph(t, 2, map[int]gateSpec{
		2: {gtype: NotGate, children: []int{1}},
	})

	require.NoError(t, tree.Preprocess(1))

	top := tree.Gate(tree.TopEventIndex())
	assert.Equal(t, []int{-1}, top.Children())
}

func TestPropagateConstantsEmptyInputsIsNoOp(t *testing.T) {
	tree := buildGraph(t, 3, map[int]gateSpec{
		3: {gtype: AndGate, children: []int{1, 2}},
	})

	require.NoError(t, tree.PropagateConstants(nil, nil))
	assert.Equal(t, []int{1, 2}, tree.Gate(3).Children())
	assert.Equal(t, NormalState, tree.Gate(3).State())
}

func TestPropagateConstantsIsIdempotent(t *testing.T) {
	trueHouse := map[int]bool{2: true}

	tree := buildGraph(t, 4, map[int]gateSpec{
		4: {gtype: AndGate, children: []int{1, 2, 3}},
	})

	require.NoError(t, tree.PropagateConstants(trueHouse, nil))
	after := append([]int(nil), tree.Gate(4).Children()...)

	require.NoError(t, tree.PropagateConstants(trueHouse, nil))
	assert.Equal(t, after, tree.Gate(4).Children())
	assert.Equal(t, []int{1, 3}, tree.Gate(4).Children())
}

func TestPropagateConstantsTrueOnOrMakesUnity(t *testing.T) {
	tree := buildGraph(t, 3, map[int]gateSpec{
		3: {gtype: OrGate, children: []int{1, 2}},
	})

	require.NoError(t, tree.PropagateConstants(map[int]bool{2: true}, nil))
	assert.Equal(t, UnityState, tree.Gate(3).State())

	sets, err := tree.FindMinimalCutSets(10)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{}}, sets)
}

func TestPropagateConstantsFalseOnAndMakesNull(t *testing.T) {
	tree := buildGraph(t, 3, map[int]gateSpec{
		3: {gtype: AndGate, children: []int{1, 2}},
	})

	require.NoError(t, tree.PropagateConstants(nil, map[int]bool{2: true}))
	assert.Equal(t, NullState, tree.Gate(3).State())

	sets, err := tree.FindMinimalCutSets(10)
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestDebugLoggerIsOptional(t *testing.T) {
	tree := buildGraph(t, 3, map[int]gateSpec{
		3: {gtype: AndGate, children: []int{1, 2}},
	})
	tree.SetLogger(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	require.NoError(t, tree.Preprocess(2))

	sets, err := tree.FindMinimalCutSets(10)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}}, sets)
}

func TestPreprocessDoubleComplementCancels(t *testing.T) {
	// top = AND(a, NOT(NOT(b))) reduces to AND(a, b).
	sets := analyze(t, 4, 2, map[int]gateSpec{
		4: {gtype: AndGate, children: []int{1, 5}},
		5: {gtype: NotGate, children: []int{6}},
		6: {gtype: NotGate, children: []int{2}},
	}, nil, nil, 10)

	assert.Equal(t, [][]int{{1, 2}}, sets)
}

func TestPreprocessSharedComplementGate(t *testing.T) {
	// The complement of the shared OR(b, c) is cloned once and the
	// clone is shared by both referencing gates.
	sets := analyze(t, 4, 3, map[int]gateSpec{
		4: {gtype: AndGate, children: []int{5, 6}},
		5: {gtype: OrGate, children: []int{1, -7}},
		6: {gtype: OrGate, children: []int{2, -7}},
		7: {gtype: OrGate, children: []int{2, 3}},
	}, nil, nil, 10)

	// -OR(b, c) = AND(-b, -c); the all-complement product {-b, -c}
	// survives and strips to the empty set, absorbing everything else.
	assert.Equal(t, [][]int{{}}, sets)
}
