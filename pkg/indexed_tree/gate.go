package indexed_tree

import "sort"

// GateType is the boolean operator of an indexed gate.
type GateType int

const (
	NullGate GateType = iota // pass-through, single child
	OrGate
	AndGate
	NorGate
	NandGate
	XorGate
	NotGate
	AtleastGate
)

// State marks a gate whose value became constant during preprocessing.
type State int

const (
	NormalState State = iota
	NullState         // constant false
	UnityState        // constant true
)

// IndexedGate is a node of the indexed gate graph. Children are signed
// indices: a negative child means the complement of the event or gate
// with the absolute index. The children slice stays sorted ascending.
type IndexedGate struct {
	index      int
	gtype      GateType
	voteNumber int
	state      State
	module     bool
	children   []int
	parents    map[int]struct{}
	visits     [3]int
}

func NewIndexedGate(index int, gtype GateType) *IndexedGate {
	return &IndexedGate{
		index:   index,
		gtype:   gtype,
		parents: make(map[int]struct{}),
	}
}

func (g *IndexedGate) Index() int { return g.index }

func (g *IndexedGate) Type() GateType { return g.gtype }

func (g *IndexedGate) SetType(t GateType) { g.gtype = t }

func (g *IndexedGate) VoteNumber() int { return g.voteNumber }

func (g *IndexedGate) SetVoteNumber(v int) { g.voteNumber = v }

func (g *IndexedGate) State() State { return g.state }

func (g *IndexedGate) IsModule() bool { return g.module }

// TurnModule marks the gate as an independent sub-graph.
func (g *IndexedGate) TurnModule() { g.module = true }

// Children returns the sorted signed child indices. The slice is the
// gate's own storage; callers must not mutate it.
func (g *IndexedGate) Children() []int { return g.children }

func (g *IndexedGate) HasChild(child int) bool {
	i := sort.SearchInts(g.children, child)
	return i < len(g.children) && g.children[i] == child
}

// InitiateWithChild adds the first children during construction,
// before any complements can occur.
func (g *IndexedGate) InitiateWithChild(child int) {
	g.insertChild(child)
}

// AddChild inserts a signed child. When the complement of the child is
// already present, the gate collapses: an OR gate becomes constant
// true, an AND gate becomes constant false. The return value reports
// whether the gate is still in a normal state.
func (g *IndexedGate) AddChild(child int) bool {
	if g.HasChild(child) {
		return true
	}
	if g.HasChild(-child) {
		switch g.gtype {
		case OrGate:
			g.MakeUnity()
		case AndGate:
			g.Nullify()
		}
		return false
	}
	g.insertChild(child)
	return true
}

// SwapChild replaces an existing child with another index, with the
// same complement collapse rule as AddChild.
func (g *IndexedGate) SwapChild(existing, with int) bool {
	g.EraseChild(existing)
	return g.AddChild(with)
}

// InvertChildren negates every child in place.
func (g *IndexedGate) InvertChildren() {
	inverted := make([]int, len(g.children))
	for i, c := range g.children {
		inverted[len(g.children)-1-i] = -c
	}
	g.children = inverted
}

func (g *IndexedGate) EraseChild(child int) {
	i := sort.SearchInts(g.children, child)
	if i < len(g.children) && g.children[i] == child {
		g.children = append(g.children[:i], g.children[i+1:]...)
	}
}

func (g *IndexedGate) EraseAllChildren() {
	g.children = nil
}

// Nullify turns the gate into constant false.
func (g *IndexedGate) Nullify() {
	g.state = NullState
	g.EraseAllChildren()
}

// MakeUnity turns the gate into constant true.
func (g *IndexedGate) MakeUnity() {
	g.state = UnityState
	g.EraseAllChildren()
}

// JoinGate absorbs a same-type child gate: the child's index is
// removed and the child's children are added directly. Returns false
// if a complement collapse occurred.
func (g *IndexedGate) JoinGate(child *IndexedGate) bool {
	g.EraseChild(child.Index())
	for _, c := range child.Children() {
		if !g.AddChild(c) {
			return false
		}
	}
	return true
}

func (g *IndexedGate) AddParent(parent int) {
	g.parents[parent] = struct{}{}
}

func (g *IndexedGate) EraseParents() {
	g.parents = make(map[int]struct{})
}

func (g *IndexedGate) Parents() map[int]struct{} { return g.parents }

// Visit stamps the gate with a traversal time. The first call records
// the enter time, the second the exit time, and any later call records
// a revisit. Only revisits return true.
func (g *IndexedGate) Visit(time int) bool {
	switch {
	case g.visits[0] == 0:
		g.visits[0] = time
	case g.visits[1] == 0:
		g.visits[1] = time
	default:
		g.visits[2] = time
		return true
	}
	return false
}

func (g *IndexedGate) Visited() bool { return g.visits[0] != 0 }

func (g *IndexedGate) EnterTime() int { return g.visits[0] }

func (g *IndexedGate) ExitTime() int { return g.visits[1] }

// LastVisit is the most recent stamp of any kind.
func (g *IndexedGate) LastVisit() int {
	if g.visits[2] != 0 {
		return g.visits[2]
	}
	if g.visits[1] != 0 {
		return g.visits[1]
	}
	return g.visits[0]
}

func (g *IndexedGate) Revisited() bool { return g.visits[2] != 0 }

func (g *IndexedGate) ClearVisits() {
	g.visits = [3]int{}
}

func (g *IndexedGate) insertChild(child int) {
	i := sort.SearchInts(g.children, child)
	g.children = append(g.children, 0)
	copy(g.children[i+1:], g.children[i:])
	g.children[i] = child
}
