package indexed_tree

import "log/slog"

// IndexedFaultTree holds the gate graph under analysis. Indices below
// the gate threshold denote basic events; the threshold itself is the
// index of the top gate. Index 0 is never valid.
type IndexedFaultTree struct {
	topEventIndex int
	gateIndex     int // first index that denotes a gate
	newGateIndex  int // highest index handed out so far
	topEventSign  int
	gates         map[int]*IndexedGate
	logger        *slog.Logger
}

// NewIndexedFaultTree creates an empty graph whose top gate has the
// given index. Every index at or above topEventID is a gate index;
// everything in [1, topEventID) is a basic event.
func NewIndexedFaultTree(topEventID int) *IndexedFaultTree {
	return &IndexedFaultTree{
		topEventIndex: topEventID,
		gateIndex:     topEventID,
		newGateIndex:  topEventID,
		topEventSign:  1,
		gates:         make(map[int]*IndexedGate),
	}
}

// SetLogger installs an optional debug logger. A nil logger disables
// all debug output.
func (t *IndexedFaultTree) SetLogger(l *slog.Logger) { t.logger = l }

func (t *IndexedFaultTree) debug(msg string, args ...any) {
	if t.logger != nil {
		t.logger.Debug(msg, args...)
	}
}

func (t *IndexedFaultTree) TopEventIndex() int { return t.topEventIndex }

func (t *IndexedFaultTree) AddGate(gate *IndexedGate) {
	t.gates[gate.Index()] = gate
	if gate.Index() > t.newGateIndex {
		t.newGateIndex = gate.Index()
	}
}

func (t *IndexedFaultTree) Gate(index int) *IndexedGate {
	return t.gates[index]
}

// IsGateIndex reports whether the signed index refers to a gate.
func (t *IndexedFaultTree) IsGateIndex(index int) bool {
	return abs(index) >= t.gateIndex
}

func (t *IndexedFaultTree) nextGateIndex() int {
	t.newGateIndex++
	return t.newGateIndex
}

func (t *IndexedFaultTree) ClearGateVisits() {
	for _, g := range t.gates {
		g.ClearVisits()
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
