package fault_tree

import (
	"fmt"
	"sort"

	"github.com/jtomasevic/cutset/pkg/indexed_tree"
)

// Indexing is the numeric form of a fault tree: everything the indexed
// analysis needs, and nothing symbolic.
type Indexing struct {
	TopIndex       int
	NumBasicEvents int
	NameToIndex    map[string]int
	Formulas       map[int]*indexed_tree.Formula
	TrueHouse      map[int]bool
	FalseHouse     map[int]bool
	IndexToName    map[int]string
}

// Index assigns deterministic indices: primary events take 1..N in
// sorted name order, the top gate takes N+1, and the remaining gates
// follow in sorted name order. House event constants land in the true
// and false sets for constant propagation.
func (ft *FaultTree) Index(topGate string) (*Indexing, error) {
	top, ok := ft.Gate(topGate)
	if !ok {
		return nil, fmt.Errorf("%w: top gate %q", ErrUndefinedEvent, topGate)
	}

	primaries := make([]string, 0, len(ft.basicEvents)+len(ft.houseEvents))
	for name := range ft.basicEvents {
		primaries = append(primaries, name)
	}
	for name := range ft.houseEvents {
		primaries = append(primaries, name)
	}
	sort.Strings(primaries)

	idx := &Indexing{
		NumBasicEvents: len(primaries),
		NameToIndex:    make(map[string]int, len(primaries)+len(ft.gates)),
		Formulas:       make(map[int]*indexed_tree.Formula, len(ft.gates)),
		TrueHouse:      make(map[int]bool),
		FalseHouse:     make(map[int]bool),
		IndexToName:    make(map[int]string, len(primaries)+len(ft.gates)),
	}

	for i, name := range primaries {
		index := i + 1
		idx.NameToIndex[name] = index
		idx.IndexToName[index] = name
		if house, ok := ft.houseEvents[name]; ok {
			if house.State {
				idx.TrueHouse[index] = true
			} else {
				idx.FalseHouse[index] = true
			}
		}
	}

	idx.TopIndex = len(primaries) + 1
	idx.NameToIndex[top.Name] = idx.TopIndex
	idx.IndexToName[idx.TopIndex] = top.Name
	idx.Formulas[idx.TopIndex] = top.Formula

	gateNames := make([]string, 0, len(ft.gates))
	for name := range ft.gates {
		if name != top.Name {
			gateNames = append(gateNames, name)
		}
	}
	sort.Strings(gateNames)

	next := idx.TopIndex
	for _, name := range gateNames {
		next++
		idx.NameToIndex[name] = next
		idx.IndexToName[next] = name
		idx.Formulas[next] = ft.gates[name].Formula
	}
	return idx, nil
}
