package indexed_tree

import (
	"sort"
	"strconv"
)

// ==============================
// Simple gates and cut sets
// ==============================

// simpleGate is the flattened two-level working form a preprocessed
// gate is converted into before distribution: its own basic event
// literals, its module atoms, and its sub-gates, with nothing else in
// between.
type simpleGate struct {
	gtype       GateType // OrGate or AndGate only
	basicEvents []int    // signed literals, sorted ascending
	modules     []int    // module gate indices, sorted ascending
	gates       []*simpleGate
}

// cutSet is one product of literals and module atoms. Both slices are
// kept sorted so that merging, comparison, and keying stay linear.
type cutSet struct {
	basics  []int
	modules []int
}

// order counts only basic event literals; module atoms are opaque
// until substitution and do not count against the order limit.
func (c cutSet) order() int { return len(c.basics) }

func (c cutSet) size() int { return len(c.basics) + len(c.modules) }

func (c cutSet) key() string {
	buf := make([]byte, 0, 8*c.size())
	for _, v := range c.basics {
		buf = strconv.AppendInt(buf, int64(v), 10)
		buf = append(buf, ',')
	}
	buf = append(buf, '|')
	for _, v := range c.modules {
		buf = strconv.AppendInt(buf, int64(v), 10)
		buf = append(buf, ',')
	}
	return string(buf)
}

func (c cutSet) clone() cutSet {
	return cutSet{
		basics:  append([]int(nil), c.basics...),
		modules: append([]int(nil), c.modules...),
	}
}

// subsetOf reports whether every element of c occurs in other.
func (c cutSet) subsetOf(other cutSet) bool {
	return containsAll(other.basics, c.basics) && containsAll(other.modules, c.modules)
}

func containsAll(haystack, needles []int) bool {
	i := 0
	for _, n := range needles {
		for i < len(haystack) && haystack[i] < n {
			i++
		}
		if i == len(haystack) || haystack[i] != n {
			return false
		}
		i++
	}
	return true
}

// hasComplement reports whether a sorted literal slice contains both
// v and -v for some v.
func hasComplement(sorted []int) bool {
	for _, v := range sorted {
		if v >= 0 {
			break
		}
		i := sort.SearchInts(sorted, -v)
		if i < len(sorted) && sorted[i] == -v {
			return true
		}
	}
	return false
}

// mergeSigned merges two sorted literal slices, deduplicating. The
// second return is false when the union holds a complement pair.
func mergeSigned(a, b []int) ([]int, bool) {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	if hasComplement(out) {
		return nil, false
	}
	return out, true
}

// mergeCutSets unions two cut sets. It fails when the merged literals
// contain a complement pair or the order exceeds the limit.
func mergeCutSets(a, b cutSet, limitOrder int) (cutSet, bool) {
	basics, ok := mergeSigned(a.basics, b.basics)
	if !ok {
		return cutSet{}, false
	}
	if len(basics) > limitOrder {
		return cutSet{}, false
	}
	modules, _ := mergeSigned(a.modules, b.modules)
	return cutSet{basics: basics, modules: modules}, true
}

// ==============================
// Generator
// ==============================

type mcsGenerator struct {
	tree       *IndexedFaultTree
	limitOrder int
	// moduleMCS caches the minimal cut sets per signed module index.
	// The negative key holds the complement, derived on demand.
	moduleMCS map[int][]cutSet
}

// FindMinimalCutSets generates the minimal cut sets of the top event
// with at most limitOrder basic events each. The graph must have been
// preprocessed. Cut sets come back as sorted slices of basic event
// indices, ordered by size and then lexically.
func (t *IndexedFaultTree) FindMinimalCutSets(limitOrder int) ([][]int, error) {
	if limitOrder < 1 {
		return nil, ErrLimitOrder
	}

	top := t.gates[t.topEventIndex]
	switch top.State() {
	case NullState:
		return [][]int{}, nil
	case UnityState:
		return [][]int{{}}, nil
	}
	if len(top.Children()) == 0 {
		return [][]int{}, nil
	}

	gen := &mcsGenerator{
		tree:       t,
		limitOrder: limitOrder,
		moduleMCS:  make(map[int][]cutSet),
	}

	sets := gen.generate(t.topEventIndex)
	sets = gen.substituteModules(sets)

	// Complemented literals that survive to the leaf level are
	// satisfied by leaving their events out of the failure set, so
	// they do not belong in the reported cut sets.
	stripped := make([]cutSet, 0, len(sets))
	for _, s := range sets {
		kept := make([]int, 0, len(s.basics))
		for _, v := range s.basics {
			if v > 0 {
				kept = append(kept, v)
			}
		}
		stripped = append(stripped, cutSet{basics: kept})
	}
	stripped = dedupCutSets(stripped)
	stripped = minimizeCutSets(stripped)

	t.debug("minimal cut sets found", "count", len(stripped))

	out := make([][]int, 0, len(stripped))
	for _, s := range stripped {
		out = append(out, append([]int{}, s.basics...))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return out, nil
}

// generate produces the minimal cut sets of one signed module index,
// memoizing the result. The complement of an already generated module
// is derived with De Morgan's law instead of walking the graph again.
func (g *mcsGenerator) generate(index int) []cutSet {
	if sets, ok := g.moduleMCS[index]; ok {
		return sets
	}
	if sets, ok := g.moduleMCS[-index]; ok {
		derived := g.complementSets(sets)
		g.moduleMCS[index] = derived
		return derived
	}
	if index < 0 {
		derived := g.complementSets(g.generate(-index))
		g.moduleMCS[index] = derived
		return derived
	}

	gate := g.tree.Gate(index)
	simple := g.convert(gate, make(map[int]*simpleGate))
	sets := g.expandGate(simple)
	sets = dedupCutSets(sets)
	sets = minimizeCutSets(sets)
	g.moduleMCS[index] = sets
	return sets
}

// convert flattens a preprocessed gate into the simple working form.
// Shared sub-gates convert once through the processed memo. Module
// children stay atoms; everything else becomes a nested simple gate.
func (g *mcsGenerator) convert(gate *IndexedGate, processed map[int]*simpleGate) *simpleGate {
	if s, ok := processed[gate.Index()]; ok {
		return s
	}
	s := &simpleGate{gtype: gate.Type()}
	processed[gate.Index()] = s

	for _, c := range gate.Children() {
		if !g.tree.IsGateIndex(c) {
			s.basicEvents = append(s.basicEvents, c)
			continue
		}
		child := g.tree.Gate(abs(c))
		if child.IsModule() {
			s.modules = append(s.modules, c)
			continue
		}
		s.gates = append(s.gates, g.convert(child, processed))
	}
	sort.Ints(s.basicEvents)
	sort.Ints(s.modules)
	return s
}

// expandGate turns a simple gate into cut sets. An OR gate yields one
// set per atom plus the sets of its sub-gates. An AND gate starts from
// its own atoms and distributes over the sets of each sub-gate in
// turn, pruning over-limit and contradictory products eagerly.
func (g *mcsGenerator) expandGate(s *simpleGate) []cutSet {
	if s.gtype == OrGate {
		var sets []cutSet
		for _, v := range s.basicEvents {
			sets = append(sets, cutSet{basics: []int{v}})
		}
		for _, m := range s.modules {
			sets = append(sets, cutSet{modules: []int{m}})
		}
		for _, sub := range s.gates {
			sets = append(sets, g.expandGate(sub)...)
		}
		return sets
	}

	// AND gate
	if hasComplement(s.basicEvents) {
		return nil
	}
	base := cutSet{
		basics:  append([]int(nil), s.basicEvents...),
		modules: append([]int(nil), s.modules...),
	}
	if base.order() > g.limitOrder {
		return nil
	}
	sets := []cutSet{base}
	for _, sub := range s.gates {
		subSets := g.expandGate(sub)
		if len(subSets) == 0 {
			return nil
		}
		var next []cutSet
		for _, acc := range sets {
			for _, ss := range subSets {
				merged, ok := mergeCutSets(acc, ss, g.limitOrder)
				if !ok {
					continue
				}
				next = append(next, merged)
			}
		}
		if len(next) == 0 {
			return nil
		}
		sets = dedupCutSets(next)
	}
	return sets
}

// complementSets derives the cut sets of the complemented collection
// with De Morgan's law: the complement of an OR of products is the
// product of ORs of negated literals.
func (g *mcsGenerator) complementSets(sets []cutSet) []cutSet {
	// No cut sets means constant false; its complement is constant
	// true, which one empty set expresses.
	if len(sets) == 0 {
		return []cutSet{{}}
	}
	acc := []cutSet{{}}
	for _, s := range sets {
		if s.size() == 0 {
			// Constant true in the input makes the whole complement
			// constant false.
			return nil
		}
		var next []cutSet
		for _, partial := range acc {
			for _, v := range s.basics {
				merged, ok := mergeCutSets(partial, cutSet{basics: []int{-v}}, g.limitOrder)
				if !ok {
					continue
				}
				next = append(next, merged)
			}
			for _, m := range s.modules {
				merged, ok := mergeCutSets(partial, cutSet{modules: []int{-m}}, g.limitOrder)
				if !ok {
					continue
				}
				next = append(next, merged)
			}
		}
		if len(next) == 0 {
			return nil
		}
		acc = dedupCutSets(next)
	}
	return minimizeCutSets(acc)
}

// substituteModules expands module atoms into their own cut sets until
// only basic event literals remain.
func (g *mcsGenerator) substituteModules(sets []cutSet) []cutSet {
	for {
		expanded := false
		var next []cutSet
		for _, s := range sets {
			if len(s.modules) == 0 {
				next = append(next, s)
				continue
			}
			expanded = true
			m := s.modules[0]
			rest := cutSet{
				basics:  s.basics,
				modules: s.modules[1:],
			}
			for _, ms := range g.generate(m) {
				merged, ok := mergeCutSets(rest.clone(), ms, g.limitOrder)
				if !ok {
					continue
				}
				next = append(next, merged)
			}
		}
		if !expanded {
			return sets
		}
		sets = dedupCutSets(next)
	}
}

// ==============================
// Dedup and minimization
// ==============================

func dedupCutSets(sets []cutSet) []cutSet {
	seen := make(map[string]struct{}, len(sets))
	out := sets[:0:0]
	for _, s := range sets {
		k := s.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// minimizeCutSets drops every set that is a superset of another. The
// candidates are taken in ascending size order, so each accepted set
// only needs checking against the already accepted smaller ones.
func minimizeCutSets(sets []cutSet) []cutSet {
	ordered := append([]cutSet(nil), sets...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].size() != ordered[j].size() {
			return ordered[i].size() < ordered[j].size()
		}
		return ordered[i].key() < ordered[j].key()
	})

	if len(ordered) > 0 && ordered[0].size() == 0 {
		// An empty set is constant true and absorbs everything else.
		return []cutSet{{}}
	}

	var accepted []cutSet
	for _, cand := range ordered {
		if cand.size() == 1 {
			accepted = append(accepted, cand)
			continue
		}
		dominated := false
		for _, a := range accepted {
			if a.subsetOf(cand) {
				dominated = true
				break
			}
		}
		if !dominated {
			accepted = append(accepted, cand)
		}
	}
	return accepted
}
