// File: breakpoints.go
// Role: Steps 1-2 of the edit algorithm (spec.md §4.4): simplify adjacent
//       match edits and collect, per node, the forward-strand offsets the
//       new paths require the graph to be cut at.
package edit

import (
	"sort"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/pathidx"
)

// simplifyMapping merges adjacent plain-match edits within one mapping into
// a single edit, the way an aligner's CIGAR is collapsed before use.
func simplifyMapping(edits []pathidx.Edit) []pathidx.Edit {
	out := make([]pathidx.Edit, 0, len(edits))
	for _, e := range edits {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.IsMatch() && e.IsMatch() {
				last.FromLen += e.FromLen
				last.ToLen += e.ToLen
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// simplifyPath applies simplifyMapping to every mapping of p and returns the
// simplified copy; it does not mutate p.
func simplifyPath(p InputPath) InputPath {
	out := InputPath{Name: p.Name, Circular: p.Circular, Mappings: make([]InputMapping, len(p.Mappings))}
	for i, m := range p.Mappings {
		out.Mappings[i] = InputMapping{Pos: m.Pos, Edits: simplifyMapping(m.Edits)}
	}
	return out
}

// span is the forward-strand [lo,hi) range one edit occupies on its node.
type span struct{ lo, hi int }

// forwardSpans computes, for each edit of a mapping in reading order, the
// forward-strand range it occupies. Position.Offset is always the
// forward-strand low coordinate of the whole mapping (pathidx's convention),
// so a Forward mapping's edits walk the spans low to high while a Reverse
// mapping's edits walk them high to low.
func forwardSpans(pos pathidx.Position, edits []pathidx.Edit) []span {
	spans := make([]span, len(edits))
	if pos.Orientation == core.Reverse {
		total := 0
		for _, e := range edits {
			total += e.FromLen
		}
		cur := pos.Offset + total
		for i, e := range edits {
			hi := cur
			lo := cur - e.FromLen
			spans[i] = span{lo: lo, hi: hi}
			cur = lo
		}
		return spans
	}
	cur := pos.Offset
	for i, e := range edits {
		lo := cur
		hi := cur + e.FromLen
		spans[i] = span{lo: lo, hi: hi}
		cur = hi
	}
	return spans
}

// readingStart and readingEnd give the forward-strand coordinate where edit i
// begins and ends when the mapping's edits are walked in reading order.
func readingStart(pos pathidx.Position, spans []span, i int) int {
	if pos.Orientation == core.Reverse {
		return spans[i].hi
	}
	return spans[i].lo
}

func readingEnd(pos pathidx.Position, spans []span, i int) int {
	if pos.Orientation == core.Reverse {
		return spans[i].lo
	}
	return spans[i].hi
}

// collectBreakpoints implements spec.md §4.4 step 2: for every mapping,
// record a breakpoint at the first edit's reading-order start (unless it
// sits at coordinate 0) and at the reading-order end of every non-match edit
// or the mapping's last edit.
func collectBreakpoints(paths []InputPath) map[core.NodeID]map[int]struct{} {
	out := map[core.NodeID]map[int]struct{}{}
	add := func(node core.NodeID, off int) {
		if off <= 0 {
			return
		}
		set, ok := out[node]
		if !ok {
			set = map[int]struct{}{}
			out[node] = set
		}
		set[off] = struct{}{}
	}
	for _, p := range paths {
		for _, mp := range p.Mappings {
			if len(mp.Edits) == 0 {
				continue
			}
			spans := forwardSpans(mp.Pos, mp.Edits)
			add(mp.Pos.Node, readingStart(mp.Pos, spans, 0))
			last := len(mp.Edits) - 1
			for i, e := range mp.Edits {
				if e.IsMatch() && i != last {
					continue
				}
				add(mp.Pos.Node, readingEnd(mp.Pos, spans, i))
			}
		}
	}
	return out
}

func sortedInts(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
