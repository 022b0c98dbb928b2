// File: siblings.go
// Role: To-sibling and from-sibling simplification (spec.md §4.3): nodes that
//       share an identical set of incoming (or outgoing) sides and a common
//       sequence prefix (or suffix) are split so the shared region becomes
//       one node feeding (or fed by) the rest.
package mutate

import (
	"errors"
	"sort"

	"github.com/lvlath-labs/vgraph/core"
)

// ErrSiblingGroupInconsistent indicates a sibling group's members, having
// been partitioned by an identical shared-side set, no longer agree on that
// set by the time the group is merged — a consistency check that should
// never fail given groupBySharedSideLocked's partition guarantee. Mirrors
// spec.md §9's "early-exit path guarded by debug flags and commented
// assertions" in the original sibling-simplification code; callers that want
// that path to be fatal-with-diagnostic-dump (per §9's recommendation) wrap
// this error in diag.Fatal, which mutate itself cannot import without a
// layering cycle (diag depends on mutate, not the reverse).
var ErrSiblingGroupInconsistent = errors.New("mutate: sibling group's shared side set is inconsistent")

// SimplifyToSiblings merges the common prefix of every maximal to-sibling
// group (nodes sharing the exact same incoming-side set) into one shared
// node, returning the number of groups simplified. The transitive filter —
// "a group is used only if every member belongs to no other group" — holds
// automatically here because grouping is by exact side-set equality, which
// partitions the node set.
func (g *Graph) SimplifyToSiblings() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.simplifySiblingsLocked(core.Start, false)
}

// SimplifyFromSiblings is the symmetric operation on common suffixes of
// nodes sharing the same outgoing-side set.
func (g *Graph) SimplifyFromSiblings() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.simplifySiblingsLocked(core.EndSide, true)
}

// simplifySiblingsLocked implements both directions. sharedEnd is the side
// grouped on (Start for to-siblings, End for from-siblings); suffix
// indicates the common region is a suffix (from-siblings) rather than a
// prefix.
func (g *Graph) simplifySiblingsLocked(sharedEnd core.End, suffix bool) (int, error) {
	groups := g.groupBySharedSideLocked(sharedEnd)
	simplified := 0
	for _, ids := range groups {
		if len(ids) < 2 {
			continue
		}
		ok, err := g.simplifyOneGroupLocked(ids, sharedEnd, suffix)
		if err != nil {
			return simplified, err
		}
		if ok {
			simplified++
		}
	}
	return simplified, nil
}

// groupBySharedSideLocked partitions every node by the sorted set of
// neighbour sides incident to its `sharedEnd` side — the node's parents (for
// Start) or children (for End).
func (g *Graph) groupBySharedSideLocked(sharedEnd core.End) map[string][]core.NodeID {
	groups := make(map[string][]core.NodeID)
	for _, n := range g.Core.Nodes() {
		side := core.Side{Node: n.ID, End: sharedEnd}
		adj := g.Core.EdgesOf(side)
		if len(adj) == 0 {
			continue
		}
		key := sideSetKey(neighborSides(adj))
		groups[key] = append(groups[key], n.ID)
	}
	return groups
}

// neighborSides extracts and deterministically sorts the neighbour sides of
// an EdgesOf result, giving a canonical ordering sideSetKey can hash.
func neighborSides(adj []core.SideNeighbor) []core.Side {
	neighbors := make([]core.Side, len(adj))
	for i, a := range adj {
		neighbors[i] = a.Neighbor
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Node != neighbors[j].Node {
			return neighbors[i].Node < neighbors[j].Node
		}
		return bool(!neighbors[i].End) && bool(neighbors[j].End)
	})
	return neighbors
}

func sideSetKey(sides []core.Side) string {
	b := make([]byte, 0, len(sides)*12)
	for _, s := range sides {
		b = appendUint(b, uint64(s.Node))
		if s.End {
			b = append(b, 'e')
		} else {
			b = append(b, 's')
		}
		b = append(b, ',')
	}
	return string(b)
}

func appendUint(b []byte, v uint64) []byte {
	if v == 0 {
		return append(b, '0')
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// simplifyOneGroupLocked splits off the common prefix (or suffix, for
// from-siblings) of a sibling group into one shared node. Returns false
// without error if the group has no common non-empty region (a legitimate,
// not-exceptional, outcome).
func (g *Graph) simplifyOneGroupLocked(ids []core.NodeID, sharedEnd core.End, suffix bool) (bool, error) {
	seqs := make([]string, len(ids))
	minLen := -1
	for i, id := range ids {
		n, err := g.Core.GetNode(id)
		if err != nil {
			return false, err
		}
		seqs[i] = n.Sequence
		if minLen == -1 || len(n.Sequence) < minLen {
			minLen = len(n.Sequence)
		}
	}
	l := commonRegionLength(seqs, minLen, suffix)
	if l == 0 {
		return false, nil
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	outerSide := core.Side{Node: ids[0], End: sharedEnd}
	outerAdj := g.Core.EdgesOf(outerSide)
	outerKey := sideSetKey(neighborSides(outerAdj))
	for _, id := range ids[1:] {
		adj := g.Core.EdgesOf(core.Side{Node: id, End: sharedEnd})
		if sideSetKey(neighborSides(adj)) != outerKey {
			return false, ErrSiblingGroupInconsistent
		}
	}

	shared := sharedRegion(seqs[0], l, suffix)
	sharedNode, err := g.Core.CreateNode(shared, nil)
	if err != nil {
		return false, err
	}
	sharedOuter := core.Side{Node: sharedNode.ID, End: sharedEnd}
	sharedInner := core.Side{Node: sharedNode.ID, End: oppositeEnd(sharedEnd)}

	for _, a := range outerAdj {
		if _, err := g.Core.CreateEdge(sharedOuter, a.Neighbor); err != nil {
			return false, err
		}
	}

	for i, id := range ids {
		remainder := remainderRegion(seqs[i], l, suffix)
		innerSide := core.Side{Node: id, End: oppositeEnd(sharedEnd)}
		innerAdj := g.Core.EdgesOf(innerSide)

		if err := g.divideMappingsForSiblingLocked(id, l, suffix); err != nil {
			return false, err
		}

		var remNode core.Node
		if remainder != "" {
			remNode, err = g.Core.CreateNode(remainder, nil)
			if err != nil {
				return false, err
			}
			remInner := core.Side{Node: remNode.ID, End: oppositeEnd(sharedEnd)}
			for _, a := range innerAdj {
				if _, err := g.Core.CreateEdge(remInner, a.Neighbor); err != nil {
					return false, err
				}
			}
			remOuter := core.Side{Node: remNode.ID, End: sharedEnd}
			if suffix {
				if _, err := g.Core.CreateEdge(remOuter, sharedInner); err != nil {
					return false, err
				}
			} else {
				if _, err := g.Core.CreateEdge(sharedInner, remOuter); err != nil {
					return false, err
				}
			}
		}

		if err := g.reassignSiblingMappingsLocked(id, l, suffix, sharedNode.ID, remNode.ID, remainder != ""); err != nil {
			return false, err
		}

		if _, err := g.Core.DestroyNode(id); err != nil {
			return false, err
		}
	}
	return true, nil
}

func oppositeEnd(e core.End) core.End { return !e }

func commonRegionLength(seqs []string, maxLen int, suffix bool) int {
	for l := maxLen; l > 0; l-- {
		ref := regionAt(seqs[0], l, suffix)
		all := true
		for _, s := range seqs[1:] {
			if regionAt(s, l, suffix) != ref {
				all = false
				break
			}
		}
		if all {
			return l
		}
	}
	return 0
}

func regionAt(s string, l int, suffix bool) string {
	if suffix {
		return s[len(s)-l:]
	}
	return s[:l]
}

func sharedRegion(s string, l int, suffix bool) string   { return regionAt(s, l, suffix) }
func remainderRegion(s string, l int, suffix bool) string {
	if suffix {
		return s[:len(s)-l]
	}
	return s[l:]
}

// divideMappingsForSiblingLocked divides every mapping on node id at the
// offset separating the shared region from the remainder, so the two halves
// can be reassigned independently. It is a no-op for mappings that do not
// straddle the cut.
func (g *Graph) divideMappingsForSiblingLocked(id core.NodeID, l int, suffix bool) error {
	n, err := g.Core.GetNode(id)
	if err != nil {
		return err
	}
	cutFwd := l
	if suffix {
		cutFwd = n.Length() - l
	}
	if cutFwd <= 0 || cutFwd >= n.Length() {
		return nil
	}
	for _, mv := range g.Paths.OfNode(id) {
		length := 0
		for _, e := range mv.Edits {
			length += e.FromLen
		}
		if cutFwd <= mv.Pos.Offset || cutFwd >= mv.Pos.Offset+length {
			continue
		}
		var cutDist int
		if mv.Pos.Orientation == core.Reverse {
			cutDist = (mv.Pos.Offset + length) - cutFwd
		} else {
			cutDist = cutFwd - mv.Pos.Offset
		}
		if _, _, err := g.Paths.DivideMapping(mv.Handle, cutDist); err != nil {
			return err
		}
	}
	return nil
}

// reassignSiblingMappingsLocked reassigns every (now possibly divided)
// mapping on id to sharedNode or remNode depending on which forward-range it
// falls in.
func (g *Graph) reassignSiblingMappingsLocked(id core.NodeID, l int, suffix bool, sharedID, remID core.NodeID, hasRemainder bool) error {
	n, err := g.Core.GetNode(id)
	if err != nil {
		return err
	}
	sharedLo, sharedHi := 0, l
	if suffix {
		sharedLo, sharedHi = n.Length()-l, n.Length()
	}
	for _, mv := range g.Paths.OfNode(id) {
		inShared := mv.Pos.Offset >= sharedLo && mv.Pos.Offset < sharedHi
		if inShared {
			newOffset := mv.Pos.Offset - sharedLo
			if err := g.Paths.ReassignNode(mv.Handle, sharedID, newOffset); err != nil {
				return err
			}
		} else if hasRemainder {
			remLo := 0
			if !suffix {
				remLo = sharedHi
			}
			newOffset := mv.Pos.Offset - remLo
			if err := g.Paths.ReassignNode(mv.Handle, remID, newOffset); err != nil {
				return err
			}
		}
	}
	return nil
}
