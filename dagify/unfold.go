// File: unfold.go
// Role: Unfold, the strand-duplication half of the C7 DAGifier (spec.md
//       §4.5 "Unfold (strand duplication)"; §8 scenario 4). Grounded on
//       dfs/dfs.go's bounded-depth traversal option, adapted from a depth
//       bound to a spelled-sequence-length bound, and on dfs/topological.go's
//       Gray/Black coloring, adapted to the clone-or-pass-through decision
//       made at every traversal the bounded walk reaches.
package dagify

import (
	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/translate"
)

// Unfold removes every edge that crosses strands (spec.md's "from-start XOR
// to-end", core.Edge.Reverses()) by cloning the region reached in reversed
// orientation across it, up to a total spelled length of maxLen per clone
// chain. A clone carries the reverse complement of the node it stands in
// for, so the clone itself is always read forward. Each reversing edge is
// processed in its own stored From->To direction exactly once: From stays
// anchored at its existing orientation and To is the side that gets cloned.
// This is a deliberate, documented choice (DESIGN.md) resolving the
// otherwise-symmetric ambiguity of which endpoint of a same-sidedness edge
// "starts" the walk.
func Unfold(g *mutate.Graph, maxLen int) (translate.Set, error) {
	reversing := make([]core.Edge, 0)
	for _, e := range g.Core.Edges() {
		if e.Reverses() {
			reversing = append(reversing, e)
		}
	}

	cloneOf := make(map[core.NodeID]core.NodeID)
	var set translate.Set

	for _, e := range reversing {
		fromTrav := core.Traversal{Node: e.From, Orientation: exitOrientation(e.FromSide().End)}
		toTrav := core.Traversal{Node: e.To, Orientation: entryOrientation(e.ToSide().End)}

		cloneTo, err := ensureClone(g, cloneOf, toTrav.Node, &set)
		if err != nil {
			return nil, err
		}
		if _, err := g.Core.CreateEdge(fromTrav.ExitSide(), core.Traversal{Node: cloneTo, Orientation: core.Forward}.EntrySide()); err != nil {
			return nil, err
		}

		if err := walkReversedRegion(g, cloneOf, toTrav, cloneTo, maxLen, len(mustSeq(g, toTrav.Node)), &set); err != nil {
			return nil, err
		}
	}

	for _, e := range reversing {
		if err := g.Core.DestroyEdgeByID(e.ID); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// walkReversedRegion extends the clone chain rooted at (origin, cloneOrigin)
// across origin's further edges while the accumulated spelled length stays
// within maxLen. A neighbour reached in Reverse orientation gets its own
// clone and a plain forward edge from the current clone; a neighbour reached
// in Forward orientation ends the chain there with an edge straight back to
// the untouched original node.
func walkReversedRegion(g *mutate.Graph, cloneOf map[core.NodeID]core.NodeID, origin core.Traversal, cloneOrigin core.NodeID, maxLen, spelled int, set *translate.Set) error {
	for _, next := range traversalNeighbors(g.Core, origin) {
		cloneOriginTrav := core.Traversal{Node: cloneOrigin, Orientation: core.Forward}

		if next.Orientation == core.Forward {
			if _, err := g.Core.CreateEdge(cloneOriginTrav.ExitSide(), next.EntrySide()); err != nil {
				return err
			}
			continue
		}

		nextLen := len(mustSeq(g, next.Node))
		if spelled+nextLen > maxLen {
			continue
		}

		_, existed := cloneOf[next.Node]
		cloneNext, err := ensureClone(g, cloneOf, next.Node, set)
		if err != nil {
			return err
		}
		if _, err := g.Core.CreateEdge(cloneOriginTrav.ExitSide(), core.Traversal{Node: cloneNext, Orientation: core.Forward}.EntrySide()); err != nil {
			return err
		}
		if !existed {
			if err := walkReversedRegion(g, cloneOf, next, cloneNext, maxLen, spelled+nextLen, set); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensureClone returns the existing clone of original, or creates one
// carrying its reverse complement and records its translation back (spec.md
// §4.5: "Emits a translation clone-id -> (original-id, reversed?)").
func ensureClone(g *mutate.Graph, cloneOf map[core.NodeID]core.NodeID, original core.NodeID, set *translate.Set) (core.NodeID, error) {
	if id, ok := cloneOf[original]; ok {
		return id, nil
	}
	seq := mustSeq(g, original)
	rc := core.ReverseComplement(seq)
	clone, err := g.Core.CreateNode(rc, nil)
	if err != nil {
		return 0, err
	}
	cloneOf[original] = clone.ID
	tr := translate.Translation{
		From: translate.Path{{Node: original, Orientation: core.Reverse, Offset: 0, Length: len(seq)}},
		To:   translate.Path{{Node: clone.ID, Orientation: core.Forward, Offset: 0, Length: len(rc)}},
	}
	*set = append(*set, tr, tr.Reverse())
	return clone.ID, nil
}

func mustSeq(g *mutate.Graph, id core.NodeID) string {
	n, err := g.Core.GetNode(id)
	if err != nil {
		return ""
	}
	return n.Sequence
}
