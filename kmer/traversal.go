// File: traversal.go
// Role: this package's own (node, orientation)-as-vertex adjacency helpers,
//       grounded the same way as dagify/traversal.go but kept local to this
//       package rather than shared, since kmer additionally needs the
//       backward (predecessor) direction dagify's walks never use.
package kmer

import "github.com/lvlath-labs/vgraph/core"

func entryOrientation(end core.End) core.Orientation {
	if end == core.EndSide {
		return core.Reverse
	}
	return core.Forward
}

func exitOrientation(end core.End) core.Orientation {
	if end == core.EndSide {
		return core.Forward
	}
	return core.Reverse
}

// successors returns every traversal reachable by crossing one edge out of
// t's exit side.
func successors(g *core.Graph, t core.Traversal) []core.Traversal {
	adjs := g.EdgesOf(t.ExitSide())
	out := make([]core.Traversal, len(adjs))
	for i, a := range adjs {
		out[i] = core.Traversal{Node: a.Neighbor.Node, Orientation: entryOrientation(a.Neighbor.End)}
	}
	return out
}

// predecessors returns every traversal that would reach t by crossing one
// edge into t's entry side — the mirror of successors, used for prev-walks.
func predecessors(g *core.Graph, t core.Traversal) []core.Traversal {
	adjs := g.EdgesOf(t.EntrySide())
	out := make([]core.Traversal, len(adjs))
	for i, a := range adjs {
		out[i] = core.Traversal{Node: a.Neighbor.Node, Orientation: exitOrientation(a.Neighbor.End)}
	}
	return out
}
