// File: traversal.go
// Role: the shared (node, orientation)-as-vertex adjacency view that unfold,
//       scc, and topo all walk — the bidirected-to-directed double cover
//       spec.md §4.5 describes ("strongly connected components... treating
//       each orientation as a separate vertex").
package dagify

import "github.com/lvlath-labs/vgraph/core"

// entryOrientation returns the orientation whose EntrySide is end.
func entryOrientation(end core.End) core.Orientation {
	if end == core.EndSide {
		return core.Reverse
	}
	return core.Forward
}

// exitOrientation returns the orientation whose ExitSide is end.
func exitOrientation(end core.End) core.Orientation {
	if end == core.EndSide {
		return core.Forward
	}
	return core.Reverse
}

// traversalNeighbors returns every traversal reachable by crossing one edge
// out of t's exit side, oriented the way arriving at each neighbour's side
// implies. Because core.Graph indexes every edge on both endpoints'
// sideIndex entries, this single lookup covers both directions a bidirected
// edge can be crossed.
func traversalNeighbors(g *core.Graph, t core.Traversal) []core.Traversal {
	adjs := g.EdgesOf(t.ExitSide())
	out := make([]core.Traversal, len(adjs))
	for i, a := range adjs {
		out[i] = core.Traversal{Node: a.Neighbor.Node, Orientation: entryOrientation(a.Neighbor.End)}
	}
	return out
}
