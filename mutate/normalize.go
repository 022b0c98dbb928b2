// File: normalize.go
// Role: The fixpoint normalization pipeline (spec.md §4.3): flip
//       doubly-reversed edges -> unchop -> simplify to-siblings -> compact
//       ranks -> unchop -> compact ranks, repeated until nothing changes or
//       an iteration bound is hit.
package mutate

import "github.com/lvlath-labs/vgraph/core"

// MaxNormalizeIterations bounds the fixpoint loop so a pathological input
// cannot spin forever.
const MaxNormalizeIterations = 64

// Normalize runs the pipeline to a fixpoint (or MaxNormalizeIterations,
// whichever comes first) and returns the number of iterations performed.
func (g *Graph) Normalize() (int, error) {
	for i := 0; i < MaxNormalizeIterations; i++ {
		changed := false

		flipped, err := g.flipDoublyReversedLocked()
		if err != nil {
			return i, err
		}
		changed = changed || flipped > 0

		n, err := g.Unchop()
		if err != nil {
			return i, err
		}
		changed = changed || n > 0

		s, err := g.SimplifyToSiblings()
		if err != nil {
			return i, err
		}
		changed = changed || s > 0

		if err := g.compactAllRanksLocked(); err != nil {
			return i, err
		}

		n2, err := g.Unchop()
		if err != nil {
			return i, err
		}
		changed = changed || n2 > 0

		if err := g.compactAllRanksLocked(); err != nil {
			return i, err
		}

		if !changed {
			g.Progress.Milestone("normalize_converged", "iterations", i+1)
			return i + 1, nil
		}
	}
	g.Progress.Milestone("normalize_hit_iteration_cap", "iterations", MaxNormalizeIterations)
	return MaxNormalizeIterations, nil
}

// flipDoublyReversedLocked rewrites every doubly-reversed edge in place to
// its canonical (swapped-endpoints, no-flags) form. core.Graph.CreateEdge
// already canonicalizes on insertion, so a doubly-reversed edge can only
// exist if destroy/recreate sequences produced one directly — this pass is
// the structural belt-and-suspenders §4.3 calls for as the pipeline's first
// stage.
func (g *Graph) flipDoublyReversedLocked() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	flipped := 0
	for _, e := range g.Core.Edges() {
		if !e.DoublyReversed() {
			continue
		}
		canon := e.Canonicalize()
		if err := g.Core.DestroyEdgeByID(e.ID); err != nil {
			return flipped, err
		}
		if _, err := g.Core.CreateEdge(canon.FromSide(), canon.ToSide()); err != nil {
			return flipped, err
		}
		flipped++
	}
	return flipped, nil
}

func (g *Graph) compactAllRanksLocked() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.Paths.Paths() {
		if err := g.Paths.CompactRanks(p.Name); err != nil {
			return err
		}
	}
	return nil
}

// IsValid runs the structural audit described in spec.md §7: every edge
// endpoint present, the side index symmetric with the edge store, and (when
// checkPaths) every path mapping's node present and adjacent mappings
// properly connected.
func (g *Graph) IsValid(checkNodes, checkEdges, checkPaths bool) bool {
	if checkNodes || checkEdges {
		for _, e := range g.Core.Edges() {
			if checkNodes {
				if !g.Core.HasNode(e.From) || !g.Core.HasNode(e.To) {
					return false
				}
			}
			if checkEdges {
				if !g.Core.HasEdge(e.FromSide(), e.ToSide()) {
					return false
				}
			}
		}
	}
	if checkPaths {
		for _, p := range g.Paths.Paths() {
			if !g.pathIsContiguousLocked(p.Name) {
				return false
			}
		}
	}
	return true
}

// pathIsContiguousLocked checks that every adjacent mapping pair of a path
// either has a gap (allowed mid-construction, so not itself a failure) or,
// when "completely represented" (spec.md §3), is backed by a real edge.
func (g *Graph) pathIsContiguousLocked(path string) bool {
	views, err := g.Paths.Mappings(path)
	if err != nil {
		return false
	}
	for i := 0; i < len(views)-1; i++ {
		a, b := views[i], views[i+1]
		if !g.Core.HasNode(a.Pos.Node) || !g.Core.HasNode(b.Pos.Node) {
			return false
		}
		length := 0
		for _, e := range a.Edits {
			length += e.FromLen
		}
		completelyRepresented := a.Pos.Offset+length == nodeLenSafe(g, a.Pos.Node) && b.Pos.Offset == 0
		if !completelyRepresented {
			continue
		}
		exitSide := core.Traversal{Node: a.Pos.Node, Orientation: a.Pos.Orientation}.ExitSide()
		entrySide := core.Traversal{Node: b.Pos.Node, Orientation: b.Pos.Orientation}.EntrySide()
		if !g.Core.HasEdge(exitSide, entrySide) {
			return false
		}
	}
	return true
}

func nodeLenSafe(g *Graph, id core.NodeID) int {
	n, err := g.Core.GetNode(id)
	if err != nil {
		return -1
	}
	return n.Length()
}
