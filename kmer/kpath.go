// File: kpath.go
// Role: k-path construction (spec.md §4.6 "K-path of a node"). Grounded on
//       dfs/dfs.go's neighbor-filter hook (WithNeighborFilter-equivalent),
//       generalized here to "only co-traversed edges" for path-only mode,
//       and run in both directions from the anchor to build prev-walks and
//       next-walks whose Cartesian product is the node's k-path set.
package kmer

import (
	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/pathidx"
)

// Filter decides whether a walk may cross from t into next. PathOnly builds
// one that only allows edges co-traversed by a named path.
type Filter func(t, next core.Traversal) bool

// PathOnly restricts extension to edges that some path in ix visits
// immediately after visiting t in the matching orientation.
func PathOnly(ix *pathidx.Index) Filter {
	return func(t, next core.Traversal) bool {
		return coTraversed(ix, t, next)
	}
}

func coTraversed(ix *pathidx.Index, from, to core.Traversal) bool {
	froms := ix.NodePathTraversals(from.Node)
	tos := ix.NodePathTraversals(to.Node)
	for _, f := range froms {
		if f.Orientation != from.Orientation {
			continue
		}
		for _, tt := range tos {
			if tt.Path == f.Path && tt.Orientation == to.Orientation && tt.Rank == f.Rank+1 {
				return true
			}
		}
	}
	return false
}

// extension is one directional walk away from the anchor: steps lists the
// traversals crossed, ordered so that reading steps left-to-right then
// continuing into the anchor (for a backward extension) or reading the
// anchor then steps left-to-right (for a forward extension) spells
// contiguous sequence. length is the sum of steps' node lengths.
type extension struct {
	steps  []core.Traversal
	length int
}

// KPath is one walk through the anchor node: a backward extension, the
// anchor itself, and a forward extension, concatenated into one ordered
// traversal list with cumulative offsets so any global position can be
// mapped back to a (node, forward-strand offset) pair.
type KPath struct {
	Anchor   core.Traversal
	Steps    []core.Traversal
	Spelled  string
	AnchorAt int // global offset the anchor's own span begins at
}

// BuildKPaths enumerates every k-path centred on anchor: every combination
// of a backward extension and a forward extension, each extended until it
// adds at least minLen minus the anchor's length, bounded by maxEdges
// edge-crossings in each direction (every branch point with
// out-degree/in-degree > 1 costs one). An extension that runs out of
// neighbours or budget first is kept as it is, so a k-path can be shorter
// than minLen. filter, if non-nil, additionally restricts which edges a walk
// may cross.
func BuildKPaths(g *core.Graph, anchor core.Traversal, minLen, maxEdges int, filter Filter) ([]KPath, error) {
	anchorLen := nodeLength(g, anchor.Node)
	backs := extend(g, anchor, minLen-anchorLen, maxEdges, filter, predecessors, true)
	fronts := extend(g, anchor, minLen-anchorLen, maxEdges, filter, successors, false)

	var out []KPath
	for _, b := range backs {
		for _, f := range fronts {
			steps := make([]core.Traversal, 0, len(b.steps)+1+len(f.steps))
			steps = append(steps, b.steps...)
			steps = append(steps, anchor)
			steps = append(steps, f.steps...)

			spelled, err := spell(g, steps)
			if err != nil {
				return nil, err
			}
			out = append(out, KPath{Anchor: anchor, Steps: steps, Spelled: spelled, AnchorAt: b.length})
		}
	}
	return out, nil
}

// extend walks away from anchor via next (predecessors for backward,
// successors for forward) while remaining accumulates above zero, branching
// once per distinct allowed neighbour and charging one edge for any branch
// point with more than one allowed neighbour. backward controls the order
// steps are appended in, so a backward extension's steps read "furthest
// from anchor first."
func extend(g *core.Graph, from core.Traversal, remaining, maxEdges int, filter Filter, next func(*core.Graph, core.Traversal) []core.Traversal, backward bool) []extension {
	if remaining <= 0 {
		return []extension{{}}
	}

	candidates := next(g, from)
	if filter != nil {
		allowed := candidates[:0:0]
		for _, c := range candidates {
			if backward {
				if filter(c, from) {
					allowed = append(allowed, c)
				}
			} else if filter(from, c) {
				allowed = append(allowed, c)
			}
		}
		candidates = allowed
	}
	if len(candidates) == 0 {
		return []extension{{}}
	}

	cost := 0
	if len(candidates) > 1 {
		cost = 1
	}
	if cost > maxEdges {
		return []extension{{}}
	}

	var out []extension
	for _, c := range candidates {
		cLen := nodeLength(g, c.Node)
		rest := extend(g, c, remaining-cLen, maxEdges-cost, filter, next, backward)
		for _, r := range rest {
			var steps []core.Traversal
			if backward {
				steps = append(append([]core.Traversal{}, r.steps...), c)
			} else {
				steps = append([]core.Traversal{c}, r.steps...)
			}
			out = append(out, extension{steps: steps, length: r.length + cLen})
		}
	}
	return out
}

func spell(g *core.Graph, steps []core.Traversal) (string, error) {
	var out []byte
	for _, t := range steps {
		s, err := g.Read(t)
		if err != nil {
			return "", err
		}
		out = append(out, s...)
	}
	return string(out), nil
}

func nodeLength(g *core.Graph, id core.NodeID) int {
	n, err := g.GetNode(id)
	if err != nil {
		return 0
	}
	return n.Length()
}
