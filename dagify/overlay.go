// File: overlay.go
// Role: the C7 DAGifier's top-level entry point, stacking Unfold, SCC
//       unrolling, and bidirected Kahn orientation into one pass and folding
//       the two translation sets (Unfold's and Unroll's; Topo emits none)
//       into one via translate.Overlay (spec.md
//       §4.5 "Overlay translation"). Grounded on matrix/ops/inverse.go's
//       "compose two transforms into one" shape, adapted from matrix
//       composition to translation-set composition.
package dagify

import (
	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/translate"
)

// Result carries everything Dagify produces: the combined lift-over back to
// the pre-dagify graph, and the final traversal order fixing each node's
// reading orientation in the output DAG.
type Result struct {
	Translation translate.Set
	Order       []core.Traversal
}

// Dagify runs the full C7 pipeline against g in place: Unfold removes every
// strand-crossing edge by cloning the reversed region it reaches, up to
// maxUnfoldLen of spelled sequence per clone chain; the strongly connected
// components of what remains are unrolled to unrollTarget total sequence
// length, capped at unrollCap per component; and the result is oriented into
// a single topological order via Topo. Unfold's and Unroll's translations
// are folded into one (Topo adds none), so the returned Translation always maps directly back to
// g's original node coordinates regardless of how many times a region was
// re-cloned along the way.
func Dagify(g *mutate.Graph, maxUnfoldLen, unrollTarget, unrollCap int, topoOpts ...TopoOption) (Result, error) {
	unfoldSet, err := Unfold(g, maxUnfoldLen)
	if err != nil {
		return Result{}, err
	}

	components := StronglyConnectedComponents(g.Core)
	unrollSet, err := Unroll(g, components, unrollTarget, unrollCap)
	if err != nil {
		return Result{}, err
	}

	order, err := Topo(g, topoOpts...)
	if err != nil {
		return Result{}, err
	}

	return Result{Translation: overlaySets(unfoldSet, unrollSet), Order: order}, nil
}

// overlaySets folds a later translation set (over, e.g. Unroll's) onto an
// earlier one (under, e.g. Unfold's): any entry in over whose From node is
// itself a node that under created gets overlaid through under so it maps
// straight back to under's own From coordinates; every other entry, from
// either set, passes through unchanged.
func overlaySets(under, over translate.Set) translate.Set {
	underByTo := under.ByToNode()
	usedAsBase := make(map[core.NodeID]bool, len(over))

	final := make(translate.Set, 0, len(under)+len(over))
	for _, o := range over {
		if len(o.From) == 0 {
			continue
		}
		base := o.From[0].Node
		if u, ok := underByTo[base]; ok {
			final = append(final, translate.Overlay(o, u))
			usedAsBase[base] = true
			continue
		}
		final = append(final, o)
	}

	for _, u := range under {
		if len(u.To) == 0 || !usedAsBase[u.To[0].Node] {
			final = append(final, u)
		}
	}
	return final
}
