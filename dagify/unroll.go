// File: unroll.go
// Role: SCC unrolling, the cycle-breaking half of the C7 DAGifier (spec.md
//       §4.5 "Dagify (SCC unrolling)"; §8 scenario 5). Grounded on
//       tsp/mst.go's DP-table-over-a-cost-cap idiom (bounding a search by an
//       accumulated budget) for the copy-count decision, and on
//       dfs/topological.go's Gray/Black coloring for the back-edge
//       classification pass within one component.
//
// By the time Unroll runs in the Dagify pipeline, Unfold has already
// removed every strand-crossing edge, so every surviving edge is the
// "common case" (core.Edge.FromStart==false, ToEnd==false) and every SCC's
// Traversals share one orientation. Unroll relies on both facts: it treats
// a component as a plain directed graph over node ids via each edge's
// From/To pair, with no Side bookkeeping needed.
package dagify

import (
	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/translate"
)

// Unroll copies every cyclic component K+1 times, where K is
// ceil(target / the component's total sequence length), at least 1, then
// lowered while K > 1 and (K+1) times that length exceeds lengthCap; with
// K = 1 the two copies may exceed lengthCap. Copy 0 is always the component's
// own original nodes; copies 1..K are fresh clones. Edges internal to the
// component that DFS classifies as tree edges are replicated within each
// copy; edges DFS classifies as back edges are promoted to connect copy i
// to copy i+1, and dropped past the last copy, breaking every cycle.
// Edges between a component and the rest of the graph are left untouched,
// so they continue to reach only copy 0 (spec.md: "preserved from the
// original graph").
func Unroll(g *mutate.Graph, components []Component, target, lengthCap int) (translate.Set, error) {
	var set translate.Set
	for _, c := range components {
		if !c.Cyclic {
			continue
		}
		tr, err := unrollComponent(g, c, target, lengthCap)
		if err != nil {
			return nil, err
		}
		set = append(set, tr...)
	}
	return set, nil
}

func unrollComponent(g *mutate.Graph, c Component, target, lengthCap int) (translate.Set, error) {
	inComp := make(map[core.NodeID]bool, len(c.Nodes))
	for _, n := range c.Nodes {
		inComp[n] = true
	}

	length := 0
	for _, n := range c.Nodes {
		node, err := g.Core.GetNode(n)
		if err != nil {
			return nil, err
		}
		length += node.Length()
	}
	if length == 0 {
		return nil, nil
	}

	k := (target + length - 1) / length
	if k < 1 {
		k = 1
	}
	for k > 1 && (k+1)*length > lengthCap {
		k--
	}

	root := c.Nodes[0]
	for _, n := range c.Nodes {
		if n < root {
			root = n
		}
	}
	back, forward := classifyComponentEdges(g.Core, inComp, root)

	clones := make(map[int]map[core.NodeID]core.NodeID, k)
	var set translate.Set
	copyNode := func(copyIdx int, original core.NodeID) (core.NodeID, error) {
		if copyIdx == 0 {
			return original, nil
		}
		if clones[copyIdx] == nil {
			clones[copyIdx] = make(map[core.NodeID]core.NodeID, len(c.Nodes))
		}
		if id, ok := clones[copyIdx][original]; ok {
			return id, nil
		}
		n, err := g.Core.GetNode(original)
		if err != nil {
			return 0, err
		}
		clone, err := g.Core.CreateNode(n.Sequence, nil)
		if err != nil {
			return 0, err
		}
		clones[copyIdx][original] = clone.ID
		tr := translate.Translation{
			From: translate.Path{{Node: original, Orientation: core.Forward, Offset: 0, Length: n.Length()}},
			To:   translate.Path{{Node: clone.ID, Orientation: core.Forward, Offset: 0, Length: n.Length()}},
		}
		set = append(set, tr, tr.Reverse())
		return clone.ID, nil
	}

	for i := 1; i <= k; i++ {
		for _, e := range forward {
			u, err := copyNode(i, e.From)
			if err != nil {
				return nil, err
			}
			v, err := copyNode(i, e.To)
			if err != nil {
				return nil, err
			}
			if _, err := g.Core.CreateEdge(core.Side{Node: u, End: core.EndSide}, core.Side{Node: v, End: core.Start}); err != nil {
				return nil, err
			}
		}
	}

	for _, e := range back {
		if err := g.Core.DestroyEdgeByID(e.ID); err != nil {
			return nil, err
		}
		for i := 0; i < k; i++ {
			u, err := copyNode(i, e.From)
			if err != nil {
				return nil, err
			}
			v, err := copyNode(i+1, e.To)
			if err != nil {
				return nil, err
			}
			if _, err := g.Core.CreateEdge(core.Side{Node: u, End: core.EndSide}, core.Side{Node: v, End: core.Start}); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}

// classifyComponentEdges runs a DFS from root over edges internal to the
// component, coloring nodes White/Gray/Black; an edge reaching a Gray node
// is a back edge (closes a cycle), everything else is a tree/forward edge.
func classifyComponentEdges(g *core.Graph, inComp map[core.NodeID]bool, root core.NodeID) (back, forward []core.Edge) {
	const white, gray, black = 0, 1, 2
	state := make(map[core.NodeID]int, len(inComp))
	adj := make(map[core.NodeID][]core.Edge)
	for _, e := range g.Edges() {
		if inComp[e.From] && inComp[e.To] {
			adj[e.From] = append(adj[e.From], e)
		}
	}

	var visit func(u core.NodeID)
	visit = func(u core.NodeID) {
		state[u] = gray
		for _, e := range adj[u] {
			switch state[e.To] {
			case white:
				forward = append(forward, e)
				visit(e.To)
			case gray:
				back = append(back, e)
			case black:
				forward = append(forward, e)
			}
		}
		state[u] = black
	}
	visit(root)
	return back, forward
}
