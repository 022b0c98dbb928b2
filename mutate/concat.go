// File: concat.go
// Role: Simple-component concatenation ("unchop", spec.md §4.3): fusing a
//       chain of nodes with in/out degree <= 1 into a single node, and
//       Unchop, which finds and fuses every such chain of length >= 2.
package mutate

import (
	"sort"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/pathidx"
)

// Concatenate fuses an ordered chain of nodes — each internal node having
// exactly one predecessor and one successor, every path touching one member
// touching all of them with the same traversal count and orientation — into
// a single node. It returns ErrNotSimpleComponent if the chain fails that
// check. The chain's own nodes are destroyed; the new node's id is returned.
func (g *Graph) Concatenate(chain []core.NodeID) (core.NodeID, error) {
	if len(chain) < 2 {
		return 0, ErrNotSimpleComponent
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.concatenateLocked(chain)
}

func (g *Graph) concatenateLocked(chain []core.NodeID) (core.NodeID, error) {
	for i := 0; i < len(chain)-1; i++ {
		a, b := chain[i], chain[i+1]
		aEnd := core.Side{Node: a, End: core.EndSide}
		bStart := core.Side{Node: b, End: core.Start}
		if g.Core.Degree(aEnd) != 1 || g.Core.Degree(bStart) != 1 {
			return 0, ErrNotSimpleComponent
		}
		if !g.Core.HasEdge(aEnd, bStart) {
			return 0, ErrNotSimpleComponent
		}
	}

	var seq []byte
	for _, id := range chain {
		n, err := g.Core.GetNode(id)
		if err != nil {
			return 0, err
		}
		seq = append(seq, n.Sequence...)
	}

	splices, err := g.planPathFusions(chain)
	if err != nil {
		return 0, err
	}

	startAdj := g.Core.EdgesOf(core.Side{Node: chain[0], End: core.Start})
	endAdj := g.Core.EdgesOf(core.Side{Node: chain[len(chain)-1], End: core.EndSide})

	for _, id := range chain {
		if _, err := g.Core.DestroyNode(id); err != nil {
			return 0, err
		}
	}

	nn, err := g.Core.CreateNode(string(seq), nil)
	if err != nil {
		return 0, err
	}
	newStart := core.Side{Node: nn.ID, End: core.Start}
	newEnd := core.Side{Node: nn.ID, End: core.EndSide}
	for _, a := range startAdj {
		if _, err := g.Core.CreateEdge(newStart, a.Neighbor); err != nil {
			return 0, err
		}
	}
	for _, a := range endAdj {
		if _, err := g.Core.CreateEdge(newEnd, a.Neighbor); err != nil {
			return 0, err
		}
	}

	for _, sp := range splices {
		pos := pathidx.Position{Node: nn.ID, Orientation: sp.orientation, Offset: 0}
		if sp.hasPrev {
			if _, err := g.Paths.InsertMapping(sp.prev, pos, sp.edits, sp.rank); err != nil {
				return 0, err
			}
		} else {
			if _, err := g.Paths.PrependMapping(sp.path, pos, sp.edits); err != nil {
				return 0, err
			}
		}
	}

	return nn.ID, nil
}

// pathFusion is the plan for re-inserting one path's chain-spanning run as a
// single fused mapping, captured before the originals are removed.
type pathFusion struct {
	path        string
	orientation core.Orientation
	edits       []pathidx.Edit
	rank        int64
	prev        pathidx.Handle
	hasPrev     bool
}

// planPathFusions collects, for every path visiting any node of chain, its
// per-node mappings, verifies each touches every member exactly once with a
// consistent orientation and that the run is contiguous in path order,
// concatenates their edits in reading order, captures the splice point, and
// removes the originals.
func (g *Graph) planPathFusions(chain []core.NodeID) ([]pathFusion, error) {
	byPath := make(map[string][]pathidx.MappingView)
	for _, id := range chain {
		for _, mv := range g.Paths.OfNode(id) {
			byPath[mv.Path] = append(byPath[mv.Path], mv)
		}
	}

	out := make([]pathFusion, 0, len(byPath))
	for path, views := range byPath {
		if len(views) != len(chain) {
			return nil, ErrNotSimpleComponent
		}
		orientation := views[0].Pos.Orientation
		byNode := make(map[core.NodeID]pathidx.MappingView, len(views))
		for _, v := range views {
			if v.Pos.Orientation != orientation {
				return nil, ErrOrientationMismatch
			}
			byNode[v.Pos.Node] = v
		}

		order := chain
		if orientation == core.Reverse {
			order = reverseNodes(chain)
		}
		var edits []pathidx.Edit
		ordered := make([]pathidx.MappingView, len(order))
		for i, id := range order {
			v, ok := byNode[id]
			if !ok {
				return nil, ErrNotSimpleComponent
			}
			ordered[i] = v
			edits = append(edits, v.Edits...)
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].Rank < ordered[j].Rank })
		first, last := ordered[0], ordered[len(ordered)-1]
		for i := 1; i < len(ordered); i++ {
			prevHandle, ok := g.Paths.Prev(ordered[i].Handle)
			if !ok || prevHandle != ordered[i-1].Handle {
				return nil, ErrNotSimpleComponent
			}
		}

		prev, hasPrev := g.Paths.Prev(first.Handle)
		rank := last.Rank

		for _, v := range byNode {
			if _, err := g.Paths.RemoveMapping(v.Handle); err != nil {
				return nil, err
			}
		}
		out = append(out, pathFusion{path: path, orientation: orientation, edits: edits, rank: rank, prev: prev, hasPrev: hasPrev})
	}
	return out, nil
}

func reverseNodes(in []core.NodeID) []core.NodeID {
	out := make([]core.NodeID, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

// Unchop finds every maximal simple component of two or more nodes and fuses
// each with Concatenate, returning the number of fusions performed. Callers
// normally follow with CompactRanks per affected path (Normalize does this).
func (g *Graph) Unchop() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	fused := 0
	for {
		chain := g.findSimpleComponentLocked()
		if chain == nil {
			break
		}
		if _, err := g.concatenateLocked(chain); err != nil {
			return fused, err
		}
		fused++
	}
	return fused, nil
}

// findSimpleComponentLocked returns one chain of >=2 nodes with in/out
// degree 1 on the internal link, or nil if none remain. Deterministic: scans
// nodes in ascending id order and extends forward only from the first
// eligible start, so members before that start are left for a later call
// (Unchop loops until none remain).
func (g *Graph) findSimpleComponentLocked() []core.NodeID {
	nodes := g.Core.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	visited := make(map[core.NodeID]bool)
	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		endSide := core.Side{Node: n.ID, End: core.EndSide}
		adj := g.Core.EdgesOf(endSide)
		if len(adj) != 1 || adj[0].Reversing {
			continue
		}
		chain := []core.NodeID{n.ID}
		cur := n.ID
		for {
			curEnd := core.Side{Node: cur, End: core.EndSide}
			adj := g.Core.EdgesOf(curEnd)
			if len(adj) != 1 || adj[0].Reversing {
				break
			}
			next := adj[0].Neighbor
			if next.End != core.Start {
				break
			}
			if g.Core.Degree(next) != 1 {
				break
			}
			if next.Node == cur {
				break // self-loop guard
			}
			chain = append(chain, next.Node)
			cur = next.Node
		}
		if len(chain) >= 2 {
			for _, id := range chain {
				visited[id] = true
			}
			return chain
		}
		visited[n.ID] = true
	}
	return nil
}
