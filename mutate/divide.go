// File: divide.go
// Role: Node division (spec.md §4.3): cutting a node at sorted offsets,
//       rewiring edges to the outer pieces, and dividing every path mapping
//       that touches the node.
package mutate

import (
	"errors"
	"sort"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/pathidx"
)

// ErrNoOffsets indicates DivideNode was called with an empty offset list.
var ErrNoOffsets = errors.New("mutate: divide requires at least one offset")

// DivideNode splits node id into len(offsets)+1 new nodes at the given
// forward-strand offsets (each strictly between 0 and the node's length).
// Edges on the node's start side move to the first piece's start side; edges
// on its end side move to the last piece's end side; pieces are chained by
// forward end->start edges. Every path mapping on the node is divided at the
// offsets that fall strictly inside its span and reinserted in place. The
// original node is destroyed. Returns the new node ids in left-to-right
// (low-to-high forward coordinate) order.
func (g *Graph) DivideNode(id core.NodeID, offsets []int) ([]core.NodeID, error) {
	if len(offsets) == 0 {
		return nil, ErrNoOffsets
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.Core.GetNode(id)
	if err != nil {
		return nil, err
	}
	seqLen := len(n.Sequence)

	cuts := append([]int(nil), offsets...)
	sort.Ints(cuts)
	for i, p := range cuts {
		if p <= 0 || p >= seqLen {
			return nil, core.ErrDanglingEndpoint // structural: offset out of range (spec.md §7)
		}
		if i > 0 && p == cuts[i-1] {
			return nil, core.ErrDanglingEndpoint
		}
	}

	bounds := make([]int, 0, len(cuts)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, cuts...)
	bounds = append(bounds, seqLen)

	startSide := core.Side{Node: id, End: core.Start}
	endSide := core.Side{Node: id, End: core.EndSide}
	startAdj := g.Core.EdgesOf(startSide)
	endAdj := g.Core.EdgesOf(endSide)
	mappingsOnNode := g.Paths.OfNode(id)

	if _, err := g.Core.DestroyNode(id); err != nil {
		return nil, err
	}

	pieceCount := len(bounds) - 1
	pieces := make([]core.NodeID, pieceCount)
	for i := 0; i < pieceCount; i++ {
		seg := n.Sequence[bounds[i]:bounds[i+1]]
		nn, err := g.Core.CreateNode(seg, nil)
		if err != nil {
			return nil, err
		}
		pieces[i] = nn.ID
	}
	for i := 0; i < pieceCount-1; i++ {
		if _, err := g.Core.CreateEdge(core.Side{Node: pieces[i], End: core.EndSide}, core.Side{Node: pieces[i+1], End: core.Start}); err != nil {
			return nil, err
		}
	}

	p0Start := core.Side{Node: pieces[0], End: core.Start}
	pkEnd := core.Side{Node: pieces[pieceCount-1], End: core.EndSide}

	rewire := func(adj []core.SideNeighbor, outer core.Side, seen map[core.EdgeID]bool) error {
		for _, a := range adj {
			if seen[a.EdgeID] {
				continue
			}
			seen[a.EdgeID] = true
			neighbor := a.Neighbor
			switch neighbor {
			case startSide:
				neighbor = p0Start
			case endSide:
				neighbor = pkEnd
			}
			if _, err := g.Core.CreateEdge(outer, neighbor); err != nil {
				return err
			}
		}
		return nil
	}
	seen := make(map[core.EdgeID]bool, len(startAdj)+len(endAdj))
	if err := rewire(startAdj, p0Start, seen); err != nil {
		return nil, err
	}
	if err := rewire(endAdj, pkEnd, seen); err != nil {
		return nil, err
	}

	for _, mv := range mappingsOnNode {
		if err := g.divideMappingAcrossPieces(mv, bounds, pieces); err != nil {
			return nil, err
		}
	}

	g.Progress.Milestone("divide_node", "node", id, "pieces", len(pieces))
	return pieces, nil
}

// divideMappingAcrossPieces cuts one mapping at every bound that falls
// strictly inside its forward-coordinate span and reassigns the resulting
// pieces to the node piece covering that sub-range.
func (g *Graph) divideMappingAcrossPieces(mv pathidx.MappingView, bounds []int, pieces []core.NodeID) error {
	length := 0
	for _, e := range mv.Edits {
		length += e.FromLen
	}
	spanLo, spanHi := mv.Pos.Offset, mv.Pos.Offset+length

	// Collect bounds strictly inside the mapping's span, in the order the
	// mapping is *read* (ascending forward coordinate for Forward, descending
	// for Reverse), each expressed as a reading-order cut distance from the
	// still-uncut remainder's current start.
	var insideAsc []int
	for _, b := range bounds {
		if b > spanLo && b < spanHi {
			insideAsc = append(insideAsc, b)
		}
	}
	if len(insideAsc) == 0 {
		return g.reassignMappingToPiece(mv.Handle, mv.Pos.Offset, bounds, pieces)
	}

	h := mv.Handle
	var allHandles []pathidx.Handle

	if mv.Pos.Orientation == core.Reverse {
		// Reading proceeds high->low forward coordinate; process cuts from
		// the high end down, shrinking the still-uncut remainder's upper
		// bound each time.
		remainingHi := spanHi
		for _, b := range reverseInts(insideAsc) {
			left, right, err := g.Paths.DivideMapping(h, remainingHi-b)
			if err != nil {
				return err
			}
			allHandles = append(allHandles, left)
			h = right
			remainingHi = b
		}
	} else {
		remainingLo := spanLo
		for _, b := range insideAsc {
			left, right, err := g.Paths.DivideMapping(h, b-remainingLo)
			if err != nil {
				return err
			}
			allHandles = append(allHandles, left)
			h = right
			remainingLo = b
		}
	}
	allHandles = append(allHandles, h)

	for _, hv := range allHandles {
		cur, err := g.Paths.Get(hv)
		if err != nil {
			return err
		}
		if err := g.reassignMappingToPiece(hv, cur.Pos.Offset, bounds, pieces); err != nil {
			return err
		}
	}
	return nil
}

func reverseInts(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

// reassignMappingToPiece finds which piece's forward range [bounds[i],
// bounds[i+1]) contains offset and reassigns the mapping to that piece,
// translating its forward Offset into the piece's own local coordinates.
func (g *Graph) reassignMappingToPiece(h pathidx.Handle, offset int, bounds []int, pieces []core.NodeID) error {
	for i := 0; i < len(pieces); i++ {
		if offset >= bounds[i] && offset < bounds[i+1] {
			return g.Paths.ReassignNode(h, pieces[i], offset-bounds[i])
		}
	}
	// offset == last bound (zero-length trailing mapping edge case)
	last := len(pieces) - 1
	return g.Paths.ReassignNode(h, pieces[last], bounds[last+1]-bounds[last])
}
