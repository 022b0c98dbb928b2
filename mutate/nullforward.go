// File: nullforward.go
// Role: Null-node forwarding (spec.md §4.3): every empty-sequence node is
//       replaced by direct edges between the cross-product of its left and
//       right neighbours, then destroyed along with its mappings (an
//       empty-sequence node carries no path content worth preserving).
package mutate

import "github.com/lvlath-labs/vgraph/core"

// ForwardNullNodes finds every node with an empty sequence, wires its left
// neighbours directly to its right neighbours (preserving relative
// orientation), and destroys it. Returns the number of nodes forwarded.
func (g *Graph) ForwardNullNodes() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	forwarded := 0
	for {
		id := g.findNullNodeLocked()
		if id == 0 {
			break
		}
		if err := g.forwardOneNullNodeLocked(id); err != nil {
			return forwarded, err
		}
		forwarded++
	}
	return forwarded, nil
}

func (g *Graph) findNullNodeLocked() core.NodeID {
	for _, n := range g.Core.Nodes() {
		if n.Length() == 0 {
			return n.ID
		}
	}
	return 0
}

func (g *Graph) forwardOneNullNodeLocked(id core.NodeID) error {
	left := g.Core.EdgesOf(core.Side{Node: id, End: core.Start})
	right := g.Core.EdgesOf(core.Side{Node: id, End: core.EndSide})

	for _, l := range left {
		for _, r := range right {
			// The null node's start side touched l.Neighbor and its end side
			// touched r.Neighbor; joining those two sides directly keeps the
			// orientation each neighbour was left and entered in.
			if _, err := g.Core.CreateEdge(l.Neighbor, r.Neighbor); err != nil {
				return err
			}
		}
	}

	g.destroyMappingsOfNode(id)
	_, err := g.Core.DestroyNode(id)
	return err
}
