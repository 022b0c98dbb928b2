// File: methods_nodes.go
// Role: Node lifecycle & queries: AddNode/CreateNode/DestroyNode/GetNode/
//       Nodes/NodeCount/SwapNodeID/CompactIDs.
// Determinism: Nodes() returns nodes sorted by NodeID asc.
package core

// AddNode inserts node into the store. It is idempotent by id: re-adding a
// node with the same id and identical content is a no-op; adding a different
// node at an id already in use returns ErrNodeExists. Fails with ErrZeroID if
// node.ID is zero.
func (g *Graph) AddNode(node Node) error {
	if node.ID == 0 {
		return ErrZeroID
	}
	g.muNode.Lock()
	defer g.muNode.Unlock()
	if existing, ok := g.nodes[node.ID]; ok {
		if *existing == node {
			return nil
		}
		return ErrNodeExists
	}
	cp := node
	g.nodes[node.ID] = &cp
	g.bumpNodeWatermark(node.ID)
	return nil
}

// CreateNode allocates a fresh id (one past the highest id the graph has
// held; ids of destroyed nodes are not reused) when id is nil, or uses the
// supplied id. Returns the created Node by value.
func (g *Graph) CreateNode(seq string, id *NodeID) (Node, error) {
	g.muNode.Lock()
	defer g.muNode.Unlock()
	var nid NodeID
	if id != nil {
		if *id == 0 {
			return Node{}, ErrZeroID
		}
		if _, ok := g.nodes[*id]; ok {
			return Node{}, ErrNodeExists
		}
		nid = *id
		g.bumpNodeWatermark(nid)
	} else {
		nid = g.allocNodeID()
		for {
			if _, ok := g.nodes[nid]; !ok {
				break
			}
			nid = g.allocNodeID()
		}
	}
	n := Node{ID: nid, Sequence: seq}
	g.nodes[nid] = &n
	return n, nil
}

// GetNode returns a read-only snapshot of the node with the given id.
func (g *Graph) GetNode(id NodeID) (Node, error) {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, ErrNodeNotFound
	}
	return *n, nil
}

// HasNode reports whether id is present.
func (g *Graph) HasNode(id NodeID) bool {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// SetNodeSequence overwrites the sequence of an existing node (used by
// mutate when a node's content must change in place, e.g. during bluntify).
func (g *Graph) SetNodeSequence(id NodeID, seq string) error {
	g.muNode.Lock()
	defer g.muNode.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return ErrNodeNotFound
	}
	n.Sequence = seq
	return nil
}

// Nodes returns every node, sorted by id ascending.
func (g *Graph) Nodes() []Node {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	out := make([]Node, 0, len(g.nodes))
	for _, id := range g.sortedNodeIDs() {
		out = append(out, *g.nodes[id])
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	return len(g.nodes)
}

// DestroyNode removes the node, all edges incident to either of its sides,
// and returns the removed edges so the caller (mutate.Graph) can drop the
// path mappings that referenced them. It does not touch the path index
// itself: core has no notion of paths.
func (g *Graph) DestroyNode(id NodeID) ([]Edge, error) {
	g.muNode.Lock()
	defer g.muNode.Unlock()
	if _, ok := g.nodes[id]; !ok {
		return nil, ErrNodeNotFound
	}
	delete(g.nodes, id)

	g.muEdgeSide.Lock()
	defer g.muEdgeSide.Unlock()
	var removed []Edge
	for _, end := range [2]End{Start, EndSide} {
		side := Side{Node: id, End: end}
		for _, a := range g.sideIndex[side] {
			if e, ok := g.edges[a.EdgeID]; ok {
				removed = append(removed, *e)
			}
		}
	}
	seen := make(map[EdgeID]bool, len(removed))
	for _, e := range removed {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		if cur, ok := g.edges[e.ID]; ok {
			g.unindexEdge(cur)
			delete(g.edges, e.ID)
		}
	}
	// de-dup removed (self-loops produce the same edge from both sides)
	uniq := make([]Edge, 0, len(seen))
	added := make(map[EdgeID]bool, len(seen))
	for _, e := range removed {
		if !added[e.ID] {
			added[e.ID] = true
			uniq = append(uniq, e)
		}
	}
	return uniq, nil
}

// SwapNodeID renames a node's id in place, preserving all edges. It fails if
// newID is already in use. Callers holding edges/paths referencing oldID must
// rewrite their own indexes (core only rewrites its own catalogue and side
// index).
func (g *Graph) SwapNodeID(oldID, newID NodeID) error {
	if newID == 0 {
		return ErrZeroID
	}
	g.muNode.Lock()
	defer g.muNode.Unlock()
	n, ok := g.nodes[oldID]
	if !ok {
		return ErrNodeNotFound
	}
	if oldID == newID {
		return nil
	}
	if _, exists := g.nodes[newID]; exists {
		return ErrIDInUse
	}
	n.ID = newID
	g.nodes[newID] = n
	delete(g.nodes, oldID)
	g.bumpNodeWatermark(newID)

	g.muEdgeSide.Lock()
	defer g.muEdgeSide.Unlock()
	for _, end := range [2]End{Start, EndSide} {
		oldSide := Side{Node: oldID, End: end}
		newSide := Side{Node: newID, End: end}
		adjs := g.sideIndex[oldSide]
		delete(g.sideIndex, oldSide)
		if len(adjs) > 0 {
			g.sideIndex[newSide] = adjs
		}
		for _, a := range adjs {
			if e, ok := g.edges[a.EdgeID]; ok {
				if e.From == oldID {
					e.From = newID
				}
				if e.To == oldID {
					e.To = newID
				}
			}
		}
		// fix up neighbor-side references that pointed at oldSide from
		// other nodes (self-loops already rewritten above via e.From/e.To).
		for side, lst := range g.sideIndex {
			if side == newSide {
				continue
			}
			for i := range lst {
				if lst[i].Neighbor == oldSide {
					lst[i].Neighbor = newSide
				}
			}
		}
	}
	return nil
}

// CompactIDs assigns ids 1..N to nodes in ascending order of their current
// id, rewriting all edges and invoking remap for every changed id so callers
// (mutate.Graph) can rewrite path mappings in the same pass. Must be run
// single-threaded (spec.md §5).
func (g *Graph) CompactIDs(remap func(old, new NodeID)) {
	g.muNode.Lock()
	defer g.muNode.Unlock()
	ids := g.sortedNodeIDs()
	// Build old->new first so we can apply without id collisions mid-flight:
	// stage into a fresh map instead of mutating in place.
	newNodes := make(map[NodeID]*Node, len(ids))
	mapping := make(map[NodeID]NodeID, len(ids))
	for i, old := range ids {
		newID := NodeID(i + 1)
		mapping[old] = newID
		n := g.nodes[old]
		n.ID = newID
		newNodes[newID] = n
	}
	g.nodes = newNodes
	g.nextNodeID = uint64(len(ids))

	g.muEdgeSide.Lock()
	defer g.muEdgeSide.Unlock()
	newSideIndex := make(map[Side][]sideAdj, len(g.sideIndex))
	for _, e := range g.edges {
		if nf, ok := mapping[e.From]; ok {
			e.From = nf
		}
		if nt, ok := mapping[e.To]; ok {
			e.To = nt
		}
	}
	for side, lst := range g.sideIndex {
		newSide := side
		if nn, ok := mapping[side.Node]; ok {
			newSide = Side{Node: nn, End: side.End}
		}
		newLst := make([]sideAdj, len(lst))
		for i, a := range lst {
			na := a
			if nn, ok := mapping[a.Neighbor.Node]; ok {
				na.Neighbor = Side{Node: nn, End: a.Neighbor.End}
			}
			newLst[i] = na
		}
		newSideIndex[newSide] = newLst
	}
	g.sideIndex = newSideIndex

	if remap != nil {
		for old, new := range mapping {
			if old != new {
				remap(old, new)
			}
		}
	}
}
