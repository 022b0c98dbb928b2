// File: methods_edges.go
// Role: Edge lifecycle & queries: CreateEdge/DestroyEdge/HasEdge/GetEdge/
//       Edges/EdgesOf/SidesTo/SidesFrom.
// Determinism: Edges() returns edges sorted by EdgeID asc.
package core

import "sort"

// CreateEdge inserts an edge between side1 and side2. It canonicalizes
// doubly-reversed input, is idempotent (re-creating the same pair returns the
// existing EdgeID), and indexes self-loops once per side touched.
func (g *Graph) CreateEdge(side1, side2 Side) (EdgeID, error) {
	e := sideEdge(side1, side2)
	canon := e.Canonicalize()

	g.muNode.RLock()
	_, okFrom := g.nodes[canon.From]
	_, okTo := g.nodes[canon.To]
	g.muNode.RUnlock()
	if !okFrom || !okTo {
		return 0, ErrDanglingEndpoint
	}

	g.muEdgeSide.Lock()
	defer g.muEdgeSide.Unlock()
	if existing := g.findEdgeLocked(canon.FromSide(), canon.ToSide()); existing != 0 {
		return existing, nil
	}
	canon.ID = g.allocEdgeID()
	ce := canon
	g.edges[ce.ID] = &ce
	g.indexEdge(&ce)
	return ce.ID, nil
}

// sideEdge builds an (uncanonicalized) Edge connecting side1 -> side2 with
// From==side1.Node, To==side2.Node, FromStart = side1 is the start side,
// ToEnd = side2 is the end side.
func sideEdge(side1, side2 Side) Edge {
	return Edge{
		From:      side1.Node,
		FromStart: side1.End == Start,
		To:        side2.Node,
		ToEnd:     side2.End == EndSide,
	}
}

// findEdgeLocked returns the EdgeID of an existing edge connecting the two
// canonical sides, or 0 if none. Caller must hold muEdgeSide.
func (g *Graph) findEdgeLocked(a, b Side) EdgeID {
	for _, adj := range g.sideIndex[a] {
		if adj.Neighbor == b {
			return adj.EdgeID
		}
	}
	return 0
}

// DestroyEdge removes the edge connecting side1 and side2. It is a no-op
// (returns nil) if no such edge exists.
func (g *Graph) DestroyEdge(side1, side2 Side) error {
	e := sideEdge(side1, side2).Canonicalize()
	g.muEdgeSide.Lock()
	defer g.muEdgeSide.Unlock()
	id := g.findEdgeLocked(e.FromSide(), e.ToSide())
	if id == 0 {
		return nil
	}
	cur := g.edges[id]
	g.unindexEdge(cur)
	delete(g.edges, id)
	return nil
}

// DestroyEdgeByID removes the edge with the given id, if present.
func (g *Graph) DestroyEdgeByID(id EdgeID) error {
	g.muEdgeSide.Lock()
	defer g.muEdgeSide.Unlock()
	cur, ok := g.edges[id]
	if !ok {
		return nil
	}
	g.unindexEdge(cur)
	delete(g.edges, id)
	return nil
}

// HasEdge reports whether an edge connects side1 and side2.
func (g *Graph) HasEdge(side1, side2 Side) bool {
	e := sideEdge(side1, side2).Canonicalize()
	g.muEdgeSide.RLock()
	defer g.muEdgeSide.RUnlock()
	return g.findEdgeLocked(e.FromSide(), e.ToSide()) != 0
}

// GetEdge returns a read-only snapshot of the edge with the given id.
func (g *Graph) GetEdge(id EdgeID) (Edge, error) {
	g.muEdgeSide.RLock()
	defer g.muEdgeSide.RUnlock()
	e, ok := g.edges[id]
	if !ok {
		return Edge{}, ErrEdgeNotFound
	}
	return *e, nil
}

// Edges returns every edge, sorted by id ascending.
func (g *Graph) Edges() []Edge {
	g.muEdgeSide.RLock()
	defer g.muEdgeSide.RUnlock()
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.muEdgeSide.RLock()
	defer g.muEdgeSide.RUnlock()
	return len(g.edges)
}

// SideNeighbor describes one edge incident to a side, from that side's
// point of view.
type SideNeighbor struct {
	EdgeID    EdgeID
	Neighbor  Side
	Reversing bool
}

// EdgesOf returns every SideNeighbor incident to side, in the order they were
// indexed. Complexity: O(degree).
func (g *Graph) EdgesOf(side Side) []SideNeighbor {
	g.muEdgeSide.RLock()
	defer g.muEdgeSide.RUnlock()
	adjs := g.sideIndex[side]
	out := make([]SideNeighbor, len(adjs))
	for i, a := range adjs {
		out[i] = SideNeighbor{EdgeID: a.EdgeID, Neighbor: a.Neighbor, Reversing: a.Reversing}
	}
	return out
}

// Degree returns the number of edges incident to side (self-loops count
// once, matching the side index's single-entry self-loop convention).
func (g *Graph) Degree(side Side) int {
	g.muEdgeSide.RLock()
	defer g.muEdgeSide.RUnlock()
	return len(g.sideIndex[side])
}
