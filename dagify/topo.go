// File: topo.go
// Role: bidirected topological orientation, the last stage of the C7
//       DAGifier (spec.md §4.5 "Topological orientation"). Grounded on
//       dfs/topological.go's queue-of-ready-vertices Kahn-adjacent
//       structure, generalized from the teacher's plain directed-graph Kahn
//       variant to an explicit ready/seed candidate set over (node,
//       orientation) traversals, and keeping the teacher's TopoOption /
//       WithCancelContext option shape.
package dagify

import (
	"context"
	"errors"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
)

// ErrTopoCanceled is returned when the context passed via WithCancelContext
// is done before every node has been ordered.
var ErrTopoCanceled = errors.New("dagify: topological orientation canceled")

// TopoOption configures Topo.
type TopoOption func(*topoConfig)

type topoConfig struct {
	ctx context.Context
}

func defaultTopoConfig() topoConfig {
	return topoConfig{ctx: context.Background()}
}

// WithCancelContext sets the context Topo checks between traversals.
func WithCancelContext(ctx context.Context) TopoOption {
	return func(c *topoConfig) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// Topo orders every node of g by a bidirected Kahn's algorithm, seeded from
// nodes whose start side has no edges, and destroys every edge that cannot
// survive in a forward DAG: cycle-breaking edges (those reaching an
// already-ordered node from the entry or exit side of the traversal being
// popped) and any edge left with from-start, to-end, or a self-loop. Every
// other edge is left in place. It
// returns the resulting order as a Traversal per node, fixing the
// orientation each node is read in for the rest of the pipeline.
//
// Node ids are left unchanged: CompactIDs, core's own ID-renumbering tool,
// is pinned to ascending-by-current-id order and so cannot express an
// arbitrary topological order. The returned slice is the only record of the
// order; Nodes(), kmer enumeration and gfa export still iterate by node id.
func Topo(g *mutate.Graph, opts ...TopoOption) ([]core.Traversal, error) {
	cfg := defaultTopoConfig()
	for _, o := range opts {
		o(&cfg)
	}

	total := g.Core.NodeCount()
	visited := make(map[core.NodeID]bool, total)
	order := make([]core.Traversal, 0, total)

	var candidates []core.Traversal
	seeds := make(map[core.NodeID]core.Traversal)
	consumed := make(map[core.EdgeID]bool)
	consumedAt := make(map[core.Side]int)

	for _, n := range g.Core.Nodes() {
		switch {
		case g.Core.Degree(core.Side{Node: n.ID, End: core.Start}) == 0:
			candidates = append(candidates, core.Traversal{Node: n.ID, Orientation: core.Forward})
		default:
			seeds[n.ID] = core.Traversal{Node: n.ID, Orientation: core.Forward}
		}
	}

	for len(order) < total {
		select {
		case <-cfg.ctx.Done():
			return order, ErrTopoCanceled
		default:
		}

		if len(candidates) == 0 {
			if t, ok := promoteSeed(seeds); ok {
				candidates = append(candidates, t)
			} else if n, ok := lowestUnvisited(g.Core, visited); ok {
				candidates = append(candidates, core.Traversal{Node: n, Orientation: core.Forward})
			} else {
				break
			}
		}

		t := candidates[0]
		candidates = candidates[1:]
		if visited[t.Node] {
			continue
		}
		visited[t.Node] = true
		delete(seeds, t.Node)
		order = append(order, t)

		for _, adj := range g.Core.EdgesOf(t.EntrySide()) {
			if !consumed[adj.EdgeID] && visited[adj.Neighbor.Node] {
				if err := g.Core.DestroyEdgeByID(adj.EdgeID); err != nil {
					return order, err
				}
			}
		}

		for _, adj := range g.Core.EdgesOf(t.ExitSide()) {
			consumed[adj.EdgeID] = true
			nb := adj.Neighbor
			if visited[nb.Node] {
				if err := g.Core.DestroyEdgeByID(adj.EdgeID); err != nil {
					return order, err
				}
				continue
			}
			consumedAt[nb]++
			nbTrav := core.Traversal{Node: nb.Node, Orientation: entryOrientation(nb.End)}
			if g.Core.Degree(nbTrav.EntrySide()) == consumedAt[nb] {
				candidates = append(candidates, nbTrav)
			} else {
				seeds[nb.Node] = nbTrav
			}
		}
	}

	for _, e := range g.Core.Edges() {
		if e.FromStart || e.ToEnd || e.SelfLoop() {
			if err := g.Core.DestroyEdgeByID(e.ID); err != nil {
				return order, err
			}
		}
	}

	return order, nil
}

// promoteSeed pops the seed of lowest node id, if any.
func promoteSeed(seeds map[core.NodeID]core.Traversal) (core.Traversal, bool) {
	var best core.NodeID
	found := false
	for id := range seeds {
		if !found || id < best {
			best, found = id, true
		}
	}
	if !found {
		return core.Traversal{}, false
	}
	t := seeds[best]
	delete(seeds, best)
	return t, true
}

// lowestUnvisited returns the lowest-id node not yet in visited.
func lowestUnvisited(g *core.Graph, visited map[core.NodeID]bool) (core.NodeID, bool) {
	for _, n := range g.Nodes() {
		if !visited[n.ID] {
			return n.ID, true
		}
	}
	return 0, false
}
