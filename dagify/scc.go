// File: scc.go
// Role: strongly connected components of the bidirected graph, computed by
//       Tarjan over the (node, orientation) double cover (spec.md §4.5
//       "Dagify (SCC unrolling)"). Grounded on dfs/topological.go's
//       iterative-visit style, but made fully iterative with an explicit
//       frame stack rather than recursive, since a bidirected graph's
//       auxiliary directed graph can be twice the size of the node count and
//       this repo never bounds graph size the way the teacher's demo graphs
//       do.
package dagify

import "github.com/lvlath-labs/vgraph/core"

// Component is one strongly connected component of the bidirected graph's
// traversal double cover. Traversals lists every (node, orientation) vertex
// the component contains; Nodes is the deduplicated underlying node set.
// Cyclic is true for any component of more than one traversal, and for a
// singleton traversal that has a self-loop.
type Component struct {
	Traversals []core.Traversal
	Nodes      []core.NodeID
	Cyclic     bool
}

// StronglyConnectedComponents computes every SCC of g's traversal double
// cover via iterative Tarjan, visiting every node in both orientations. The
// mirror of an SCC (every traversal flipped) is itself an SCC; each such pair
// is reported once, as the member Tarjan completes first.
func StronglyConnectedComponents(g *core.Graph) []Component {
	t := &tarjanState{
		g:       g,
		index:   make(map[core.Traversal]int),
		lowlink: make(map[core.Traversal]int),
		onStack: make(map[core.Traversal]bool),
	}

	for _, n := range g.Nodes() {
		for _, o := range [2]core.Orientation{core.Forward, core.Reverse} {
			v := core.Traversal{Node: n.ID, Orientation: o}
			if _, seen := t.index[v]; !seen {
				t.run(v)
			}
		}
	}
	reported := make(map[core.Traversal]bool)
	out := make([]Component, 0, len(t.components))
	for _, c := range t.components {
		if reported[c.Traversals[0].Flip()] {
			continue
		}
		for _, v := range c.Traversals {
			reported[v] = true
		}
		out = append(out, c)
	}
	return out
}

type tarjanFrame struct {
	v         core.Traversal
	neighbors []core.Traversal
	i         int
}

type tarjanState struct {
	g          *core.Graph
	index      map[core.Traversal]int
	lowlink    map[core.Traversal]int
	onStack    map[core.Traversal]bool
	stack      []core.Traversal
	next       int
	components []Component
}

// run drives one iterative Tarjan pass rooted at start, using an explicit
// frame stack in place of recursion.
func (t *tarjanState) run(start core.Traversal) {
	work := []*tarjanFrame{t.push(start)}

	for len(work) > 0 {
		top := work[len(work)-1]
		if top.i < len(top.neighbors) {
			w := top.neighbors[top.i]
			top.i++
			if _, seen := t.index[w]; !seen {
				work = append(work, t.push(w))
				continue
			}
			if t.onStack[w] && t.lowlink[w] < t.lowlink[top.v] {
				t.lowlink[top.v] = t.lowlink[w]
			}
			continue
		}

		work = work[:len(work)-1]
		if len(work) > 0 {
			parent := work[len(work)-1]
			if t.lowlink[top.v] < t.lowlink[parent.v] {
				t.lowlink[parent.v] = t.lowlink[top.v]
			}
		}
		if t.lowlink[top.v] == t.index[top.v] {
			t.components = append(t.components, t.popComponent(top.v))
		}
	}
}

func (t *tarjanState) push(v core.Traversal) *tarjanFrame {
	t.index[v] = t.next
	t.lowlink[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true
	return &tarjanFrame{v: v, neighbors: traversalNeighbors(t.g, v)}
}

// popComponent pops the completed SCC rooted at root off t.stack and builds
// its Component, including the self-loop check for a singleton.
func (t *tarjanState) popComponent(root core.Traversal) Component {
	var trav []core.Traversal
	seenNode := make(map[core.NodeID]bool)
	var nodes []core.NodeID
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		trav = append(trav, w)
		if !seenNode[w.Node] {
			seenNode[w.Node] = true
			nodes = append(nodes, w.Node)
		}
		if w == root {
			break
		}
	}

	cyclic := len(trav) > 1
	if !cyclic {
		for _, n := range traversalNeighbors(t.g, trav[0]) {
			if n == trav[0] {
				cyclic = true
				break
			}
		}
	}
	return Component{Traversals: trav, Nodes: nodes, Cyclic: cyclic}
}
