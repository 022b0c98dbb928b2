// File: graph.go
// Role: mutate.Graph facade bundling *core.Graph + *pathidx.Index, and the
//       small helpers every other file in this package shares.
// Concurrency: a single sync.Mutex serializes structural mutations, matching
//              §5's "writes require exclusive access to the graph"; readers
//              (core's own RWMutexes) still run freely between mutations.
package mutate

import (
	"errors"
	"sync"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/pathidx"
	"github.com/lvlath-labs/vgraph/progress"
)

// ErrNotSimpleComponent indicates Concatenate was given a node list that does
// not form a simple component (some internal node has a second predecessor,
// successor, or a path visiting it that does not visit every other member
// with the same traversal count).
var ErrNotSimpleComponent = errors.New("mutate: not a simple component")

// ErrOrientationMismatch indicates a candidate sibling set mixes orientations
// and so fails the sibling-simplification orientation filter.
var ErrOrientationMismatch = errors.New("mutate: sibling set orientation mismatch")

// Graph wraps a node/edge store and its path index behind one mutation lock.
type Graph struct {
	mu    sync.Mutex
	Core  *core.Graph
	Paths *pathidx.Index

	// Progress reports batch-edit milestones (DivideNode, Normalize,
	// Defragment, ...) to an optionally injected observer. Nil by default;
	// every call site guards through progress.Observer's nil-safe methods,
	// so setting it is purely additive.
	Progress *progress.Observer
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{Core: core.NewGraph(), Paths: pathidx.NewIndex()}
}

// Wrap builds a Graph over an existing core store and path index, for
// callers that built the core.Graph and pathidx.Index themselves before
// handing them to a mutate.Graph for further edits.
func Wrap(g *core.Graph, ix *pathidx.Index) *Graph {
	return &Graph{Core: g, Paths: ix}
}

// ClosePath validates a circular path's closing edge via the wrapped core
// store, per pathidx.Index.ClosePath's callback contract.
func (g *Graph) ClosePath(name string) error {
	return g.Paths.ClosePath(name, g.Core.HasEdge)
}

// destroyMappingsOfNode removes every path mapping referencing node (used
// when a node is destroyed outright, e.g. null-node forwarding).
func (g *Graph) destroyMappingsOfNode(node core.NodeID) {
	for _, v := range g.Paths.OfNode(node) {
		_, _ = g.Paths.RemoveMapping(v.Handle)
	}
}
