// File: parallel.go
// Role: Read-only parallel iteration over nodes/edges (spec.md §5). Writes
//       must not run concurrently with these; callers own that discipline.
// Library: github.com/exascience/pargo/parallel, the same shard-and-reduce
//          idiom ExaScience-elprep's filters/bqsr.go uses for Recalibrate.
package core

import (
	"sync"

	"github.com/exascience/pargo/parallel"
)

// ForEachNodeParallel calls fn for every node, sharding the sorted id
// snapshot across worker goroutines. fn must not mutate graph structure.
// Progress (the count of nodes visited) is returned for callers that want a
// simple sanity check without wiring a progress.Observer.
func (g *Graph) ForEachNodeParallel(fn func(Node)) int {
	g.muNode.RLock()
	ids := g.sortedNodeIDs()
	snapshot := make([]Node, len(ids))
	for i, id := range ids {
		snapshot[i] = *g.nodes[id]
	}
	g.muNode.RUnlock()

	var visited int64
	var mu sync.Mutex
	parallel.RangeReduce(0, len(snapshot), 0, func(low, high int) interface{} {
		count := 0
		for _, n := range snapshot[low:high] {
			fn(n)
			count++
		}
		mu.Lock()
		visited += int64(count)
		mu.Unlock()
		return nil
	}, func(_, _ interface{}) interface{} { return nil })
	return int(visited)
}

// ForEachEdgeParallel calls fn for every edge, sharded the same way.
func (g *Graph) ForEachEdgeParallel(fn func(Edge)) int {
	snapshot := g.Edges()
	var visited int64
	var mu sync.Mutex
	parallel.RangeReduce(0, len(snapshot), 0, func(low, high int) interface{} {
		count := 0
		for _, e := range snapshot[low:high] {
			fn(e)
			count++
		}
		mu.Lock()
		visited += int64(count)
		mu.Unlock()
		return nil
	}, func(_, _ interface{}) interface{} { return nil })
	return int(visited)
}
