// File: parallel.go
// Role: BuildParallel (SPEC_FULL.md §4.7): shard VariantRecords by
//       contig-position range, build each shard with BuildFromReference in
//       parallel, then merge adjacent-completed shards with the cooperative
//       reducer spec.md §5 describes ("a concurrent deque with a single
//       lock around the pop-two-adjacent-completed-append-result critical
//       section").
package construct

import (
	"container/list"
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/exascience/pargo/parallel"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/pathidx"
	"github.com/lvlath-labs/vgraph/translate"
	"github.com/lvlath-labs/vgraph/vcfsrc"
)

// shardSpec is one contiguous slice of the reference interval plus the
// records whose ref span falls entirely within it.
type shardSpec struct {
	start, end int
	records    []vcfsrc.VariantRecord
}

// planShards groups sorted records into chunks of at most shardSize entries
// and cuts the reference interval between chunks at the midpoint of the gap
// between the previous chunk's last record's ref span and the next record's
// position (or right after that ref span, if the two touch or overlap).
func planShards(sorted []vcfsrc.VariantRecord, start, end, shardSize int) []shardSpec {
	if len(sorted) == 0 {
		return []shardSpec{{start: start, end: end}}
	}
	var shards []shardSpec
	segStart := start
	for i := 0; i < len(sorted); i += shardSize {
		j := i + shardSize
		if j > len(sorted) {
			j = len(sorted)
		}
		group := sorted[i:j]
		segEnd := end
		if j < len(sorted) {
			last := group[len(group)-1]
			boundary := last.Position + len(last.Ref)
			next := sorted[j]
			// Split at the midpoint of the gap rather than flush against
			// the last bubble's right edge, so that bubble's ALT node
			// keeps a within-shard right flank instead of dangling at the
			// shard boundary (placeBubble only wires a flank that exists
			// inside its own shard; mergeShards only stitches the primary
			// and phase paths' backbone nodes, not bubble ALT nodes).
			if next.Position > boundary {
				boundary += (next.Position - boundary) / 2
			}
			segEnd = boundary
		}
		shards = append(shards, shardSpec{start: segStart, end: segEnd, records: group})
		segStart = segEnd
	}
	return shards
}

// BuildParallel builds the same graph BuildFromReference would over
// [start,end), but shards records into at most cfg.shardSize-record chunks,
// builds each chunk concurrently via pargo/parallel.RangeReduce, and merges
// the resulting sub-graphs back into one with mergeCompletedShards.
func BuildParallel(
	ctx context.Context,
	contig string,
	start, end int,
	provider vcfsrc.ContigProvider,
	records []vcfsrc.VariantRecord,
	decomposer vcfsrc.BubbleDecomposer,
	opts ...Option,
) (*mutate.Graph, *translate.Translation, error) {
	if end <= start {
		return nil, nil, ErrInvalidInterval
	}
	cfg := newConfig(contig, opts...)

	sorted := append([]vcfsrc.VariantRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	shards := planShards(sorted, start, end, cfg.shardSize)
	if len(shards) == 1 {
		return BuildFromReference(ctx, contig, start, end, provider, shards[0].records, decomposer, opts...)
	}

	built := make([]*mutate.Graph, len(shards))
	buildErrs := make([]error, len(shards))

	parallel.RangeReduce(0, len(shards), 1, func(low, high int) interface{} {
		for i := low; i < high; i++ {
			s := shards[i]
			g, _, err := BuildFromReference(ctx, contig, s.start, s.end, provider, s.records, decomposer, opts...)
			built[i] = g
			buildErrs[i] = err
		}
		return nil
	}, func(interface{}, interface{}) interface{} { return nil })

	for _, err := range buildErrs {
		if err != nil {
			return nil, nil, err
		}
	}

	merged, err := mergeCompletedShards(built)
	if err != nil {
		return nil, nil, err
	}

	if err := merged.Paths.CompactRanks(cfg.primaryPathName); err != nil {
		return nil, nil, err
	}
	tr, err := backboneTranslation(merged, cfg, start, end)
	if err != nil {
		return nil, nil, err
	}
	return merged, tr, nil
}

// mergeCompletedShards implements spec.md §5's cooperative reducer: a
// container/list deque holding completed shard graphs in left-to-right
// order, guarded by one sync.Mutex. Workers repeatedly pop the two
// front-most (hence position-adjacent) entries, merge them while still
// holding the lock, and push the result back to the front so later pops keep seeing a
// position-ordered deque, until only one entry (the fully merged graph)
// remains and every worker observes deque.Len() <= 1 and exits.
func mergeCompletedShards(shards []*mutate.Graph) (*mutate.Graph, error) {
	deque := list.New()
	for _, g := range shards {
		deque.PushBack(g)
	}

	var mu sync.Mutex
	var firstErr error
	var errOnce sync.Once
	setErr := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	workers := runtime.NumCPU()
	if workers > len(shards) {
		workers = len(shards)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				if deque.Len() <= 1 || firstErr != nil {
					mu.Unlock()
					return
				}
				// The whole pop-merge-append sequence is one critical
				// section: merging two shards mutates the left graph in
				// place, so two merges racing on overlapping graphs (or
				// completing out of order and reinserting at the front in
				// the wrong position) would corrupt adjacency. Holding mu
				// across the merge itself, not just the deque splice,
				// keeps the list in strict left-to-right order.
				left := deque.Remove(deque.Front()).(*mutate.Graph)
				right := deque.Remove(deque.Front()).(*mutate.Graph)
				merged, err := mergeShardPair(left, right)
				if err != nil {
					setErr(err)
					mu.Unlock()
					return
				}
				deque.PushFront(merged)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return deque.Front().Value.(*mutate.Graph), nil
}

// mergeShardPair merges right into left; left is mutated in place and
// returned, mirroring mutate.Graph's own in-place mutation style.
func mergeShardPair(left, right *mutate.Graph) (*mutate.Graph, error) {
	if err := mergeShards(left, right); err != nil {
		return nil, err
	}
	return left, nil
}

// mergeShards copies every node, edge, and path mapping from src into dst,
// remapping src's node ids past dst's current maximum so the two graphs'
// originally-independent id spaces cannot collide. A path name present in
// both graphs is treated as one continuous walk spanning the merged
// backbone: dst's existing mappings are kept, src's are appended after
// remap, and a stitching edge joins dst's last visited side to src's first.
func mergeShards(dst, src *mutate.Graph) error {
	offset := maxNodeID(dst.Core)
	nodeMap := make(map[core.NodeID]core.NodeID, len(src.Core.Nodes()))
	for _, n := range src.Core.Nodes() {
		newID := n.ID + offset
		nodeMap[n.ID] = newID
		if err := dst.Core.AddNode(core.Node{ID: newID, Sequence: n.Sequence, Name: n.Name}); err != nil {
			return err
		}
	}
	for _, e := range src.Core.Edges() {
		from := core.Side{Node: nodeMap[e.From], End: core.EndSide}
		if e.FromStart {
			from.End = core.Start
		}
		to := core.Side{Node: nodeMap[e.To], End: core.Start}
		if e.ToEnd {
			to.End = core.EndSide
		}
		if _, err := dst.Core.CreateEdge(from, to); err != nil {
			return err
		}
	}

	for _, p := range src.Paths.Paths() {
		srcViews, err := src.Paths.Mappings(p.Name)
		if err != nil {
			return err
		}
		shared := dst.Paths.HasPath(p.Name)
		var stitchFrom core.Side
		haveStitch := false
		if shared {
			dstViews, err := dst.Paths.Mappings(p.Name)
			if err != nil {
				return err
			}
			if len(dstViews) > 0 {
				last := dstViews[len(dstViews)-1]
				trav := core.Traversal{Node: last.Pos.Node, Orientation: last.Pos.Orientation}
				stitchFrom = trav.ExitSide()
				haveStitch = true
			}
		} else if err := dst.Paths.CreatePath(p.Name, p.Circular); err != nil {
			return err
		}

		for _, v := range srcViews {
			pos := pathidx.Position{Node: nodeMap[v.Pos.Node], Orientation: v.Pos.Orientation, Offset: v.Pos.Offset}
			if _, err := dst.Paths.AppendMapping(p.Name, pos, v.Edits); err != nil {
				return err
			}
		}

		if haveStitch && len(srcViews) > 0 {
			first := srcViews[0]
			trav := core.Traversal{Node: nodeMap[first.Pos.Node], Orientation: first.Pos.Orientation}
			if _, err := dst.Core.CreateEdge(stitchFrom, trav.EntrySide()); err != nil {
				return err
			}
		}
	}
	return nil
}

func maxNodeID(g *core.Graph) core.NodeID {
	var max core.NodeID
	for _, n := range g.Nodes() {
		if n.ID > max {
			max = n.ID
		}
	}
	return max
}
