// File: emit.go
// Role: per-kmer record emission (spec.md §4.6 "K-mer emission"). Character
//       sets use bitset.BitSet, grounded on
//       ExaScience-elprep/filters/ref-confidence.go's per-base bitset usage
//       (informativeBases). Dedup is an LRU cache; spec.md §5 names an "LRU
//       cache" without naming a library, and no pack repo carries one
//       (hashicorp/golang-lru never appears), so it is built on stdlib
//       container/list, the one piece of this package not grounded on a
//       third-party dependency.
package kmer

import (
	"container/list"

	"github.com/bits-and-blooms/bitset"
	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/pathidx"
)

// base bit indices for the previous/next character bitsets.
const (
	baseA = 0
	baseC = 1
	baseG = 2
	baseT = 3
)

func baseBit(c byte) (uint, bool) {
	switch c {
	case 'A', 'a':
		return baseA, true
	case 'C', 'c':
		return baseC, true
	case 'G', 'g':
		return baseG, true
	case 'T', 't':
		return baseT, true
	default:
		return 0, false
	}
}

// Position is a forward-strand (node, offset) coordinate, canonicalized the
// same way pathidx.Position.Offset is: always the low forward-strand
// coordinate regardless of the traversal orientation that reached it.
type Position struct {
	Node   core.NodeID
	Offset int
}

// Record is one emitted kmer occurrence.
type Record struct {
	Kmer          string
	Start         Position
	End           Position
	Prev          *bitset.BitSet
	Next          *bitset.BitSet
	NextPositions []Position
}

type dedupKey struct {
	kmer          string
	start         Position
	viewingNode   core.NodeID
	viewingOffset int
	end           Position
}

// lru is a small fixed-capacity cache of recently seen dedupKeys, built on
// container/list + map in the absence of a pack-carried LRU library.
type lru struct {
	cap   int
	ll    *list.List
	index map[dedupKey]*list.Element
}

func newLRU(capacity int) *lru {
	return &lru{cap: capacity, ll: list.New(), index: make(map[dedupKey]*list.Element)}
}

// seen reports whether key was already present, and records it as most
// recently used either way.
func (c *lru) seen(key dedupKey) bool {
	if el, ok := c.index[key]; ok {
		c.ll.MoveToFront(el)
		return true
	}
	c.index[key] = c.ll.PushFront(key)
	if c.cap > 0 && c.ll.Len() > c.cap {
		back := c.ll.Back()
		if back != nil {
			c.ll.Remove(back)
			delete(c.index, back.Value.(dedupKey))
		}
	}
	return false
}

// Options configures Enumerate.
type Options struct {
	MaxEdgesCrossed int
	Filter          Filter
	AllowDups       bool
	ForwardOnly     bool
	CacheSize       int
	Paths           *pathidx.Index
}

// Enumerate emits every kmer of length k reachable from every node in g,
// restricted to positions whose window overlaps the anchor node's own span
// (a window wholly inside a neighbour is left to that neighbour's own pass; a
// window spanning several nodes is emitted once per anchor it overlaps, since
// the dedup key includes the viewing node).
func Enumerate(g *core.Graph, k int, opts Options) ([]Record, error) {
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	cache := newLRU(cacheSize)

	var out []Record
	for _, n := range g.Nodes() {
		anchor := core.Traversal{Node: n.ID, Orientation: core.Forward}

		kpaths, err := BuildKPaths(g, anchor, k, opts.MaxEdgesCrossed, opts.Filter)
		if err != nil {
			return nil, err
		}

		for _, kp := range kpaths {
			recs, err := emitFromKPath(g, kp, n.ID, k, opts, cache)
			if err != nil {
				return nil, err
			}
			out = append(out, recs...)
		}
	}
	return out, nil
}

func emitFromKPath(g *core.Graph, kp KPath, anchorNode core.NodeID, k int, opts Options, cache *lru) ([]Record, error) {
	var out []Record
	anchorLen := nodeLength(g, anchorNode)
	total := len(kp.Spelled)

	for i := 0; i+k <= total; i++ {
		localStart := i - kp.AnchorAt
		if localStart >= anchorLen || localStart+k <= 0 {
			continue // kmer does not overlap the anchor node's own span
		}

		start := kp.positionAt(g, i)
		end := kp.positionAt(g, i+k-1)

		if opts.ForwardOnly && start.Node != end.Node && start.Node > end.Node {
			continue
		}

		prev := bitset.New(4)
		if i > 0 {
			if bit, ok := baseBit(kp.Spelled[i-1]); ok {
				prev.Set(bit)
			}
		} else {
			for _, p := range predecessors(g, kp.Steps[0]) {
				s, err := g.Read(p)
				if err != nil {
					return nil, err
				}
				if len(s) == 0 {
					continue
				}
				if bit, ok := baseBit(s[len(s)-1]); ok {
					prev.Set(bit)
				}
			}
		}

		next := bitset.New(4)
		var nextPositions []Position
		if i+k < total {
			if bit, ok := baseBit(kp.Spelled[i+k]); ok {
				next.Set(bit)
			}
			nextPositions = []Position{kp.positionAt(g, i+k)}
		} else {
			for _, s := range successors(g, kp.Steps[len(kp.Steps)-1]) {
				seq, err := g.Read(s)
				if err != nil {
					return nil, err
				}
				if len(seq) == 0 {
					continue
				}
				if bit, ok := baseBit(seq[0]); ok {
					next.Set(bit)
				}
				nextPositions = append(nextPositions, Position{Node: s.Node, Offset: entryOffset(s, len(seq))})
			}
		}

		key := dedupKey{kmer: kp.Spelled[i : i+k], start: start, viewingNode: anchorNode, viewingOffset: localStart, end: end}
		if !opts.AllowDups && cache.seen(key) {
			continue
		}
		if opts.AllowDups {
			cache.seen(key)
		}

		out = append(out, Record{
			Kmer:          kp.Spelled[i : i+k],
			Start:         start,
			End:           end,
			Prev:          prev,
			Next:          next,
			NextPositions: nextPositions,
		})
	}
	return out, nil
}

// positionAt maps a global offset within kp's spelled sequence back to a
// forward-strand (node, offset) coordinate.
func (kp KPath) positionAt(g *core.Graph, globalOffset int) Position {
	remaining := globalOffset
	for _, t := range kp.Steps {
		l := nodeLength(g, t.Node)
		if remaining < l {
			return Position{Node: t.Node, Offset: canonicalOffset(t, remaining, l)}
		}
		remaining -= l
	}
	last := kp.Steps[len(kp.Steps)-1]
	return Position{Node: last.Node, Offset: canonicalOffset(last, nodeLength(g, last.Node)-1, nodeLength(g, last.Node))}
}

// canonicalOffset converts a within-traversal reading offset into the
// forward-strand low coordinate of the base it lands on.
func canonicalOffset(t core.Traversal, readingOffset, length int) int {
	if t.Orientation == core.Reverse {
		return length - 1 - readingOffset
	}
	return readingOffset
}

// entryOffset is the forward-strand offset of the first base traversal t
// reads.
func entryOffset(t core.Traversal, length int) int {
	return canonicalOffset(t, 0, length)
}
