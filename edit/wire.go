// File: wire.go
// Role: Step 3-4 of the edit algorithm (spec.md §4.4): ensure breakpoints by
//       dividing nodes, then walk each path's edits wiring new nodes and
//       edges behind a dangling-side cursor.
package edit

import (
	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/pathidx"
)

// pieceMap records how one node was (or was not) divided: bounds holds the
// full boundary list [0, cut1, cut2, ..., len], and pieces[i] is the node
// covering the forward range [bounds[i], bounds[i+1]).
type pieceMap struct {
	bounds []int
	pieces []core.NodeID
}

// locate returns the piece covering forward offset off and off's local
// offset within that piece.
func (pm pieceMap) locate(off int) (core.NodeID, int) {
	for i := 0; i < len(pm.pieces); i++ {
		if off >= pm.bounds[i] && off < pm.bounds[i+1] {
			return pm.pieces[i], off - pm.bounds[i]
		}
	}
	last := len(pm.pieces) - 1
	return pm.pieces[last], pm.bounds[last+1] - pm.bounds[last]
}

// ensureBreakpoints implements step 3: for each node with recorded
// breakpoints, sorted ascending, divide it at the offsets (skipping 0 and
// the node's own length, which DivideNode already rejects as no-ops) and
// record the resulting piece map.
func ensureBreakpoints(g *mutate.Graph, bp map[core.NodeID]map[int]struct{}) (map[core.NodeID]pieceMap, error) {
	out := make(map[core.NodeID]pieceMap, len(bp))
	for node, set := range bp {
		n, err := g.Core.GetNode(node)
		if err != nil {
			return nil, err
		}
		offs := sortedInts(set)
		cuts := offs[:0]
		for _, o := range offs {
			if o > 0 && o < n.Length() {
				cuts = append(cuts, o)
			}
		}
		if len(cuts) == 0 {
			out[node] = pieceMap{bounds: []int{0, n.Length()}, pieces: []core.NodeID{node}}
			continue
		}
		pieces, err := g.DivideNode(node, cuts)
		if err != nil {
			return nil, err
		}
		bounds := make([]int, 0, len(cuts)+2)
		bounds = append(bounds, 0)
		bounds = append(bounds, cuts...)
		bounds = append(bounds, n.Length())
		out[node] = pieceMap{bounds: bounds, pieces: pieces}
	}
	return out, nil
}

// pieceOf returns the piece map for a node that may never have needed
// dividing (no breakpoints at all recorded for it).
func pieceOf(g *mutate.Graph, pieces map[core.NodeID]pieceMap, node core.NodeID) (pieceMap, error) {
	if pm, ok := pieces[node]; ok {
		return pm, nil
	}
	n, err := g.Core.GetNode(node)
	if err != nil {
		return pieceMap{}, err
	}
	return pieceMap{bounds: []int{0, n.Length()}, pieces: []core.NodeID{node}}, nil
}

// segment is one sub-range of an edit that lands entirely within a single
// piece node, expressed both in forward coordinates (for locating the piece)
// and in cumulative reading-order distance from the edit's own start (for
// slicing a substitution's literal sequence).
type segment struct {
	piece      core.NodeID
	localLo    int
	length     int
	readOffset int
}

// splitAcrossPieces decomposes edit i of mapping mp (whose forward range is
// spans[i]) into the ordered (reading-order) list of piece-local segments
// breakpoint division may have introduced inside it.
func splitAcrossPieces(pm pieceMap, pos pathidx.Position, sp span) []segment {
	cuts := []int{sp.lo}
	for _, b := range pm.bounds {
		if b > sp.lo && b < sp.hi {
			cuts = append(cuts, b)
		}
	}
	cuts = append(cuts, sp.hi)

	fwd := make([]struct{ lo, hi int }, 0, len(cuts)-1)
	for i := 0; i < len(cuts)-1; i++ {
		fwd = append(fwd, struct{ lo, hi int }{cuts[i], cuts[i+1]})
	}

	order := fwd
	if pos.Orientation == core.Reverse {
		order = make([]struct{ lo, hi int }, len(fwd))
		for i, s := range fwd {
			order[len(fwd)-1-i] = s
		}
	}

	segs := make([]segment, len(order))
	readOffset := 0
	for i, s := range order {
		pieceID, localLo := pm.locate(s.lo)
		length := s.hi - s.lo
		segs[i] = segment{piece: pieceID, localLo: localLo, length: length, readOffset: readOffset}
		readOffset += length
	}
	return segs
}
