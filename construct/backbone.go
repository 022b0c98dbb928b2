// File: backbone.go
// Role: pieceTracker, the running record of how BuildFromReference's
//       backbone node has been divided so far. Shaped after
//       edit.pieceMap/edit.ensureBreakpoints, generalized to support
//       incremental divisions (one or two new cuts per variant) instead of
//       a single batch of breakpoints known up front.
package construct

import (
	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
)

// pieceTracker maps backbone-relative forward offsets (0..length, where 0 is
// the interval's start passed to BuildFromReference) onto the current chain
// of piece nodes the backbone has been divided into.
type pieceTracker struct {
	bounds []int
	pieces []core.NodeID
}

func newPieceTracker(node core.NodeID, length int) *pieceTracker {
	return &pieceTracker{bounds: []int{0, length}, pieces: []core.NodeID{node}}
}

// indexOf returns the piece index whose bounds contain off.
func (pt *pieceTracker) indexOf(off int) int {
	for i := range pt.pieces {
		if off >= pt.bounds[i] && off < pt.bounds[i+1] {
			return i
		}
	}
	return len(pt.pieces) - 1
}

// boundaryIndex returns the piece index i such that bounds[i] == off, or -1.
func (pt *pieceTracker) boundaryIndex(off int) int {
	for i, b := range pt.bounds {
		if b == off {
			return i
		}
	}
	return -1
}

// ensureCut makes off a piece boundary, dividing whichever piece currently
// straddles it. A no-op if off is already a boundary or lies at either end
// of the backbone.
func (pt *pieceTracker) ensureCut(g *mutate.Graph, off int) error {
	if off <= pt.bounds[0] || off >= pt.bounds[len(pt.bounds)-1] {
		return nil
	}
	if pt.boundaryIndex(off) >= 0 {
		return nil
	}
	idx := pt.indexOf(off)
	local := off - pt.bounds[idx]
	newPieces, err := g.DivideNode(pt.pieces[idx], []int{local})
	if err != nil {
		return err
	}

	pieces := make([]core.NodeID, 0, len(pt.pieces)+1)
	pieces = append(pieces, pt.pieces[:idx]...)
	pieces = append(pieces, newPieces...)
	pieces = append(pieces, pt.pieces[idx+1:]...)
	pt.pieces = pieces

	bounds := make([]int, 0, len(pt.bounds)+1)
	bounds = append(bounds, pt.bounds[:idx+1]...)
	bounds = append(bounds, off)
	bounds = append(bounds, pt.bounds[idx+1:]...)
	pt.bounds = bounds
	return nil
}

// segment returns the piece node covering exactly [lo, hi), plus the piece
// immediately to its left and right if any (zero-value NodeID, ok=false
// when the bubble sits flush against the backbone's own boundary). Callers
// must have already called ensureCut(lo) and ensureCut(hi).
func (pt *pieceTracker) segment(lo, hi int) (left, mid, right core.NodeID, hasLeft, hasRight bool) {
	loIdx := pt.boundaryIndex(lo)
	mid = pt.pieces[loIdx]
	if loIdx > 0 {
		left, hasLeft = pt.pieces[loIdx-1], true
	}
	if loIdx+1 < len(pt.pieces) {
		right, hasRight = pt.pieces[loIdx+1], true
	}
	return left, mid, right, hasLeft, hasRight
}
