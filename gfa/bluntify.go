// File: bluntify.go
// Role: the bluntification pass (spec.md §6/§7): a non-zero link overlap is
// removed by cutting both segments at the overlap boundary and collapsing
// the two resulting overlap pieces into one shared node, via
// mutate.Graph.DivideNode (grounded on mutate/divide.go — division itself is
// reused, not reimplemented) and the builder package's deterministic
// rewire-after-cut idiom (cut first, then reconnect the exposed sides in a
// fixed order).
//
// Scope: this resolves the overlap of one link at a time, assuming (as a
// freshly imported GFA graph does) that the side of a segment a link
// overlaps has no other edge on it yet. A segment whose same side is
// overlapped by two different links needs a multi-way overlap reconciliation
// this pass does not attempt; spec.md §7's "bluntify conflict" downgrade
// path covers the other irreconcilable case, mismatched overlap lengths.
package gfa

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
)

// cigarLength sums the lengths of CIGAR operations for which consumes
// reports true. "*" and "" are both read as zero-length (blunt).
func cigarLength(cigar string, consumes func(byte) bool) (int, error) {
	if cigar == "" || cigar == "*" {
		return 0, nil
	}
	total := 0
	numStart := 0
	for i := 0; i < len(cigar); i++ {
		c := cigar[i]
		if c >= '0' && c <= '9' {
			continue
		}
		n, err := strconv.Atoi(cigar[numStart:i])
		if err != nil {
			return 0, fmt.Errorf("gfa: malformed CIGAR %q: %w", cigar, err)
		}
		if consumes(c) {
			total += n
		}
		numStart = i + 1
	}
	if numStart != len(cigar) {
		return 0, fmt.Errorf("gfa: malformed CIGAR %q: trailing operator-less length", cigar)
	}
	return total, nil
}

// consumesFromEnd reports whether a CIGAR op consumes bases of the link's
// from-segment (the operations that consume a SAM CIGAR's reference bases:
// mirrors ExaScience-elprep/sam/cigar-utils.go's operatorConsumesReferenceBases).
func consumesFromEnd(op byte) bool {
	switch op {
	case 'M', 'D', 'N', '=', 'X':
		return true
	default:
		return false
	}
}

// consumesToStart reports whether a CIGAR op consumes bases of the link's
// to-segment (mirrors cigar-utils.go's operatorConsumesReadBases).
func consumesToStart(op byte) bool {
	switch op {
	case 'M', 'I', '=', 'X':
		return true
	default:
		return false
	}
}

// resolvedLink is a Link with its segment names already mapped to node ids.
type resolvedLink struct {
	From, To             core.NodeID
	FromOrient, ToOrient core.Orientation
	Overlap              string
}

// bluntify wires resolvedLink into g, removing its overlap first if it has
// one: a zero overlap is wired directly; a non-zero overlap is resolved by
// cutting both segments at the boundary and collapsing the two resulting
// overlap pieces into one shared node, which the link's two outer pieces
// both end up connected through.
func bluntify(g *mutate.Graph, link resolvedLink, log *slog.Logger) error {
	fromTrav := core.Traversal{Node: link.From, Orientation: link.FromOrient}
	toTrav := core.Traversal{Node: link.To, Orientation: link.ToOrient}
	exitSide, entrySide := fromTrav.ExitSide(), toTrav.EntrySide()

	fromLen, err := cigarLength(link.Overlap, consumesFromEnd)
	if err != nil {
		return err
	}
	toLen, err := cigarLength(link.Overlap, consumesToStart)
	if err != nil {
		return err
	}
	if fromLen != 0 && toLen != 0 && fromLen != toLen {
		log.Warn("gfa: bluntify conflict, dropping overlap annotation",
			"from", link.From, "to", link.To, "overlap", link.Overlap)
		fromLen, toLen = 0, 0
	}
	if fromLen == 0 && toLen == 0 {
		_, err := g.Core.CreateEdge(exitSide, entrySide)
		return err
	}
	overlapLen := fromLen

	fromOuter, fromShared, err := divideOffExposedEnd(g, link.From, exitSide.End, overlapLen)
	if err != nil {
		return err
	}
	toOuter, toShared, err := divideOffExposedEnd(g, link.To, entrySide.End, overlapLen)
	if err != nil {
		return err
	}
	_ = fromOuter // stays connected to fromShared via DivideNode's own chain edge

	for _, mv := range g.Paths.OfNode(toShared) {
		if err := g.Paths.ReassignNode(mv.Handle, fromShared, mv.Pos.Offset); err != nil {
			return err
		}
	}
	if _, err := g.Core.DestroyNode(toShared); err != nil {
		return err
	}

	toOuterNear := core.Side{Node: toOuter, End: entrySide.End}
	fromSharedFar := core.Side{Node: fromShared, End: exitSide.End}
	_, err = g.Core.CreateEdge(toOuterNear, fromSharedFar)
	return err
}

// divideOffExposedEnd cuts node at length-overlapLen bases measured from its
// exposedEnd, returning (outer, shared): shared is the overlapLen-base piece
// sitting at exposedEnd, still exposing exposedEnd itself (free of edges, see
// the scope note above); outer is the rest of the node, chained to shared by
// DivideNode's own internal edge.
func divideOffExposedEnd(g *mutate.Graph, node core.NodeID, exposedEnd core.End, overlapLen int) (outer, shared core.NodeID, err error) {
	n, err := g.Core.GetNode(node)
	if err != nil {
		return 0, 0, err
	}
	if overlapLen <= 0 || overlapLen >= n.Length() {
		return 0, 0, fmt.Errorf("gfa: overlap length %d out of range for a %d-base node", overlapLen, n.Length())
	}
	if exposedEnd == core.Start {
		pieces, err := g.DivideNode(node, []int{overlapLen})
		if err != nil {
			return 0, 0, err
		}
		return pieces[1], pieces[0], nil
	}
	pieces, err := g.DivideNode(node, []int{n.Length() - overlapLen})
	if err != nil {
		return 0, 0, err
	}
	return pieces[0], pieces[1], nil
}
