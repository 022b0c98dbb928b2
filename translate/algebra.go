// File: algebra.go
// Role: Compose, Invert, and Overlay for translations (spec.md §4.5/§9).
package translate

import (
	"errors"

	"github.com/lvlath-labs/vgraph/core"
)

// ErrStepMismatch is returned by Compose when the first translation's To
// path does not chain with the second translation's From path.
var ErrStepMismatch = errors.New("translate: step mismatch composing translations")

// Compose chains two translations end to end: under maps A->B, over maps
// B->C, and Compose returns a translation A->C. under's To path must equal
// over's From path step-for-step (same nodes, orientations, offsets).
func Compose(over, under Translation) (Translation, error) {
	if !pathsEqual(under.To, over.From) {
		return Translation{}, ErrStepMismatch
	}
	return Translation{From: under.From, To: over.To}, nil
}

// Invert is the free-standing form of Translation.Invert, kept alongside
// Compose and Overlay for symmetry.
func Invert(t Translation) Translation {
	return t.Invert()
}

// underStep is one entry of under's per-node lookup: the forward-strand
// position in under's From path that a given under.To node/offset came from.
type underStep struct {
	fromNode        core.NodeID
	fromOrientation core.Orientation
	fromOffset      int
	toOrientation   core.Orientation
	toOffset        int
	toLength        int
}

// stepsByToNode indexes a translation's To path by node, so Overlay can look
// up, for any node that some other translation's From path names, where that
// node actually came from in this translation.
func (t Translation) stepsByToNode() map[core.NodeID]underStep {
	out := make(map[core.NodeID]underStep, len(t.To))
	n := len(t.From)
	if len(t.To) < n {
		n = len(t.To)
	}
	for i := 0; i < n; i++ {
		to := t.To[i]
		from := t.From[i]
		out[to.Node] = underStep{
			fromNode:        from.Node,
			fromOrientation: from.Orientation,
			fromOffset:      from.Offset,
			toOrientation:   to.Orientation,
			toOffset:        to.Offset,
			toLength:        to.Length,
		}
	}
	return out
}

// Overlay composes two translations (over∘under) the way dagify stacks
// successive graph rewrites: where a step in over's From path names a node
// that under's To path also names, the composed step maps straight through
// to under's From node, with the orientation flag XORed between the two
// legs — spec.md §4.5's "maps to the bottom node with the XOR of the
// orientation flags": over's step orientation XOR under's To orientation
// (whether the two legs read the shared node opposite ways) XOR under's From
// orientation. Steps over's From path names that under never touched
// pass through unchanged.
func Overlay(over, under Translation) Translation {
	byNode := under.stepsByToNode()
	composed := make(Path, 0, len(over.From))
	for _, os := range over.From {
		us, ok := byNode[os.Node]
		if !ok {
			composed = append(composed, os)
			continue
		}
		composed = append(composed, Step{
			Node:        us.fromNode,
			Orientation: xorOrientation(xorOrientation(os.Orientation, us.toOrientation), us.fromOrientation),
			Offset:      us.fromOffset + (os.Offset - us.toOffset),
			Length:      os.Length,
		})
	}
	return Translation{From: composed, To: over.To}
}

// xorOrientation combines two orientation flags the way a doubly-reversed
// edge does: Reverse-on-Reverse cancels back to Forward.
func xorOrientation(a, b core.Orientation) core.Orientation {
	if (a == core.Reverse) != (b == core.Reverse) {
		return core.Reverse
	}
	return core.Forward
}

func pathsEqual(a, b Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
