// File: translation.go
// Role: Step/Path/Translation value types.
package translate

import "github.com/lvlath-labs/vgraph/core"

// Step is one stretch of a translation path: a node, the orientation it is
// read in, and the [Offset, Offset+Length) forward-strand range covered.
// Sequence is empty for an ordinary step backed by real node content; the
// edit engine sets it on a synthetic step recording where a novel (inserted)
// node's literal sequence came from, anchored at a zero-length point on the
// node it was inserted next to (spec.md §4.4 step 4/6, §8 scenario 3).
type Step struct {
	Node        core.NodeID
	Orientation core.Orientation
	Offset      int
	Length      int
	Sequence    string
}

// Path is an ordered list of steps — the same shape a pathidx path's
// mappings would spell out, used here purely as a coordinate description
// rather than a stored, mutable path.
type Path []Step

// TotalLength returns the sum of every step's length.
func (p Path) TotalLength() int {
	total := 0
	for _, s := range p {
		total += s.Length
	}
	return total
}

// Translation maps a From path (coordinates on the source graph) onto a To
// path (coordinates on the destination graph). For edit and dagify, To is
// conventionally a single Step spanning one whole new node.
type Translation struct {
	From Path
	To   Path
}

// Set is a collection of translations, conventionally sorted by each entry's
// From path's first step (spec.md §6: "sorted by from-path's first
// position").
type Set []Translation

// ByToNode indexes a Set by the node id of each entry's first To step,
// assuming (as edit and dagify both produce) that To is a single-step cover
// of one new node. Entries whose To is empty are skipped. When several
// entries share a first To node (a translation followed by its Reverse, as
// edit and dagify emit them), the first one in the Set is kept.
func (s Set) ByToNode() map[core.NodeID]Translation {
	out := make(map[core.NodeID]Translation, len(s))
	for _, t := range s {
		if len(t.To) == 0 {
			continue
		}
		if _, dup := out[t.To[0].Node]; dup {
			continue
		}
		out[t.To[0].Node] = t
	}
	return out
}

// Reverse returns the reverse-complement of a translation: every step's
// orientation flipped and step order reversed within each path, so that
// lift-over is defined on both strands (spec.md §4.4 step 6).
func (t Translation) Reverse() Translation {
	return Translation{From: reversePath(t.From), To: reversePath(t.To)}
}

func reversePath(p Path) Path {
	out := make(Path, len(p))
	for i, s := range p {
		seq := s.Sequence
		if seq != "" {
			seq = core.ReverseComplement(seq)
		}
		out[len(p)-1-i] = Step{Node: s.Node, Orientation: s.Orientation.Flip(), Offset: s.Offset, Length: s.Length, Sequence: seq}
	}
	return out
}

// Invert swaps From and To, turning a translation old->new into new->old.
func (t Translation) Invert() Translation {
	return Translation{From: t.To, To: t.From}
}
