// File: engine.go
// Role: Apply, the C5 entry point, plus step 4's dangling-side wiring walk
//       and step 6's translation emission (spec.md §4.4).
package edit

import (
	"fmt"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/pathidx"
	"github.com/lvlath-labs/vgraph/translate"
)

// insertKey identifies an insertion by where it occurs and what forward-
// strand sequence it carries, so two paths inserting the same allele at the
// same place share one node (spec.md §4.4 step 4).
type insertKey struct {
	node core.NodeID
	off  int
	seq  string
}

// insertionProvenance records, for one inserted node, where it was spliced
// in: the original node and forward offset it sits next to, the orientation
// the insertion was read in, and its forward-strand literal (spec.md §4.4
// step 4's "synthetic from-path describing where it was inserted").
type insertionProvenance struct {
	node        core.NodeID
	offset      int
	orientation core.Orientation
	sequence    string
}

// Apply runs the full edit algorithm: it weaves paths into g, dividing
// existing nodes at the breakpoints the new paths imply, creating nodes for
// inserted sequence, wiring edges, re-ranking every path, and returning the
// translation set describing how the graph before Apply maps onto the graph
// after. Substitutions get no node of their own; the mapping over the
// existing piece carries the substituted literal.
func Apply(g *mutate.Graph, paths []InputPath) (translate.Set, error) {
	for _, p := range paths {
		if g.Paths.HasPath(p.Name) {
			return nil, fmt.Errorf("edit: path %q: %w", p.Name, ErrPathExists)
		}
	}

	simplified := make([]InputPath, len(paths))
	for i, p := range paths {
		simplified[i] = simplifyPath(p)
	}

	bp := collectBreakpoints(simplified)
	pieces, err := ensureBreakpoints(g, bp)
	if err != nil {
		return nil, err
	}

	inserted := map[insertKey]core.NodeID{}
	provenance := map[core.NodeID]insertionProvenance{}

	for _, p := range simplified {
		if err := g.Paths.CreatePath(p.Name, p.Circular); err != nil {
			return nil, err
		}
		if err := wirePath(g, p, pieces, inserted, provenance); err != nil {
			return nil, err
		}
	}

	for _, pd := range g.Paths.Paths() {
		if err := g.Paths.CompactRanks(pd.Name); err != nil {
			return nil, err
		}
	}

	return buildTranslations(g, pieces, provenance)
}

// wirePath implements step 4 for one path: it walks every mapping's edits in
// order, carrying a dangling side across mapping and edit boundaries, and
// appends one pathidx mapping to the new path per match/substitution
// segment.
func wirePath(g *mutate.Graph, p InputPath, pieces map[core.NodeID]pieceMap, inserted map[insertKey]core.NodeID, provenance map[core.NodeID]insertionProvenance) error {
	var dangling *core.Side

	connect := func(entry core.Side) error {
		if dangling != nil {
			if _, err := g.Core.CreateEdge(*dangling, entry); err != nil {
				return err
			}
		}
		return nil
	}

	for _, mp := range p.Mappings {
		if len(mp.Edits) == 0 {
			continue
		}
		pm, err := pieceOf(g, pieces, mp.Pos.Node)
		if err != nil {
			return err
		}
		spans := forwardSpans(mp.Pos, mp.Edits)

		for i, e := range mp.Edits {
			switch {
			case e.IsDeletion():
				// No node, no mapping, no edge: the next match edit's
				// connect call bridges straight across.
				continue

			case e.FromLen > 0:
				// Match or substitution: walk its piece segments in reading
				// order, wiring and appending a mapping for each.
				for _, seg := range splitAcrossPieces(pm, mp.Pos, spans[i]) {
					trav := core.Traversal{Node: seg.piece, Orientation: mp.Pos.Orientation}
					if err := connect(trav.EntrySide()); err != nil {
						return err
					}
					exit := trav.ExitSide()
					dangling = &exit

					subEdit := pathidx.Edit{FromLen: seg.length, ToLen: seg.length}
					if e.Sequence != "" {
						subEdit.Sequence = e.Sequence[seg.readOffset : seg.readOffset+seg.length]
					}
					pos := pathidx.Position{Node: seg.piece, Orientation: mp.Pos.Orientation, Offset: seg.localLo}
					if _, err := g.Paths.AppendMapping(p.Name, pos, []pathidx.Edit{subEdit}); err != nil {
						return err
					}
				}

			default:
				// Insertion: FromLen == 0, ToLen > 0, no graph coordinate
				// consumed. The insertion point is the edit's own span
				// (zero-width); its literal is stored forward-strand.
				at := spans[i].lo
				forwardSeq := e.Sequence
				if mp.Pos.Orientation == core.Reverse {
					forwardSeq = core.ReverseComplement(e.Sequence)
				}
				key := insertKey{node: mp.Pos.Node, off: at, seq: forwardSeq}
				newID, ok := inserted[key]
				if !ok {
					nn, err := g.Core.CreateNode(forwardSeq, nil)
					if err != nil {
						return err
					}
					newID = nn.ID
					inserted[key] = newID
					provenance[newID] = insertionProvenance{
						node:        mp.Pos.Node,
						offset:      at,
						orientation: mp.Pos.Orientation,
						sequence:    forwardSeq,
					}
				}
				trav := core.Traversal{Node: newID, Orientation: core.Forward}
				if err := connect(trav.EntrySide()); err != nil {
					return err
				}
				exit := trav.ExitSide()
				dangling = &exit

				insEdit := pathidx.Edit{FromLen: 0, ToLen: e.ToLen, Sequence: e.Sequence}
				pos := pathidx.Position{Node: newID, Orientation: core.Forward, Offset: 0}
				if _, err := g.Paths.AppendMapping(p.Name, pos, []pathidx.Edit{insEdit}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// buildTranslations implements step 6: every piece produced by a division
// translates from the original node's corresponding forward range; every
// inserted node translates from a synthetic zero-length step anchored at
// where it was spliced in, carrying its own literal; every node untouched by
// Apply translates from itself. The reverse-complement of each translation
// is appended alongside it so lift-over is defined on both strands.
func buildTranslations(g *mutate.Graph, pieces map[core.NodeID]pieceMap, provenance map[core.NodeID]insertionProvenance) (translate.Set, error) {
	var set translate.Set
	seenPiece := make(map[core.NodeID]bool)

	for original, pm := range pieces {
		for i, pieceID := range pm.pieces {
			seenPiece[pieceID] = true
			lo := pm.bounds[i]
			length := pm.bounds[i+1] - lo
			tr := translate.Translation{
				From: translate.Path{{Node: original, Orientation: core.Forward, Offset: lo, Length: length}},
				To:   translate.Path{{Node: pieceID, Orientation: core.Forward, Offset: 0, Length: length}},
			}
			set = append(set, tr, tr.Reverse())
		}
	}

	for _, n := range g.Core.Nodes() {
		if seenPiece[n.ID] {
			continue
		}
		if prov, ok := provenance[n.ID]; ok {
			tr := translate.Translation{
				From: translate.Path{{Node: prov.node, Orientation: prov.orientation, Offset: prov.offset, Length: 0, Sequence: prov.sequence}},
				To:   translate.Path{{Node: n.ID, Orientation: core.Forward, Offset: 0, Length: n.Length()}},
			}
			set = append(set, tr, tr.Reverse())
			continue
		}
		tr := translate.Translation{
			From: translate.Path{{Node: n.ID, Orientation: core.Forward, Offset: 0, Length: n.Length()}},
			To:   translate.Path{{Node: n.ID, Orientation: core.Forward, Offset: 0, Length: n.Length()}},
		}
		set = append(set, tr, tr.Reverse())
	}
	return set, nil
}
