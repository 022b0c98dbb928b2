// File: reference.go
// Role: BuildFromReference, the C6 entry point (spec.md §4.4, §8 scenario 2;
//       SPEC_FULL.md §4.7): build a backbone node from a reference interval,
//       then carve each VCF record's decomposed bubbles into it via
//       mutate.Graph node division and edge wiring, optionally threading alt
//       and per-sample phase paths.
package construct

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/pathidx"
	"github.com/lvlath-labs/vgraph/translate"
	"github.com/lvlath-labs/vgraph/vcfsrc"
)

// ErrInvalidInterval indicates start/end do not describe a non-empty
// forward-strand range.
var ErrInvalidInterval = errors.New("construct: invalid reference interval")

// ErrRecordOutOfRange indicates a VariantRecord's sub-allele falls outside
// the [start, end) interval BuildFromReference was asked to build.
var ErrRecordOutOfRange = errors.New("construct: variant outside reference interval")

// bubble records one decomposed sub-allele's placement in the backbone, kept
// around after BuildFromReference's main loop so alt-path and phase-path
// threading (built afterward, once the whole backbone has its final shape)
// can find it.
type bubble struct {
	varIndex  int // index into the (sorted) records slice
	altIndex  int // 1-based index into records[varIndex].Alt, VCF convention
	left, mid, right core.NodeID
	hasLeft, hasRight bool
	altNode   core.NodeID
}

// BuildFromReference builds a graph covering contig[start:end), then applies
// every record's decomposed bubbles in position order. The returned
// translation's From path is the single conceptual span [start,end) of the
// untouched reference interval; its To path is the ordered sequence of
// backbone pieces the primary path ends up visiting, mirroring edit.Apply's
// translation convention but collapsed to one entry because the backbone
// started life as a single unit rather than many pre-existing nodes.
func BuildFromReference(
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

	seq, err := provider.Substring(contig, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("construct: fetching %s[%d:%d): %w", contig, start, end, err)
	}

	g := mutate.New()
	g.Progress = cfg.observer
	backbone, err := g.Core.CreateNode(seq, nil)
	if err != nil {
		return nil, nil, err
	}

	if err := g.Paths.CreatePath(cfg.primaryPathName, false); err != nil {
		return nil, nil, err
	}
	if _, err := g.Paths.AppendMapping(cfg.primaryPathName,
		pathidx.Position{Node: backbone.ID, Orientation: core.Forward},
		[]pathidx.Edit{{FromLen: len(seq), ToLen: len(seq)}}); err != nil {
		return nil, nil, err
	}

	sorted := append([]vcfsrc.VariantRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	tracker := newPieceTracker(backbone.ID, len(seq))
	var bubbles []bubble

	for varIndex, rec := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		decomposed, err := decomposer.Decompose(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("construct: decomposing %s:%d: %w", rec.Contig, rec.Position, err)
		}
		for altIdx, alt := range rec.Alt {
			subAlleles, ok := decomposed[alt]
			if !ok {
				continue
			}
			for _, sa := range subAlleles {
				b, err := placeBubble(g, tracker, start, end, varIndex, altIdx+1, sa)
				if err != nil {
					return nil, nil, err
				}
				bubbles = append(bubbles, b)
			}
		}
	}

	if cfg.altPaths {
		if err := threadAltPaths(g, cfg, sorted, bubbles); err != nil {
			return nil, nil, err
		}
	}
	if cfg.phasePaths {
		if err := threadPhasePaths(g, cfg, sorted, bubbles); err != nil {
			return nil, nil, err
		}
	}

	tr, err := backboneTranslation(g, cfg, start, end)
	if err != nil {
		return nil, nil, err
	}
	g.Progress.Milestone("build_from_reference", "contig", contig, "records", len(records), "nodes", g.Core.NodeCount())
	return g, tr, nil
}

// placeBubble carves one sub-allele's ref span out of the backbone (dividing
// pieces as needed), creates its ALT node, and wires left/right flanks to
// both the ref segment and the ALT node (spec.md §8 scenario 2).
func placeBubble(g *mutate.Graph, tracker *pieceTracker, start, end, varIndex, altIndex int, sa vcfsrc.SubAllele) (bubble, error) {
	lo := sa.RefPosition - start
	hi := lo + len(sa.Ref)
	if lo < 0 || hi > end-start {
		return bubble{}, ErrRecordOutOfRange
	}
	if err := tracker.ensureCut(g, lo); err != nil {
		return bubble{}, err
	}
	if err := tracker.ensureCut(g, hi); err != nil {
		return bubble{}, err
	}
	left, mid, right, hasLeft, hasRight := tracker.segment(lo, hi)

	altNode, err := g.Core.CreateNode(sa.Alt, nil)
	if err != nil {
		return bubble{}, err
	}

	if hasLeft {
		if _, err := g.Core.CreateEdge(core.Side{Node: left, End: core.EndSide}, core.Side{Node: mid, End: core.Start}); err != nil {
			return bubble{}, err
		}
		if _, err := g.Core.CreateEdge(core.Side{Node: left, End: core.EndSide}, core.Side{Node: altNode.ID, End: core.Start}); err != nil {
			return bubble{}, err
		}
	}
	if hasRight {
		if _, err := g.Core.CreateEdge(core.Side{Node: mid, End: core.EndSide}, core.Side{Node: right, End: core.Start}); err != nil {
			return bubble{}, err
		}
		if _, err := g.Core.CreateEdge(core.Side{Node: altNode.ID, End: core.EndSide}, core.Side{Node: right, End: core.Start}); err != nil {
			return bubble{}, err
		}
	}

	return bubble{
		varIndex: varIndex, altIndex: altIndex,
		left: left, mid: mid, right: right,
		hasLeft: hasLeft, hasRight: hasRight,
		altNode: altNode.ID,
	}, nil
}

// backboneTranslation builds BuildFromReference's return translation from
// the primary path's final mapping sequence.
func backboneTranslation(g *mutate.Graph, cfg Config, start, end int) (*translate.Translation, error) {
	views, err := g.Paths.Mappings(cfg.primaryPathName)
	if err != nil {
		return nil, err
	}
	to := make(translate.Path, 0, len(views))
	for _, v := range views {
		n, err := g.Core.GetNode(v.Pos.Node)
		if err != nil {
			return nil, err
		}
		to = append(to, translate.Step{Node: v.Pos.Node, Orientation: v.Pos.Orientation, Offset: 0, Length: n.Length()})
	}
	return &translate.Translation{
		From: translate.Path{{Node: 0, Orientation: core.Forward, Offset: start, Length: end - start}},
		To:   to,
	}, nil
}
