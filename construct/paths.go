// File: paths.go
// Role: WithAltPaths/WithPhasePaths threading (spec.md §4.4 "optionally
//       weaving phase-set and alt paths"; SPEC_FULL.md §4.7). Built as a
//       second pass over the finished backbone, after every bubble has
//       already carved its nodes and edges into place.
package construct

import (
	"fmt"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/pathidx"
	"github.com/lvlath-labs/vgraph/vcfsrc"
)

// threadAltPaths creates one path per bubble, named after the variant's
// position and the 1-based ALT index, covering just that bubble's local
// span: its left flank (if any), the ALT node, and its right flank (if any).
func threadAltPaths(g *mutate.Graph, cfg Config, records []vcfsrc.VariantRecord, bubbles []bubble) error {
	for _, b := range bubbles {
		rec := records[b.varIndex]
		name := fmt.Sprintf("%s:alt:%d:%d", cfg.primaryPathName, rec.Position, b.altIndex)
		if err := g.Paths.CreatePath(name, false); err != nil {
			return err
		}
		var dangling *core.Side
		connect := func(s core.Side) error {
			if dangling != nil {
				if _, err := g.Core.CreateEdge(*dangling, s); err != nil {
					return err
				}
			}
			return nil
		}
		appendNode := func(id core.NodeID) error {
			trav := core.Traversal{Node: id, Orientation: core.Forward}
			if err := connect(trav.EntrySide()); err != nil {
				return err
			}
			exit := trav.ExitSide()
			dangling = &exit
			n, err := g.Core.GetNode(id)
			if err != nil {
				return err
			}
			_, err = g.Paths.AppendMapping(name, pathidx.Position{Node: id, Orientation: core.Forward},
				[]pathidx.Edit{{FromLen: n.Length(), ToLen: n.Length()}})
			return err
		}
		if b.hasLeft {
			if err := appendNode(b.left); err != nil {
				return err
			}
		}
		if err := appendNode(b.altNode); err != nil {
			return err
		}
		if b.hasRight {
			if err := appendNode(b.right); err != nil {
				return err
			}
		}
	}
	return nil
}

// threadPhasePaths creates one path per sample name seen across every
// record's genotypes, walking the backbone's final piece chain and
// substituting a bubble's ALT node wherever that sample's first allele call
// selects it (spec.md §4.4). A sample with no call at a given variant, or an
// allele call that does not match any decomposed bubble, takes the
// reference segment. This is a deliberately scoped reading of "weaving
// phase-set paths": it follows only each sample's first allele, not a full
// per-haplotype thread through every phase set.
func threadPhasePaths(g *mutate.Graph, cfg Config, records []vcfsrc.VariantRecord, bubbles []bubble) error {
	byMid := make(map[core.NodeID]bubble, len(bubbles))
	for _, b := range bubbles {
		byMid[b.mid] = b
	}

	order := make([]core.NodeID, 0)
	seen := make(map[core.NodeID]bool)
	for _, b := range bubbles {
		if b.hasLeft && !seen[b.left] {
			order = append(order, b.left)
			seen[b.left] = true
		}
		if !seen[b.mid] {
			order = append(order, b.mid)
			seen[b.mid] = true
		}
		if b.hasRight && !seen[b.right] {
			order = append(order, b.right)
			seen[b.right] = true
		}
	}

	samples := sampleOrder(records)
	for _, sample := range samples {
		name := fmt.Sprintf("%s:phase:%s", cfg.primaryPathName, sample)
		if err := g.Paths.CreatePath(name, false); err != nil {
			return err
		}
		var dangling *core.Side
		connect := func(s core.Side) error {
			if dangling != nil {
				if _, err := g.Core.CreateEdge(*dangling, s); err != nil {
					return err
				}
			}
			return nil
		}
		for _, id := range order {
			chosen := id
			if b, ok := byMid[id]; ok {
				if sampleSelectsAlt(records[b.varIndex], sample, b.altIndex) {
					chosen = b.altNode
				}
			}
			trav := core.Traversal{Node: chosen, Orientation: core.Forward}
			if err := connect(trav.EntrySide()); err != nil {
				return err
			}
			exit := trav.ExitSide()
			dangling = &exit
			n, err := g.Core.GetNode(chosen)
			if err != nil {
				return err
			}
			if _, err := g.Paths.AppendMapping(name, pathidx.Position{Node: chosen, Orientation: core.Forward},
				[]pathidx.Edit{{FromLen: n.Length(), ToLen: n.Length()}}); err != nil {
				return err
			}
		}
	}
	return nil
}

// sampleOrder lists every distinct sample name in first-seen order across
// every record's genotypes, for deterministic phase-path creation order.
func sampleOrder(records []vcfsrc.VariantRecord) []string {
	var order []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, gt := range rec.Genotypes {
			if !seen[gt.Sample] {
				seen[gt.Sample] = true
				order = append(order, gt.Sample)
			}
		}
	}
	return order
}

// sampleSelectsAlt reports whether sample's first allele call at rec points
// at the 1-based ALT index altIndex.
func sampleSelectsAlt(rec vcfsrc.VariantRecord, sample string, altIndex int) bool {
	for _, gt := range rec.Genotypes {
		if gt.Sample != sample {
			continue
		}
		return len(gt.Alleles) > 0 && gt.Alleles[0] == altIndex
	}
	return false
}
