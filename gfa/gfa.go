// File: gfa.go
// Role: GFA v1 record shapes and export (spec.md §6 "GFA import/export").
// Segments/links/paths are addressed by their GFA string names, not
// core.NodeID, since that is how the format itself identifies them;
// Import resolves names to node ids, Export assigns names from ids.
package gfa

import (
	"fmt"
	"sort"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/pathidx"
)

// Segment is one GFA S-line: a named sequence.
type Segment struct {
	Name     string
	Sequence string
}

// Link is one GFA L-line: an edge between two oriented segment ends, with an
// overlap CIGAR ("*" or empty for a blunt join).
type Link struct {
	From       string
	FromOrient core.Orientation
	To         string
	ToOrient   core.Orientation
	Overlap    string
}

// PathStep is one oriented segment visit within a GFA P-line.
type PathStep struct {
	Segment     string
	Orientation core.Orientation
}

// PathRecord is one GFA P-line: a named ordered list of steps, with an
// optional per-junction overlap CIGAR list (len(Steps)-1 entries, or empty
// when every junction is blunt).
type PathRecord struct {
	Name     string
	Steps    []PathStep
	Overlaps []string
}

// ExportSegments emits one Segment per node, named by its decimal node id,
// sorted by id ascending.
func ExportSegments(g *core.Graph) []Segment {
	nodes := g.Nodes()
	out := make([]Segment, len(nodes))
	for i, n := range nodes {
		out[i] = Segment{Name: fmt.Sprintf("%d", n.ID), Sequence: n.Sequence}
	}
	return out
}

// ExportLinks emits one Link per edge, sorted by edge id ascending. Exported
// links always carry a blunt overlap ("*"): the graph's own edges never
// record one, since overlapping sequence is only ever a GFA import/export
// concept (spec.md §6).
func ExportLinks(g *core.Graph) []Link {
	edges := g.Edges()
	out := make([]Link, len(edges))
	for i, e := range edges {
		fromOrient, toOrient := core.Forward, core.Forward
		if e.FromStart {
			fromOrient = core.Reverse
		}
		if e.ToEnd {
			toOrient = core.Reverse
		}
		out[i] = Link{
			From:       fmt.Sprintf("%d", e.From),
			FromOrient: fromOrient,
			To:         fmt.Sprintf("%d", e.To),
			ToOrient:   toOrient,
			Overlap:    "*",
		}
	}
	return out
}

// ExportPaths emits one PathRecord per path in ix, in its mapping rank order.
// Paths are named-sorted for deterministic output.
func ExportPaths(ix *pathidx.Index) ([]PathRecord, error) {
	paths := ix.Paths()
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = p.Name
	}
	sort.Strings(names)

	out := make([]PathRecord, len(names))
	for i, name := range names {
		views, err := ix.Mappings(name)
		if err != nil {
			return nil, err
		}
		steps := make([]PathStep, len(views))
		for j, v := range views {
			steps[j] = PathStep{Segment: fmt.Sprintf("%d", v.Pos.Node), Orientation: v.Pos.Orientation}
		}
		out[i] = PathRecord{Name: name, Steps: steps}
	}
	return out, nil
}
