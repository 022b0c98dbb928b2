// File: import.go
// Role: Import resolves GFA segment/link/path records into a mutate.Graph
// (spec.md §6). Segments become nodes, links become edges (bluntified if
// they carry an overlap), paths become pathidx mappings threaded the same
// way construct/paths.go threads a sample's path: one AppendMapping per
// step behind a dangling-side cursor.
package gfa

import (
	"fmt"
	"log/slog"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/pathidx"
)

// ErrUnknownSegment indicates a link or path step names a segment Import was
// never given.
type ErrUnknownSegment struct{ Name string }

func (e ErrUnknownSegment) Error() string {
	return fmt.Sprintf("gfa: reference to unknown segment %q", e.Name)
}

// Import creates one node per segment, wires every link (bluntifying
// non-zero overlaps), and threads every path, into g. It returns the
// segment-name -> node id mapping it built, so a caller can correlate
// imported nodes back to their original GFA names. log receives bluntify
// conflict warnings; a nil log falls back to slog.Default().
func Import(g *mutate.Graph, segments []Segment, links []Link, paths []PathRecord, log *slog.Logger) (map[string]core.NodeID, error) {
	if log == nil {
		log = slog.Default()
	}
	byName := make(map[string]core.NodeID, len(segments))
	for _, s := range segments {
		n, err := g.Core.CreateNode(s.Sequence, nil)
		if err != nil {
			return nil, fmt.Errorf("gfa: segment %q: %w", s.Name, err)
		}
		byName[s.Name] = n.ID
	}

	resolve := func(name string) (core.NodeID, error) {
		id, ok := byName[name]
		if !ok {
			return 0, ErrUnknownSegment{Name: name}
		}
		return id, nil
	}

	for _, l := range links {
		from, err := resolve(l.From)
		if err != nil {
			return nil, err
		}
		to, err := resolve(l.To)
		if err != nil {
			return nil, err
		}
		rl := resolvedLink{From: from, FromOrient: l.FromOrient, To: to, ToOrient: l.ToOrient, Overlap: l.Overlap}
		if err := bluntify(g, rl, log); err != nil {
			return nil, fmt.Errorf("gfa: link %s->%s: %w", l.From, l.To, err)
		}
	}

	for _, p := range paths {
		if err := importPath(g, byName, p); err != nil {
			return nil, fmt.Errorf("gfa: path %q: %w", p.Name, err)
		}
	}

	return byName, nil
}

// importPath threads one GFA path record as a pathidx path, connecting
// consecutive steps with a fresh edge whenever the graph doesn't already
// have one (GFA paths commonly retread links already created above).
func importPath(g *mutate.Graph, byName map[string]core.NodeID, p PathRecord) error {
	if err := g.Paths.CreatePath(p.Name, false); err != nil {
		return err
	}
	var dangling *core.Side
	for _, step := range p.Steps {
		id, ok := byName[step.Segment]
		if !ok {
			return ErrUnknownSegment{Name: step.Segment}
		}
		trav := core.Traversal{Node: id, Orientation: step.Orientation}
		entry := trav.EntrySide()
		if dangling != nil && !g.Core.HasEdge(*dangling, entry) {
			if _, err := g.Core.CreateEdge(*dangling, entry); err != nil {
				return err
			}
		}
		exit := trav.ExitSide()
		dangling = &exit

		n, err := g.Core.GetNode(id)
		if err != nil {
			return err
		}
		if _, err := g.Paths.AppendMapping(p.Name, pathidx.Position{Node: id, Orientation: step.Orientation},
			[]pathidx.Edit{{FromLen: n.Length(), ToLen: n.Length()}}); err != nil {
			return err
		}
	}
	return nil
}
