// File: turtle.go
// Role: Turtle serialization of a variation graph (spec.md §6, SPEC_FULL.md
// §6): one triple set per node, one per edge (using an explicit predicate per
// from/to-side combination rather than encoding orientation into a bnode
// shape), and one per path mapping (an explicit rank predicate rather than
// recovering order from IRI string-slicing, per spec.md §9's open question).
//
// No third-party Turtle/RDF library appears anywhere in the example corpus,
// so this writes Turtle syntax directly with fmt.Fprintf — the same
// sticky-error io.Writer idiom ExaScience-elprep/filters/print-bqsr.go uses
// for its own text report (record the first write error, skip subsequent
// writes, return it once at the end) rather than checking every Fprintf.
package rdf

import (
	"fmt"
	"io"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/pathidx"
)

const (
	prefixes = `@prefix vg: <http://vgraph.example/ontology#> .
@prefix node: <http://vgraph.example/node/> .
@prefix path: <http://vgraph.example/path/> .
@prefix mapping: <http://vgraph.example/mapping/> .

`
)

type writer struct {
	w   io.Writer
	err error
}

func (tw *writer) printf(format string, a ...interface{}) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, a...)
}

// Write emits g's nodes and edges, and ix's path mappings, as Turtle triples.
// A nil ix omits path/mapping triples entirely (a caller exporting a graph
// with no path index of interest).
func Write(w io.Writer, g *core.Graph, ix *pathidx.Index) error {
	tw := &writer{w: w}
	tw.printf(prefixes)

	writeNodes(tw, g)
	writeEdges(tw, g)
	if ix != nil {
		if err := writePaths(tw, ix); err != nil {
			return err
		}
	}
	return tw.err
}

func writeNodes(tw *writer, g *core.Graph) {
	for _, n := range g.Nodes() {
		tw.printf("node:%d vg:sequence %q ;\n    vg:length %d .\n", n.ID, n.Sequence, n.Length())
	}
}

// linkPredicate names the triple for one edge by which side of each
// endpoint it leaves from and arrives at — the four from/to-side
// combinations spec.md §6 calls out, kept as four distinct predicates so a
// consumer never has to infer orientation from IRI shape.
func linkPredicate(fromEnd, toEnd core.End) string {
	switch {
	case fromEnd == core.Start && toEnd == core.Start:
		return "vg:linksStartToStart"
	case fromEnd == core.Start && toEnd == core.EndSide:
		return "vg:linksStartToEnd"
	case fromEnd == core.EndSide && toEnd == core.Start:
		return "vg:linksEndToStart"
	default:
		return "vg:linksEndToEnd"
	}
}

func writeEdges(tw *writer, g *core.Graph) {
	for _, e := range g.Edges() {
		from, to := e.FromSide(), e.ToSide()
		tw.printf("node:%d %s node:%d .\n", from.Node, linkPredicate(from.End, to.End), to.Node)
	}
}

func orientationLiteral(o core.Orientation) string {
	if o == core.Reverse {
		return "reverse"
	}
	return "forward"
}

func writePaths(tw *writer, ix *pathidx.Index) error {
	for _, p := range ix.Paths() {
		tw.printf("path:%s a vg:Path ;\n    vg:circular %t .\n", p.Name, p.Circular)
		views, err := ix.Mappings(p.Name)
		if err != nil {
			return err
		}
		for _, v := range views {
			tw.printf("mapping:%s_%d vg:path path:%s ;\n"+
				"    vg:rank %d ;\n"+
				"    vg:node node:%d ;\n"+
				"    vg:orientation %q ;\n"+
				"    vg:offset %d .\n",
				p.Name, v.Rank, p.Name, v.Rank, v.Pos.Node, orientationLiteral(v.Pos.Orientation), v.Pos.Offset)
		}
	}
	return nil
}
