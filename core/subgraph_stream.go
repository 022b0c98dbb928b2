// File: subgraph_stream.go
// Role: Consumer-side shape of the external length-prefixed protobuf-framed
//       graph binary stream (spec.md §6). The actual framing/codec is out of
//       scope (spec.md §1); vgraph only defines the record shape a decoder
//       hands us and the duplicate-tolerant merge described in §6/§7.
package core

import "log/slog"

// EdgeSpec is the wire shape of one edge record: unlike Edge it carries no
// EdgeID, since stream records address edges by endpoints only.
type EdgeSpec struct {
	From      NodeID
	FromStart bool
	To        NodeID
	ToEnd     bool
}

// SubgraphRecord is the part of one binary-stream record that core loads: a
// set of nodes and a set of edges. It carries no path fragments; path
// mappings are not loaded by LoadSubgraphs or MergeSubgraph.
type SubgraphRecord struct {
	Nodes []Node
	Edges []EdgeSpec
}

// SubgraphReader yields the next record; ok is false once the stream is
// exhausted. The real implementation (protobuf/length-prefix decoding) lives
// outside vgraph; this is the seam it plugs into.
type SubgraphReader func() (rec *SubgraphRecord, ok bool, err error)

// LoadSubgraphs drains reader into g, merging each record with MergeSubgraph.
// It stops at the first decode error; duplicate nodes/edges across records
// are warned and skipped, per spec.md §6/§7.
func LoadSubgraphs(g *Graph, reader SubgraphReader, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	for {
		rec, ok, err := reader()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		MergeSubgraph(g, rec, log)
	}
}

// MergeSubgraph adds rec's nodes and edges into g. A node whose id is already
// present, or an edge already present, is skipped with a warning (spec.md §7
// "Duplicate on merge"); an edge whose endpoints are missing is skipped with
// a warning rather than failing the whole load.
func MergeSubgraph(g *Graph, rec *SubgraphRecord, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	for _, n := range rec.Nodes {
		if g.HasNode(n.ID) {
			log.Warn("subgraph merge: skipping duplicate/conflicting node", "node", n.ID)
			continue
		}
		if err := g.AddNode(n); err != nil {
			log.Warn("subgraph merge: skipping duplicate/conflicting node", "node", n.ID, "err", err)
		}
	}
	for _, es := range rec.Edges {
		side1 := Side{Node: es.From, End: EndSide}
		if es.FromStart {
			side1.End = Start
		}
		side2 := Side{Node: es.To, End: Start}
		if es.ToEnd {
			side2.End = EndSide
		}
		if !g.HasNode(es.From) || !g.HasNode(es.To) {
			log.Warn("subgraph merge: skipping edge with missing endpoint", "from", es.From, "to", es.To)
			continue
		}
		if g.HasEdge(side1, side2) {
			log.Warn("subgraph merge: skipping duplicate edge", "from", es.From, "to", es.To)
			continue
		}
		if _, err := g.CreateEdge(side1, side2); err != nil {
			log.Warn("subgraph merge: skipping edge", "from", es.From, "to", es.To, "err", err)
		}
	}
}
