// Package rdf is the Turtle/RDF export external interface (spec.md §6): a
// read-only walk over a core.Graph and a pathidx.Index that emits one triple
// set per node, edge, and path mapping. There is no import direction —
// RDF is a write-only sink for this spec, matching the teacher's own
// converterts package, which likewise exists to serialize toward an
// external representation rather than to round-trip one.
package rdf
