// Package vgraph is a bidirected variation-graph engine for pangenomics:
// build a graph from a reference sequence and a set of called variants, walk
// and rewrite it under the structural invariants a pangenome graph needs
// (node division, unchopping, sibling simplification, DAGification), and
// hand it off to external tools through GFA and Turtle/RDF.
//
// Under the hood, everything is organized under a handful of subpackages:
//
//	core/      — bidirected Graph, Side, Traversal, Edge: the node/edge store
//	pathidx/   — the path index: ranked mappings of a path onto graph nodes
//	mutate/    — structural mutators (divide, unchop, simplify, normalize) under one lock
//	construct/ — builds a graph from a reference contig plus VCF-shaped variant records
//	dagify/    — acyclic projection of a graph plus a topological node order
//	kmer/      — k-mer enumeration and k-path windows over paths
//	translate/ — graph-coordinate <-> reference-coordinate translation
//	vcfsrc/    — the VCF/FASTA-shaped interfaces construct consumes
//	gfa/       — GFA v1 segment/link/path import and export, with bluntification
//	rdf/       — Turtle export of nodes, links, and path mappings
//	edit/      — graph edits expressed in reference coordinates
//	progress/  — optional run-scoped milestone logging
//	diag/      — diagnostic snapshots for fatal structural invariant violations
package vgraph
