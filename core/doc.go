// Package core owns the bidirected node/edge store and its side index — the
// foundation every other vgraph package builds on.
//
// A Node carries a forward-strand DNA sequence and has exactly two sides
// (start and end). An Edge connects two node sides, not two nodes, so strand
// linkage is explicit: reading an edge's flags tells you whether traversing it
// flips strand. This is what makes the graph "bidirected" rather than merely
// directed or undirected.
//
//	core/      — Node, Side, Traversal, Edge, Graph (store + side index)
//
// Graph is safe for concurrent readers; all mutation acquires an exclusive
// lock. Handles returned by read methods (*Node, *Edge) are snapshots: they
// are invalidated by the next mutation, per the no-raw-handle-survival rule
// described in the package's design notes.
package core
