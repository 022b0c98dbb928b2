// Package dagify implements the C7 DAGification pipeline: inversion
// unfolding by strand duplication, strongly-connected-component unrolling,
// and bidirected topological orientation, each emitting a translation back
// to the graph it started from (spec.md §4.5).
package dagify
