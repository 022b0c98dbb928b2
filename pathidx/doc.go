// Package pathidx is the path index (C3): named paths made of ordered
// mappings, each mapping an oriented position on a node plus an edit list,
// with an inverse index from node id to the mappings that reference it.
//
// Mappings are addressed by generational handles rather than raw pointers, so
// that node division can re-insert the divided pieces at the same place in a
// path without invalidating cursors held elsewhere (spec.md §9 design note).
package pathidx
