// Package edit is the edit engine (C5): it applies a set of alignment paths
// expressed against the current graph (each a sequence of positions plus
// edits) as graph surgery — dividing nodes at the breakpoints the new paths
// imply, creating nodes for inserted sequence, wiring edges, and re-ranking
// every affected path — and emits the Translation describing how the old
// graph maps onto the new one. A substitution creates no node: its literal is
// recorded on the new path's mapping over the existing piece.
package edit
