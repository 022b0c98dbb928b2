// Package mutate is the graph mutator (C4): node division, simple-component
// concatenation ("unchop"), to-/from-sibling simplification, null-node
// forwarding, and the fixpoint normalization pipeline that composes them.
//
// mutate.Graph is a facade bundling a *core.Graph and a *pathidx.Index: every
// operation that changes topology also keeps path mappings consistent, since
// core itself has no notion of paths (spec.md §3's lifecycle rule).
package mutate
