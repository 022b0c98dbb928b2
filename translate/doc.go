// Package translate implements the translation algebra (C9): a Translation
// is a piecewise map between two graphs, represented as a list of
// (from-path, to-path) pairs, the same shape as an ordinary path so it
// serializes identically (spec.md §6). Translations compose and invert, and
// overlay two translations end to end (over∘under) with orientation-flag
// XOR, letting dagify and the edit engine stack multiple rewrites and still
// answer "where did this new-graph position come from, in the original?".
package translate
