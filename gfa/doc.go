// Package gfa is the GFA v1 import/export external interface (spec.md §6):
// segment/link/path records in, a mutate.Graph out (and back), with a
// bluntification pass that removes non-zero link overlaps by cutting the
// overlapping nodes and inserting one shared node for the duplicated
// sequence.
package gfa
