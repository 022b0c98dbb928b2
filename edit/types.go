// File: types.go
// Role: Input shape for Apply and the sentinel errors it can return.
package edit

import (
	"github.com/lvlath-labs/vgraph/pathidx"
)

// ErrPathExists is returned when Apply is asked to add a path whose name is
// already present in the target index (spec.md §4.4: "inserting against a
// path name already present is rejected").
var ErrPathExists = pathidx.ErrPathExists

// InputMapping is one mapping of a path being added: a position on the
// current graph plus the edit list describing how the path's sequence
// relates to that position's node.
type InputMapping struct {
	Pos   pathidx.Position
	Edits []pathidx.Edit
}

// InputPath is one alignment path to weave into the graph: a name and its
// ordered mappings, expressed against the graph as it stands before Apply
// runs.
type InputPath struct {
	Name     string
	Circular bool
	Mappings []InputMapping
}
