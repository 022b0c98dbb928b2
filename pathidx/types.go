// File: types.go
// Role: Path, Mapping, Edit value types and sentinel errors.
package pathidx

import (
	"errors"

	"github.com/lvlath-labs/vgraph/core"
)

var (
	// ErrPathNotFound indicates an operation referenced an unknown path name.
	ErrPathNotFound = errors.New("pathidx: path not found")
	// ErrPathExists indicates CreatePath was called with a name already in use.
	ErrPathExists = errors.New("pathidx: path already exists")
	// ErrMappingNotFound indicates a handle no longer resolves to a live mapping.
	ErrMappingNotFound = errors.New("pathidx: mapping not found")
	// ErrOffsetOutOfRange indicates DivideMapping was asked to cut outside [0,len].
	ErrOffsetOutOfRange = errors.New("pathidx: divide offset out of range")
	// ErrNotCircular indicates ClosePath was called on a linear path.
	ErrNotCircular = errors.New("pathidx: path is not circular")
	// ErrMissingClosingEdge indicates a circular path's last->first edge is absent.
	ErrMissingClosingEdge = errors.New("pathidx: circular path is missing its closing edge")
)

// Edit describes one unit of correspondence between a path segment and the
// graph segment it overlays, per spec.md §3:
//
//	FromLen == ToLen, Sequence == ""   -> match
//	FromLen == ToLen == len(Sequence)  -> substitution
//	FromLen == 0                       -> insertion
//	ToLen   == 0                       -> deletion
type Edit struct {
	FromLen  int
	ToLen    int
	Sequence string // literal to-sequence; empty for a plain match
}

// IsMatch reports whether e is a plain match (no literal sequence recorded).
func (e Edit) IsMatch() bool { return e.Sequence == "" && e.FromLen == e.ToLen }

// IsInsertion reports whether e consumes none of the underlying node.
func (e Edit) IsInsertion() bool { return e.FromLen == 0 && e.ToLen > 0 }

// IsDeletion reports whether e contributes nothing to the path sequence.
func (e Edit) IsDeletion() bool { return e.ToLen == 0 && e.FromLen > 0 }

// IsSubstitution reports whether e replaces FromLen bases with a literal
// sequence of the same length.
func (e Edit) IsSubstitution() bool {
	return e.FromLen == e.ToLen && e.FromLen > 0 && e.Sequence != ""
}

// Position anchors a mapping to a node: the node id, the orientation it is
// read in, and Offset, which is always the forward-strand low coordinate of
// the mapped region regardless of orientation. A Forward mapping reads that
// region low-to-high starting at Offset; a Reverse mapping reads it
// high-to-low, starting at Offset+length-1 in forward coordinates.
type Position struct {
	Node        core.NodeID
	Orientation core.Orientation
	Offset      int
}

// mappingID is an internal, path-scoped identifier for one linked-list slot.
// It is never exposed directly; callers hold Handle values instead.
type mappingID uint64

// Handle is a generational reference to a mapping, stable across splices
// elsewhere in the same path (spec.md §9 design note: "cursors surviving
// insertion at unrelated positions").
type Handle struct {
	id  mappingID
	gen uint32
}

// mapping is the live record backing a Handle.
type mapping struct {
	id       mappingID
	gen      uint32
	path     string
	pos      Position
	rank     int64
	edits    []Edit
	prev     mappingID // 0 = none
	next     mappingID // 0 = none
	deleted  bool
}

// length returns the total from-length of the mapping's edits — the number
// of bases of node sequence the mapping covers end to end.
func (m *mapping) length() int {
	total := 0
	for _, e := range m.edits {
		total += e.FromLen
	}
	return total
}

// Path is a read-only snapshot of one named path's metadata.
type Path struct {
	Name     string
	Circular bool
}

// PathFragment is the shape of one path's mappings as a standalone record
// (kept in pathidx since only pathidx knows the Mapping/Edit shape).
// core.SubgraphRecord has no path field, so the subgraph stream loader does
// not read it.
type PathFragment struct {
	Path     string
	Circular bool
	Mappings []MappingView
}

// MappingView is a read-only snapshot of one mapping, returned by queries and
// used as the wire shape for PathFragment.
type MappingView struct {
	Handle Handle
	Path   string
	Pos    Position
	Rank   int64
	Edits  []Edit
}
