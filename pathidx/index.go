// File: index.go
// Role: The path index proper: per-path doubly-linked mapping lists plus the
//       node -> mapping-set inverse index (spec.md §4.2).
// Concurrency: one RWMutex guards both the path catalogue and the inverse
//              index, mirroring the teacher's single-lock-per-concern split
//              (katalvlaran-lvlath/core/types.go's muVert/muEdgeAdj).
package pathidx

import (
	"sort"
	"sync"

	"github.com/lvlath-labs/vgraph/core"
)

type pathMeta struct {
	name     string
	circular bool
	head     mappingID
	tail     mappingID
	length   int64 // number of live mappings, for quick emptiness checks
}

// Index is the path index: named paths of mappings plus the node->mappings
// inverse index.
type Index struct {
	mu            sync.RWMutex
	paths         map[string]*pathMeta
	mappings      map[mappingID]*mapping
	nodeIndex     map[core.NodeID]map[mappingID]struct{}
	nextMappingID uint64
}

// NewIndex returns an empty path index.
func NewIndex() *Index {
	return &Index{
		paths:     make(map[string]*pathMeta),
		mappings:  make(map[mappingID]*mapping),
		nodeIndex: make(map[core.NodeID]map[mappingID]struct{}),
	}
}

func (ix *Index) allocID() mappingID {
	ix.nextMappingID++
	return mappingID(ix.nextMappingID)
}

// CreatePath registers a new, empty path. Fails with ErrPathExists if name is
// already in use.
func (ix *Index) CreatePath(name string, circular bool) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.paths[name]; ok {
		return ErrPathExists
	}
	ix.paths[name] = &pathMeta{name: name, circular: circular}
	return nil
}

// HasPath reports whether name is a known path.
func (ix *Index) HasPath(name string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, ok := ix.paths[name]
	return ok
}

// Paths returns every path's metadata, sorted by name.
func (ix *Index) Paths() []Path {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]Path, 0, len(ix.paths))
	for _, p := range ix.paths {
		out = append(out, Path{Name: p.name, Circular: p.circular})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DeletePath removes a path and all of its mappings (unhooking them from the
// inverse index). It is a no-op error (ErrPathNotFound) if absent.
func (ix *Index) DeletePath(name string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	pm, ok := ix.paths[name]
	if !ok {
		return ErrPathNotFound
	}
	for id := pm.head; id != 0; {
		m := ix.mappings[id]
		next := m.next
		ix.unindexNodeLocked(m)
		delete(ix.mappings, id)
		id = next
	}
	delete(ix.paths, name)
	return nil
}

func (ix *Index) indexNodeLocked(m *mapping) {
	set, ok := ix.nodeIndex[m.pos.Node]
	if !ok {
		set = make(map[mappingID]struct{})
		ix.nodeIndex[m.pos.Node] = set
	}
	set[m.id] = struct{}{}
}

func (ix *Index) unindexNodeLocked(m *mapping) {
	if set, ok := ix.nodeIndex[m.pos.Node]; ok {
		delete(set, m.id)
		if len(set) == 0 {
			delete(ix.nodeIndex, m.pos.Node)
		}
	}
}

func (ix *Index) newHandle(m *mapping) Handle { return Handle{id: m.id, gen: m.gen} }

func (ix *Index) resolve(h Handle) (*mapping, error) {
	m, ok := ix.mappings[h.id]
	if !ok || m.gen != h.gen || m.deleted {
		return nil, ErrMappingNotFound
	}
	return m, nil
}

// AppendMapping adds a mapping at the end of path, assigning it the next
// rank (tail rank + 1, or 1 if empty). Fails with ErrPathNotFound if path is
// unknown.
func (ix *Index) AppendMapping(path string, pos Position, edits []Edit) (Handle, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	pm, ok := ix.paths[path]
	if !ok {
		return Handle{}, ErrPathNotFound
	}
	rank := int64(1)
	if pm.tail != 0 {
		rank = ix.mappings[pm.tail].rank + 1
	}
	m := &mapping{id: ix.allocID(), gen: 1, path: path, pos: pos, rank: rank, edits: append([]Edit(nil), edits...)}
	ix.mappings[m.id] = m
	ix.indexNodeLocked(m)
	if pm.tail != 0 {
		ix.mappings[pm.tail].next = m.id
		m.prev = pm.tail
	} else {
		pm.head = m.id
	}
	pm.tail = m.id
	pm.length++
	return ix.newHandle(m), nil
}

// PrependMapping adds a mapping at the start of path, assigning it a rank one
// below the current head's rank (so it precedes every existing mapping).
func (ix *Index) PrependMapping(path string, pos Position, edits []Edit) (Handle, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	pm, ok := ix.paths[path]
	if !ok {
		return Handle{}, ErrPathNotFound
	}
	rank := int64(1)
	if pm.head != 0 {
		rank = ix.mappings[pm.head].rank - 1
	}
	m := &mapping{id: ix.allocID(), gen: 1, path: path, pos: pos, rank: rank, edits: append([]Edit(nil), edits...)}
	ix.mappings[m.id] = m
	ix.indexNodeLocked(m)
	if pm.head != 0 {
		ix.mappings[pm.head].prev = m.id
		m.next = pm.head
	} else {
		pm.tail = m.id
	}
	pm.head = m.id
	pm.length++
	return ix.newHandle(m), nil
}

// InsertMapping inserts a new mapping immediately after the mapping
// identified by after, splicing it into the linked list in O(1) without
// disturbing any other handle (spec.md §9 design note on stable cursors).
func (ix *Index) InsertMapping(after Handle, pos Position, edits []Edit, rank int64) (Handle, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	prevM, err := ix.resolve(after)
	if err != nil {
		return Handle{}, err
	}
	pm := ix.paths[prevM.path]
	m := &mapping{id: ix.allocID(), gen: 1, path: prevM.path, pos: pos, rank: rank, edits: append([]Edit(nil), edits...)}
	ix.mappings[m.id] = m
	ix.indexNodeLocked(m)

	m.prev = prevM.id
	m.next = prevM.next
	if prevM.next != 0 {
		ix.mappings[prevM.next].prev = m.id
	} else {
		pm.tail = m.id
	}
	prevM.next = m.id
	pm.length++
	return ix.newHandle(m), nil
}

// RemoveMapping unhooks h from both indexes and returns a Cursor describing
// where it sat, so the caller (mutate, during node division) can splice
// replacement mappings back into the same slot.
type Cursor struct {
	Path     string
	Prev     Handle // zero Handle if h was the head
	Next     Handle // zero Handle if h was the tail
	HadPrev  bool
	HadNext  bool
	Rank     int64
}

// RemoveMapping detaches h from its path and the inverse index.
func (ix *Index) RemoveMapping(h Handle) (Cursor, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	m, err := ix.resolve(h)
	if err != nil {
		return Cursor{}, err
	}
	pm := ix.paths[m.path]
	cur := Cursor{Path: m.path, Rank: m.rank}
	if m.prev != 0 {
		pmv := ix.mappings[m.prev]
		pmv.next = m.next
		cur.Prev = Handle{id: pmv.id, gen: pmv.gen}
		cur.HadPrev = true
	} else {
		pm.head = m.next
	}
	if m.next != 0 {
		nmv := ix.mappings[m.next]
		nmv.prev = m.prev
		cur.Next = Handle{id: nmv.id, gen: nmv.gen}
		cur.HadNext = true
	} else {
		pm.tail = m.prev
	}
	ix.unindexNodeLocked(m)
	m.deleted = true
	delete(ix.mappings, m.id)
	pm.length--
	return cur, nil
}

// SpliceAfter inserts a brand-new mapping at the position described by a
// Cursor's Prev handle (or at the path's head if the cursor had no
// predecessor), reusing RemoveMapping's output to re-thread divided pieces in
// order. Callers divide left-to-right, so repeated SpliceAfter calls with the
// previously inserted handle thread the whole sequence back in.
func (ix *Index) SpliceAfter(cur Cursor, after Handle, hadAfter bool, pos Position, edits []Edit, rank int64) (Handle, error) {
	if !hadAfter {
		return ix.prependAtHeadOf(cur.Path, pos, edits, rank)
	}
	return ix.InsertMapping(after, pos, edits, rank)
}

func (ix *Index) prependAtHeadOf(path string, pos Position, edits []Edit, rank int64) (Handle, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	pm, ok := ix.paths[path]
	if !ok {
		return Handle{}, ErrPathNotFound
	}
	m := &mapping{id: ix.allocID(), gen: 1, path: path, pos: pos, rank: rank, edits: append([]Edit(nil), edits...)}
	ix.mappings[m.id] = m
	ix.indexNodeLocked(m)
	if pm.head != 0 {
		ix.mappings[pm.head].prev = m.id
		m.next = pm.head
	} else {
		pm.tail = m.id
	}
	pm.head = m.id
	pm.length++
	return ix.newHandle(m), nil
}

// DivideMapping cuts mapping h `cut` node bases (edit from-lengths) into the
// mapping, counted in reading order from its start, producing two mappings
// whose lengths sum to the original. The edit list is cut at the edit
// boundary containing `cut`; if the cut falls inside a non-match edit with a
// literal sequence, the literal is split at the corresponding byte offset.
// The left piece keeps h's rank; the right piece gets the left's rank plus
// one, which can equal the next mapping's rank, so callers run CompactRanks
// after a batch of divisions.
func (ix *Index) DivideMapping(h Handle, cut int) (left, right Handle, err error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	m, err := ix.resolve(h)
	if err != nil {
		return Handle{}, Handle{}, err
	}
	total := m.length()
	if cut < 0 || cut > total {
		return Handle{}, Handle{}, ErrOffsetOutOfRange
	}
	if cut == 0 || cut == total {
		return ix.newHandle(m), ix.newHandle(m), nil
	}

	leftEdits, rightEdits := splitEdits(m.edits, cut)
	leftLen := 0
	for _, e := range leftEdits {
		leftLen += e.FromLen
	}
	rightLen := total - leftLen
	origOffset := m.pos.Offset

	// Position.Offset is always the forward-strand low coordinate of the
	// mapped region, regardless of orientation. On a Forward mapping reading
	// order runs low->high, so the first (left) piece keeps the low
	// coordinate. On a Reverse mapping reading order runs high->low, so the
	// first (left) piece is the one sitting at the *high* end.
	var leftOffset, rightOffset int
	if m.pos.Orientation == core.Reverse {
		leftOffset = origOffset + rightLen
		rightOffset = origOffset
	} else {
		leftOffset = origOffset
		rightOffset = origOffset + leftLen
	}

	rightPos := Position{Node: m.pos.Node, Orientation: m.pos.Orientation, Offset: rightOffset}
	rightRank := m.rank + 1 // caller compacts ranks after a batch of divisions

	// Mutate m in place into the left piece, then splice a new right piece
	// after it — this preserves m's Handle (and gen) as the left result,
	// matching "preserves rank on the left part" from spec.md §4.2.
	m.edits = leftEdits
	m.pos.Offset = leftOffset

	rm := &mapping{id: ix.allocID(), gen: 1, path: m.path, pos: rightPos, rank: rightRank, edits: rightEdits}
	ix.mappings[rm.id] = rm
	ix.indexNodeLocked(rm)
	rm.prev = m.id
	rm.next = m.next
	if m.next != 0 {
		ix.mappings[m.next].prev = rm.id
	} else {
		ix.paths[m.path].tail = rm.id
	}
	m.next = rm.id
	ix.paths[m.path].length++

	return ix.newHandle(m), ix.newHandle(rm), nil
}

// splitEdits partitions edits into a left list consuming exactly `cut`
// from-bases and a right list consuming the remainder, splitting the edit
// straddling the boundary (and its literal sequence, if any) as needed.
func splitEdits(edits []Edit, cut int) (left, right []Edit) {
	remaining := cut
	i := 0
	for ; i < len(edits); i++ {
		e := edits[i]
		if remaining == 0 {
			break
		}
		if e.FromLen <= remaining {
			left = append(left, e)
			remaining -= e.FromLen
			continue
		}
		// split e itself
		headLen := remaining
		tailLen := e.FromLen - remaining
		if e.Sequence == "" {
			left = append(left, Edit{FromLen: headLen, ToLen: headLen})
			right = append(right, Edit{FromLen: tailLen, ToLen: tailLen})
		} else {
			left = append(left, Edit{FromLen: headLen, ToLen: headLen, Sequence: e.Sequence[:headLen]})
			right = append(right, Edit{FromLen: tailLen, ToLen: tailLen, Sequence: e.Sequence[headLen:]})
		}
		remaining = 0
		i++
		break
	}
	right = append(right, edits[i:]...)
	return left, right
}

// ReassignNode rewrites the node a mapping points at, updating the inverse
// index. Used by node division (pieces keep their mapping but move to a new
// node) and concatenation.
func (ix *Index) ReassignNode(h Handle, newNode core.NodeID, newOffset int) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	m, err := ix.resolve(h)
	if err != nil {
		return err
	}
	ix.unindexNodeLocked(m)
	m.pos.Node = newNode
	m.pos.Offset = newOffset
	ix.indexNodeLocked(m)
	return nil
}

// SwapNodeIDs bulk-rewrites every mapping's node id per the supplied mapping,
// for use from core.Graph.CompactIDs' remap callback or SwapNodeID.
func (ix *Index) SwapNodeIDs(remap map[core.NodeID]core.NodeID) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if len(remap) == 0 {
		return
	}
	newNodeIndex := make(map[core.NodeID]map[mappingID]struct{}, len(ix.nodeIndex))
	for oldNode, set := range ix.nodeIndex {
		newNode := oldNode
		if nn, ok := remap[oldNode]; ok {
			newNode = nn
		}
		dst, ok := newNodeIndex[newNode]
		if !ok {
			dst = make(map[mappingID]struct{}, len(set))
			newNodeIndex[newNode] = dst
		}
		for id := range set {
			dst[id] = struct{}{}
			if m, ok := ix.mappings[id]; ok {
				m.pos.Node = newNode
			}
		}
	}
	ix.nodeIndex = newNodeIndex
}

// CompactRanks renumbers every mapping of path 1..n in linked-list order.
func (ix *Index) CompactRanks(path string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	pm, ok := ix.paths[path]
	if !ok {
		return ErrPathNotFound
	}
	rank := int64(1)
	for id := pm.head; id != 0; {
		m := ix.mappings[id]
		m.rank = rank
		rank++
		id = m.next
	}
	return nil
}

// ForEach calls fn for every mapping of path, in rank (list) order. It stops
// early if fn returns false.
func (ix *Index) ForEach(path string, fn func(MappingView) bool) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pm, ok := ix.paths[path]
	if !ok {
		return ErrPathNotFound
	}
	for id := pm.head; id != 0; {
		m := ix.mappings[id]
		if !fn(toView(m)) {
			return nil
		}
		id = m.next
	}
	return nil
}

// Mappings returns every mapping of path as a slice, in order.
func (ix *Index) Mappings(path string) ([]MappingView, error) {
	var out []MappingView
	err := ix.ForEach(path, func(v MappingView) bool {
		out = append(out, v)
		return true
	})
	return out, err
}

func toView(m *mapping) MappingView {
	return MappingView{
		Handle: Handle{id: m.id, gen: m.gen},
		Path:   m.path,
		Pos:    m.pos,
		Rank:   m.rank,
		Edits:  append([]Edit(nil), m.edits...),
	}
}

// OfNode returns every live mapping referencing node.
func (ix *Index) OfNode(node core.NodeID) []MappingView {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	set := ix.nodeIndex[node]
	out := make([]MappingView, 0, len(set))
	for id := range set {
		out = append(out, toView(ix.mappings[id]))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Node != out[j].Pos.Node {
			return out[i].Pos.Node < out[j].Pos.Node
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

// PathTraversal is one path's visit to a node: its orientation and rank.
type PathTraversal struct {
	Path        string
	Orientation core.Orientation
	Rank        int64
}

// NodePathTraversals returns, for every mapping on node, the path and
// orientation it was visited with.
func (ix *Index) NodePathTraversals(node core.NodeID) []PathTraversal {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	set := ix.nodeIndex[node]
	out := make([]PathTraversal, 0, len(set))
	for id := range set {
		m := ix.mappings[id]
		out = append(out, PathTraversal{Path: m.path, Orientation: m.pos.Orientation, Rank: m.rank})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

// Get returns a read-only snapshot of the mapping identified by h.
func (ix *Index) Get(h Handle) (MappingView, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	m, err := ix.resolve(h)
	if err != nil {
		return MappingView{}, err
	}
	return toView(m), nil
}

// NodeMappingCount returns how many live mappings reference node; used by
// mutate to decide whether a node is still referenced by any path.
func (ix *Index) NodeMappingCount(node core.NodeID) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.nodeIndex[node])
}
