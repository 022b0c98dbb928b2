// File: cursor.go
// Role: Handle validity checks and a step-wise iterator for callers that need
//       to pause mid-walk (unlike ForEach, which holds the read lock for the
//       whole traversal).
package pathidx

import "github.com/lvlath-labs/vgraph/core"

// Valid reports whether h still resolves to a live mapping.
func (ix *Index) Valid(h Handle) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	_, err := ix.resolve(h)
	return err == nil
}

// Next returns the handle immediately following h on its path, and false if
// h was the last mapping (or is no longer live).
func (ix *Index) Next(h Handle) (Handle, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	m, err := ix.resolve(h)
	if err != nil || m.next == 0 {
		return Handle{}, false
	}
	nm := ix.mappings[m.next]
	return Handle{id: nm.id, gen: nm.gen}, true
}

// Prev returns the handle immediately preceding h on its path, and false if
// h was the first mapping (or is no longer live).
func (ix *Index) Prev(h Handle) (Handle, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	m, err := ix.resolve(h)
	if err != nil || m.prev == 0 {
		return Handle{}, false
	}
	pm := ix.mappings[m.prev]
	return Handle{id: pm.id, gen: pm.gen}, true
}

// Head returns the first mapping of path, if any.
func (ix *Index) Head(path string) (Handle, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pm, ok := ix.paths[path]
	if !ok || pm.head == 0 {
		return Handle{}, false
	}
	m := ix.mappings[pm.head]
	return Handle{id: m.id, gen: m.gen}, true
}

// Tail returns the last mapping of path, if any.
func (ix *Index) Tail(path string) (Handle, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pm, ok := ix.paths[path]
	if !ok || pm.tail == 0 {
		return Handle{}, false
	}
	m := ix.mappings[pm.tail]
	return Handle{id: m.id, gen: m.gen}, true
}

// Endpoints returns the entry traversal of the first mapping and the exit
// traversal of the last mapping of path — the pair ClosePath checks for a
// connecting edge between, when path is circular.
func (ix *Index) Endpoints(path string) (first, last core.Traversal, ok bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pm, found := ix.paths[path]
	if !found || pm.head == 0 {
		return core.Traversal{}, core.Traversal{}, false
	}
	h := ix.mappings[pm.head]
	t := ix.mappings[pm.tail]
	return core.Traversal{Node: h.pos.Node, Orientation: h.pos.Orientation},
		core.Traversal{Node: t.pos.Node, Orientation: t.pos.Orientation}, true
}

// IsCircular reports whether path was created circular.
func (ix *Index) IsCircular(path string) (bool, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pm, ok := ix.paths[path]
	if !ok {
		return false, ErrPathNotFound
	}
	return pm.circular, nil
}

// ClosePath validates that a circular path's last mapping connects back to
// its first mapping. hasEdge is supplied by the caller (mutate.Graph, which
// holds the underlying core.Graph) rather than pathidx holding a graph
// reference directly — pathidx only knows mappings, not edges.
func (ix *Index) ClosePath(path string, hasEdge func(exit, entry core.Side) bool) error {
	circular, err := ix.IsCircular(path)
	if err != nil {
		return err
	}
	if !circular {
		return ErrNotCircular
	}
	first, last, ok := ix.Endpoints(path)
	if !ok {
		return nil // empty path, trivially closed
	}
	if !hasEdge(last.ExitSide(), first.EntrySide()) {
		return ErrMissingClosingEdge
	}
	return nil
}
