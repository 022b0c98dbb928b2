// File: dump.go
// Role: DumpFatal (spec.md §7, SPEC_FULL.md §7): a diagnostic snapshot
// writer for the "Fatal; dump graph to diagnostic file and abort" branches
// of the error taxonomy. Structural invariant violations return the dump's
// path wrapped into the caller's own error rather than calling os.Exit, so a
// library caller keeps control of process lifetime.
//
// Snapshot shape is grounded on core/methods_clone.go's Clone/CloneEmpty
// pattern: read the store's node/edge/path counts under the same kind of
// lock Clone takes, rather than a second ad hoc locking scheme. No pack
// repo carries a crash-dump or diagnostics library, so the file format is
// plain encoding/json written to a fresh os.CreateTemp file — stdlib is the
// only real option here.
package diag

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
)

// maxSampleIDs bounds how many node ids a Snapshot records (the lowest ids
// in the graph, not a selection of offending ones), so a dump of a large
// graph stays a readable size.
const maxSampleIDs = 32

// Snapshot is the JSON shape written by DumpFatal.
type Snapshot struct {
	Time      time.Time     `json:"time"`
	Reason    string        `json:"reason"`
	NodeCount int           `json:"node_count"`
	EdgeCount int           `json:"edge_count"`
	PathCount int           `json:"path_count"`
	SampleIDs []core.NodeID `json:"sample_node_ids,omitempty"`
}

// DumpFatal writes a Snapshot of g's node/edge/path counts and up to
// maxSampleIDs node ids to a new temp file, and returns its path. reason is
// recorded verbatim as the snapshot's Reason field; DumpFatal does not wrap
// or alter it — the caller's own error wraps the returned path.
func DumpFatal(g *mutate.Graph, reason error) (path string, err error) {
	nodes := g.Core.Nodes()
	sample := make([]core.NodeID, 0, maxSampleIDs)
	for _, n := range nodes {
		if len(sample) >= maxSampleIDs {
			break
		}
		sample = append(sample, n.ID)
	}

	snap := Snapshot{
		Reason:    reason.Error(),
		NodeCount: g.Core.NodeCount(),
		EdgeCount: g.Core.EdgeCount(),
		PathCount: len(g.Paths.Paths()),
		SampleIDs: sample,
	}

	f, err := os.CreateTemp("", "vgraph-diag-*.json")
	if err != nil {
		return "", fmt.Errorf("diag: creating dump file: %w", err)
	}
	defer f.Close()

	snap.Time = time.Now()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return "", fmt.Errorf("diag: writing dump file: %w", err)
	}
	return f.Name(), nil
}

// ErrFatalInvariant wraps a DumpFatal path so a caller can report both the
// triggering error and where its diagnostic snapshot landed in one value.
type ErrFatalInvariant struct {
	Reason   error
	DumpPath string
}

func (e *ErrFatalInvariant) Error() string {
	return fmt.Sprintf("%v (diagnostic dump: %s)", e.Reason, e.DumpPath)
}

func (e *ErrFatalInvariant) Unwrap() error { return e.Reason }

// Fatal dumps g's snapshot and returns an *ErrFatalInvariant wrapping reason
// and the dump's path — the one call a §7 "fatal" branch needs.
func Fatal(g *mutate.Graph, reason error) error {
	path, err := DumpFatal(g, reason)
	if err != nil {
		return fmt.Errorf("diag: %w (original fatal reason: %v)", err, reason)
	}
	return &ErrFatalInvariant{Reason: reason, DumpPath: path}
}
