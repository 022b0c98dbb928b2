package diag_test

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/diag"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/pathidx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpFatalWritesReadableSnapshot(t *testing.T) {
	g := mutate.New()
	n, err := g.Core.CreateNode("ACGT", nil)
	require.NoError(t, err)
	require.NoError(t, g.Paths.CreatePath("p", false))
	_, err = g.Paths.AppendMapping("p", pathidx.Position{Node: n.ID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 4, ToLen: 4}})
	require.NoError(t, err)

	reason := errors.New("sibling set orientation mismatch")
	path, err := diag.DumpFatal(g, reason)
	require.NoError(t, err)
	defer os.Remove(path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var snap diag.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, reason.Error(), snap.Reason)
	assert.Equal(t, 1, snap.NodeCount)
	assert.Equal(t, 1, snap.PathCount)
	assert.Equal(t, []core.NodeID{n.ID}, snap.SampleIDs)
}

func TestFatalWrapsReasonAndDumpPath(t *testing.T) {
	g := mutate.New()
	reason := mutate.ErrOrientationMismatch

	err := diag.Fatal(g, reason)
	var fatalErr *diag.ErrFatalInvariant
	require.ErrorAs(t, err, &fatalErr)
	defer os.Remove(fatalErr.DumpPath)

	assert.True(t, errors.Is(err, reason))
	assert.FileExists(t, fatalErr.DumpPath)
}
