package rdf_test

import (
	"strings"
	"testing"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/pathidx"
	"github.com/lvlath-labs/vgraph/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEmitsNodeEdgeAndMappingTriples(t *testing.T) {
	g := core.NewGraph()
	a, err := g.CreateNode("ACGT", nil)
	require.NoError(t, err)
	b, err := g.CreateNode("GGCC", nil)
	require.NoError(t, err)
	_, err = g.CreateEdge(core.Side{Node: a.ID, End: core.EndSide}, core.Side{Node: b.ID, End: core.Start})
	require.NoError(t, err)

	ix := pathidx.NewIndex()
	require.NoError(t, ix.CreatePath("p", false))
	_, err = ix.AppendMapping("p", pathidx.Position{Node: a.ID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 4, ToLen: 4}})
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, rdf.Write(&buf, g, ix))
	out := buf.String()

	assert.Contains(t, out, `node:1 vg:sequence "ACGT"`)
	assert.Contains(t, out, "vg:linksEndToStart")
	assert.Contains(t, out, "vg:path path:p")
	assert.Contains(t, out, "vg:rank 1")
	assert.Contains(t, out, `vg:orientation "forward"`)
}

func TestWriteOmitsPathTriplesWithNilIndex(t *testing.T) {
	g := core.NewGraph()
	_, err := g.CreateNode("AC", nil)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, rdf.Write(&buf, g, nil))
	assert.NotContains(t, buf.String(), "vg:path")
}
