package gfa_test

import (
	"testing"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/gfa"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/pathidx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportBluntLinkWiresDirectly(t *testing.T) {
	g := mutate.New()
	ids, err := gfa.Import(g, []gfa.Segment{
		{Name: "A", Sequence: "AC"},
		{Name: "B", Sequence: "GT"},
	}, []gfa.Link{
		{From: "A", FromOrient: core.Forward, To: "B", ToOrient: core.Forward, Overlap: "*"},
	}, nil, nil)
	require.NoError(t, err)
	require.Len(t, g.Core.Nodes(), 2)

	a, b := ids["A"], ids["B"]
	assert.True(t, g.Core.HasEdge(core.Side{Node: a, End: core.EndSide}, core.Side{Node: b, End: core.Start}))
}

// TestImportOverlapLinkSharesOneNode checks that a non-zero-overlap link
// collapses the duplicated region into a single shared node instead of
// leaving it represented twice.
func TestImportOverlapLinkSharesOneNode(t *testing.T) {
	g := mutate.New()
	_, err := gfa.Import(g, []gfa.Segment{
		{Name: "A", Sequence: "ACGTAC"},
		{Name: "B", Sequence: "TACGGG"},
	}, []gfa.Link{
		{From: "A", FromOrient: core.Forward, To: "B", ToOrient: core.Forward, Overlap: "3M"},
	}, nil, nil)
	require.NoError(t, err)

	nodes := g.Core.Nodes()
	require.Len(t, nodes, 3, "A and B's shared 3-base overlap should collapse into one node")

	var headID core.NodeID
	for _, n := range nodes {
		if g.Core.Degree(core.Side{Node: n.ID, End: core.Start}) == 0 {
			headID = n.ID
		}
	}
	require.NotZero(t, headID)

	var spelled string
	cur := core.Traversal{Node: headID, Orientation: core.Forward}
	for {
		s, err := g.Core.Read(cur)
		require.NoError(t, err)
		spelled += s
		adjs := g.Core.EdgesOf(cur.ExitSide())
		if len(adjs) == 0 {
			break
		}
		require.Len(t, adjs, 1)
		cur = core.Traversal{Node: adjs[0].Neighbor.Node, Orientation: core.Forward}
	}
	assert.Equal(t, "ACGTACGGG", spelled)
}

func TestImportOverlapConflictDowngradesToBlunt(t *testing.T) {
	g := mutate.New()
	ids, err := gfa.Import(g, []gfa.Segment{
		{Name: "A", Sequence: "ACGTAC"},
		{Name: "B", Sequence: "TACGGG"},
	}, []gfa.Link{
		{From: "A", FromOrient: core.Forward, To: "B", ToOrient: core.Forward, Overlap: "3M2D"},
	}, nil, nil)
	require.NoError(t, err)
	require.Len(t, g.Core.Nodes(), 2, "mismatched overlap lengths should downgrade to a blunt join")

	a, b := ids["A"], ids["B"]
	assert.True(t, g.Core.HasEdge(core.Side{Node: a, End: core.EndSide}, core.Side{Node: b, End: core.Start}))
}

func TestImportPathThreadsMappings(t *testing.T) {
	g := mutate.New()
	_, err := gfa.Import(g, []gfa.Segment{
		{Name: "A", Sequence: "AC"},
		{Name: "B", Sequence: "GT"},
	}, nil, []gfa.PathRecord{
		{Name: "x", Steps: []gfa.PathStep{
			{Segment: "A", Orientation: core.Forward},
			{Segment: "B", Orientation: core.Forward},
		}},
	}, nil)
	require.NoError(t, err)

	views, err := g.Paths.Mappings("x")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(1), views[0].Rank)
	assert.Equal(t, int64(2), views[1].Rank)
}

func TestExportRoundTripsSegmentsLinksPaths(t *testing.T) {
	cg := core.NewGraph()
	a, err := cg.CreateNode("AC", nil)
	require.NoError(t, err)
	b, err := cg.CreateNode("GT", nil)
	require.NoError(t, err)
	_, err = cg.CreateEdge(core.Side{Node: a.ID, End: core.EndSide}, core.Side{Node: b.ID, End: core.Start})
	require.NoError(t, err)

	ix := pathidx.NewIndex()
	require.NoError(t, ix.CreatePath("x", false))
	_, err = ix.AppendMapping("x", pathidx.Position{Node: a.ID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 2, ToLen: 2}})
	require.NoError(t, err)
	_, err = ix.AppendMapping("x", pathidx.Position{Node: b.ID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 2, ToLen: 2}})
	require.NoError(t, err)

	segs := gfa.ExportSegments(cg)
	require.Len(t, segs, 2)
	assert.Equal(t, "AC", segs[0].Sequence)

	links := gfa.ExportLinks(cg)
	require.Len(t, links, 1)
	assert.Equal(t, core.Forward, links[0].FromOrient)
	assert.Equal(t, core.Forward, links[0].ToOrient)
	assert.Equal(t, "*", links[0].Overlap)

	paths, err := gfa.ExportPaths(ix)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Len(t, paths[0].Steps, 2)
}
