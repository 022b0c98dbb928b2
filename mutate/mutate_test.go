package mutate_test

import (
	"testing"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/pathidx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDivideThenRead is spec.md §8 scenario 1: divide "ACGTACGT" at {3,5}.
func TestDivideThenRead(t *testing.T) {
	g := mutate.New()
	n, err := g.Core.CreateNode("ACGTACGT", nil)
	require.NoError(t, err)
	require.NoError(t, g.Paths.CreatePath("p", false))
	_, err = g.Paths.AppendMapping("p", pathidx.Position{Node: n.ID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 8, ToLen: 8}})
	require.NoError(t, err)

	pieces, err := g.DivideNode(n.ID, []int{3, 5})
	require.NoError(t, err)
	require.Len(t, pieces, 3)

	var seqs []string
	for _, id := range pieces {
		nn, err := g.Core.GetNode(id)
		require.NoError(t, err)
		seqs = append(seqs, nn.Sequence)
	}
	assert.Equal(t, []string{"ACG", "TA", "CGT"}, seqs)

	assert.True(t, g.Core.HasEdge(core.Side{Node: pieces[0], End: core.EndSide}, core.Side{Node: pieces[1], End: core.Start}))
	assert.True(t, g.Core.HasEdge(core.Side{Node: pieces[1], End: core.EndSide}, core.Side{Node: pieces[2], End: core.Start}))

	views, err := g.Paths.Mappings("p")
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, int64(1), views[0].Rank)
	assert.Less(t, views[0].Rank, views[1].Rank)
	assert.Less(t, views[1].Rank, views[2].Rank)
	assert.Equal(t, pieces[0], views[0].Pos.Node)
	assert.Equal(t, pieces[1], views[1].Pos.Node)
	assert.Equal(t, pieces[2], views[2].Pos.Node)
}

func TestDivideNodeRejectsOutOfRangeOffset(t *testing.T) {
	g := mutate.New()
	n, err := g.Core.CreateNode("ACGT", nil)
	require.NoError(t, err)
	_, err = g.DivideNode(n.ID, []int{0})
	assert.Error(t, err)
	_, err = g.DivideNode(n.ID, []int{4})
	assert.Error(t, err)
	_, err = g.DivideNode(n.ID, []int{99})
	assert.Error(t, err)
}

func TestUnchopReversesThreeWayDivision(t *testing.T) {
	g := mutate.New()
	n, err := g.Core.CreateNode("ACGTACGT", nil)
	require.NoError(t, err)
	require.NoError(t, g.Paths.CreatePath("p", false))
	_, err = g.Paths.AppendMapping("p", pathidx.Position{Node: n.ID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 8, ToLen: 8}})
	require.NoError(t, err)

	_, err = g.DivideNode(n.ID, []int{3, 5})
	require.NoError(t, err)

	fused, err := g.Unchop()
	require.NoError(t, err)
	assert.Equal(t, 1, fused)
	assert.Equal(t, 1, g.Core.NodeCount())

	require.NoError(t, g.Paths.CompactRanks("p"))
	views, err := g.Paths.Mappings("p")
	require.NoError(t, err)
	require.Len(t, views, 1)

	nodes := g.Core.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, "ACGTACGT", nodes[0].Sequence)
}

func TestForwardNullNodesConnectsNeighboursDirectly(t *testing.T) {
	g := mutate.New()
	a, _ := g.Core.CreateNode("AAAA", nil)
	null, _ := g.Core.CreateNode("", nil)
	b, _ := g.Core.CreateNode("CCCC", nil)
	_, err := g.Core.CreateEdge(core.Side{Node: a.ID, End: core.EndSide}, core.Side{Node: null.ID, End: core.Start})
	require.NoError(t, err)
	_, err = g.Core.CreateEdge(core.Side{Node: null.ID, End: core.EndSide}, core.Side{Node: b.ID, End: core.Start})
	require.NoError(t, err)

	n, err := g.ForwardNullNodes()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, g.Core.HasNode(null.ID))
	assert.True(t, g.Core.HasEdge(core.Side{Node: a.ID, End: core.EndSide}, core.Side{Node: b.ID, End: core.Start}))
}

func TestSimplifyToSiblingsMergesCommonPrefix(t *testing.T) {
	g := mutate.New()
	parent, _ := g.Core.CreateNode("G", nil)
	s1, _ := g.Core.CreateNode("ACGT", nil)
	s2, _ := g.Core.CreateNode("ACTT", nil)
	_, err := g.Core.CreateEdge(core.Side{Node: parent.ID, End: core.EndSide}, core.Side{Node: s1.ID, End: core.Start})
	require.NoError(t, err)
	_, err = g.Core.CreateEdge(core.Side{Node: parent.ID, End: core.EndSide}, core.Side{Node: s2.ID, End: core.Start})
	require.NoError(t, err)

	n, err := g.SimplifyToSiblings()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Exactly one surviving node should carry the shared prefix "AC".
	var sawPrefix bool
	for _, nd := range g.Core.Nodes() {
		if nd.Sequence == "AC" {
			sawPrefix = true
		}
	}
	assert.True(t, sawPrefix)
}

func TestIsValidDetectsMissingEdge(t *testing.T) {
	g := mutate.New()
	assert.True(t, g.IsValid(true, true, true))

	a, _ := g.Core.CreateNode("AAAA", nil)
	require.NoError(t, g.Paths.CreatePath("p", false))
	_, err := g.Paths.AppendMapping("p", pathidx.Position{Node: a.ID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 4, ToLen: 4}})
	require.NoError(t, err)
	assert.True(t, g.IsValid(true, true, true))

	b, _ := g.Core.CreateNode("CCCC", nil)
	_, err = g.Paths.AppendMapping("p", pathidx.Position{Node: b.ID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 4, ToLen: 4}})
	require.NoError(t, err)
	assert.False(t, g.IsValid(true, true, true), "a fully covered a followed by b needs an a.End -> b.Start edge")
}

func TestNormalizeIsIdempotentOnAlreadyNormalGraph(t *testing.T) {
	g := mutate.New()
	_, err := g.Core.CreateNode("ACGT", nil)
	require.NoError(t, err)

	n1, err := g.Normalize()
	require.NoError(t, err)
	assert.Greater(t, n1, 0)

	nodesBefore := g.Core.NodeCount()
	n2, err := g.Normalize()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n2, 1)
	assert.Equal(t, nodesBefore, g.Core.NodeCount())
}

// TestCompactIDsReindexesNodesAndKeepsPathMappingsInSync checks that
// CompactIDs renumbers nodes to a gap-free 1..N range and that every path
// mapping still resolves to the right (renumbered) node afterward.
func TestCompactIDsReindexesNodesAndKeepsPathMappingsInSync(t *testing.T) {
	g := mutate.New()
	lowID, highID := core.NodeID(5), core.NodeID(9)
	a, err := g.Core.CreateNode("AC", &lowID)
	require.NoError(t, err)
	b, err := g.Core.CreateNode("GT", &highID)
	require.NoError(t, err)
	_, err = g.Core.CreateEdge(core.Side{Node: a.ID, End: core.EndSide}, core.Side{Node: b.ID, End: core.Start})
	require.NoError(t, err)
	require.NoError(t, g.Paths.CreatePath("p", false))
	_, err = g.Paths.AppendMapping("p", pathidx.Position{Node: b.ID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 2, ToLen: 2}})
	require.NoError(t, err)

	g.CompactIDs()

	ids := make([]core.NodeID, 0, 2)
	for _, n := range g.Core.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []core.NodeID{1, 2}, ids)

	views, err := g.Paths.Mappings("p")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, g.Core.HasNode(views[0].Pos.Node))
	n, err := g.Core.GetNode(views[0].Pos.Node)
	require.NoError(t, err)
	assert.Equal(t, "GT", n.Sequence)
}

func TestRemoveOrphanNodesDropsOnlyEdgelessEmptyUnmappedNodes(t *testing.T) {
	g := mutate.New()
	_, err := g.Core.CreateNode("ACGT", nil)
	require.NoError(t, err)
	orphan, err := g.Core.CreateNode("", nil)
	require.NoError(t, err)
	anchored, err := g.Core.CreateNode("", nil)
	require.NoError(t, err)
	real, err := g.Core.CreateNode("AA", nil)
	require.NoError(t, err)
	_, err = g.Core.CreateEdge(core.Side{Node: anchored.ID, End: core.EndSide}, core.Side{Node: real.ID, End: core.Start})
	require.NoError(t, err)

	n, err := g.RemoveOrphanNodes()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, g.Core.HasNode(orphan.ID))
	assert.True(t, g.Core.HasNode(anchored.ID))
}

func TestDefragmentCompactsRanksAndIDs(t *testing.T) {
	g := mutate.New()
	highID := core.NodeID(7)
	_, err := g.Core.CreateNode("ACGT", &highID)
	require.NoError(t, err)
	require.NoError(t, g.Paths.CreatePath("p", false))
	_, err = g.Paths.AppendMapping("p", pathidx.Position{Node: highID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 4, ToLen: 4}})
	require.NoError(t, err)

	require.NoError(t, g.Defragment())

	ids := make([]core.NodeID, 0, 1)
	for _, n := range g.Core.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []core.NodeID{1}, ids)
}
