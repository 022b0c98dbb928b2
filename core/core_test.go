package core_test

import (
	"testing"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateNodeAllocatesIncreasingIDs(t *testing.T) {
	g := core.NewGraph()
	n1, err := g.CreateNode("ACGT", nil)
	require.NoError(t, err)
	n2, err := g.CreateNode("TTTT", nil)
	require.NoError(t, err)
	assert.Equal(t, core.NodeID(1), n1.ID)
	assert.Equal(t, core.NodeID(2), n2.ID)
}

func TestAddNodeZeroIDRejected(t *testing.T) {
	g := core.NewGraph()
	err := g.AddNode(core.Node{ID: 0, Sequence: "A"})
	assert.ErrorIs(t, err, core.ErrZeroID)
}

func TestCreateEdgeCanonicalizesDoublyReversed(t *testing.T) {
	g := core.NewGraph()
	a, _ := g.CreateNode("AAAA", nil)
	b, _ := g.CreateNode("CCCC", nil)

	// start(a) -> end(b) is doubly-reversed (FromStart=true, ToEnd=true in
	// the raw construction) and canonicalizes to end(b) -> start(a) with
	// neither flag set.
	id, err := g.CreateEdge(core.Side{Node: a.ID, End: core.Start}, core.Side{Node: b.ID, End: core.EndSide})
	require.NoError(t, err)
	assert.NotZero(t, id)
	e, err := g.GetEdge(id)
	require.NoError(t, err)
	assert.Equal(t, b.ID, e.From)
	assert.Equal(t, a.ID, e.To)
	assert.False(t, e.FromStart)
	assert.False(t, e.ToEnd)
	assert.True(t, g.HasEdge(core.Side{Node: a.ID, End: core.Start}, core.Side{Node: b.ID, End: core.EndSide}))
	assert.True(t, g.HasEdge(core.Side{Node: b.ID, End: core.EndSide}, core.Side{Node: a.ID, End: core.Start}))
}

func TestCreateEdgeIdempotent(t *testing.T) {
	g := core.NewGraph()
	a, _ := g.CreateNode("AAAA", nil)
	b, _ := g.CreateNode("CCCC", nil)
	s1 := core.Side{Node: a.ID, End: core.EndSide}
	s2 := core.Side{Node: b.ID, End: core.Start}
	id1, err := g.CreateEdge(s1, s2)
	require.NoError(t, err)
	id2, err := g.CreateEdge(s1, s2)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestSelfLoopIndexedOnce(t *testing.T) {
	g := core.NewGraph()
	a, _ := g.CreateNode("AAAA", nil)
	_, err := g.CreateEdge(core.Side{Node: a.ID, End: core.Start}, core.Side{Node: a.ID, End: core.Start})
	require.NoError(t, err)
	assert.Len(t, g.EdgesOf(core.Side{Node: a.ID, End: core.Start}), 1)
}

func TestDestroyNodeRemovesIncidentEdges(t *testing.T) {
	g := core.NewGraph()
	a, _ := g.CreateNode("AAAA", nil)
	b, _ := g.CreateNode("CCCC", nil)
	_, err := g.CreateEdge(core.Side{Node: a.ID, End: core.EndSide}, core.Side{Node: b.ID, End: core.Start})
	require.NoError(t, err)

	removed, err := g.DestroyNode(a.ID)
	require.NoError(t, err)
	assert.Len(t, removed, 1)
	assert.Equal(t, 0, g.EdgeCount())
	assert.False(t, g.HasNode(a.ID))
}

func TestCompactIDsProducesContiguousRange(t *testing.T) {
	g := core.NewGraph()
	five := core.NodeID(5)
	nine := core.NodeID(9)
	require.NoError(t, g.AddNode(core.Node{ID: five, Sequence: "AAAA"}))
	require.NoError(t, g.AddNode(core.Node{ID: nine, Sequence: "CCCC"}))
	remapped := map[core.NodeID]core.NodeID{}
	g.CompactIDs(func(old, new core.NodeID) { remapped[old] = new })
	assert.Equal(t, core.NodeID(1), remapped[five])
	assert.Equal(t, core.NodeID(2), remapped[nine])
	ids := make([]core.NodeID, 0, 2)
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []core.NodeID{1, 2}, ids)
}

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "ACGT", core.ReverseComplement("ACGT"))
	assert.Equal(t, "TTTT", core.ReverseComplement("AAAA"))
	assert.Equal(t, "N", core.ReverseComplement("N"))
}

func TestReadReverseTraversal(t *testing.T) {
	g := core.NewGraph()
	n, _ := g.CreateNode("ACGT", nil)
	seq, err := g.Read(core.Traversal{Node: n.ID, Orientation: core.Reverse})
	require.NoError(t, err)
	assert.Equal(t, "ACGT", seq) // palindromic revcomp
}
