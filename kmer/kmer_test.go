package kmer_test

import (
	"testing"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/kmer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnumerateIsolatedNode is spec.md §8 scenario 6.
func TestEnumerateIsolatedNode(t *testing.T) {
	g := core.NewGraph()
	n, err := g.CreateNode("ACGT", nil)
	require.NoError(t, err)

	recs, err := kmer.Enumerate(g, 3, kmer.Options{})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	byStart := make(map[int]kmer.Record, 2)
	for _, r := range recs {
		byStart[r.Start.Offset] = r
	}

	first, ok := byStart[0]
	require.True(t, ok)
	assert.Equal(t, "ACG", first.Kmer)
	assert.Equal(t, kmer.Position{Node: n.ID, Offset: 0}, first.Start)
	assert.Equal(t, uint(0), first.Prev.Count())
	require.Equal(t, []kmer.Position{{Node: n.ID, Offset: 3}}, first.NextPositions)

	second, ok := byStart[1]
	require.True(t, ok)
	assert.Equal(t, "CGT", second.Kmer)
	assert.Equal(t, uint(1), second.Prev.Count())
	assert.True(t, second.Prev.Test(0)) // 'A'
	assert.Equal(t, uint(0), second.Next.Count())
	assert.Empty(t, second.NextPositions)
}

// TestEnumerateLinearChainJoinsAcrossNodes checks that a kmer spanning a node
// boundary reports the correct cross-node start/end and next position.
func TestEnumerateLinearChainJoinsAcrossNodes(t *testing.T) {
	g := core.NewGraph()
	a, err := g.CreateNode("AC", nil)
	require.NoError(t, err)
	b, err := g.CreateNode("GT", nil)
	require.NoError(t, err)
	_, err = g.CreateEdge(core.Side{Node: a.ID, End: core.EndSide}, core.Side{Node: b.ID, End: core.Start})
	require.NoError(t, err)

	recs, err := kmer.Enumerate(g, 3, kmer.Options{MaxEdgesCrossed: 4})
	require.NoError(t, err)

	var crossing *kmer.Record
	for i := range recs {
		if recs[i].Kmer == "CGT" {
			crossing = &recs[i]
		}
	}
	require.NotNil(t, crossing)
	assert.Equal(t, kmer.Position{Node: a.ID, Offset: 1}, crossing.Start)
	assert.Equal(t, kmer.Position{Node: b.ID, Offset: 1}, crossing.End)
}

// TestEnumerateForwardOnlySkipsHigherIDEndpoint checks the lower-id-endpoint
// rule for a kmer crossing between two nodes.
func TestEnumerateForwardOnlySkipsHigherIDEndpoint(t *testing.T) {
	g := core.NewGraph()
	lowID := core.NodeID(1)
	highID := core.NodeID(5)
	low, err := g.CreateNode("GT", &lowID)
	require.NoError(t, err)
	high, err := g.CreateNode("AC", &highID)
	require.NoError(t, err)
	_, err = g.CreateEdge(core.Side{Node: high.ID, End: core.EndSide}, core.Side{Node: low.ID, End: core.Start})
	require.NoError(t, err)

	all, err := kmer.Enumerate(g, 3, kmer.Options{MaxEdgesCrossed: 4})
	require.NoError(t, err)
	fwdOnly, err := kmer.Enumerate(g, 3, kmer.Options{MaxEdgesCrossed: 4, ForwardOnly: true})
	require.NoError(t, err)

	assert.Less(t, len(fwdOnly), len(all))
	for _, r := range fwdOnly {
		assert.LessOrEqual(t, r.Start.Node, r.End.Node)
	}
}
