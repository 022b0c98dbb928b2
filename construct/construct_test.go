package construct_test

import (
	"context"
	"testing"

	"github.com/lvlath-labs/vgraph/construct"
	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/vcfsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastaProvider is a fixed-string ContigProvider for tests.
type fastaProvider struct {
	contig string
	seq    string
}

func (p fastaProvider) Substring(contig string, start, end int) (string, error) {
	return p.seq[start:end], nil
}

// snpDecomposer treats each ALT as a single substitution sub-allele at the
// record's own position, with no further splitting — enough to exercise
// BuildFromReference without needing a real VCF decomposer.
type snpDecomposer struct{}

func (snpDecomposer) Decompose(rec vcfsrc.VariantRecord) (map[string][]vcfsrc.SubAllele, error) {
	out := make(map[string][]vcfsrc.SubAllele, len(rec.Alt))
	for _, alt := range rec.Alt {
		out[alt] = []vcfsrc.SubAllele{{RefPosition: rec.Position, Ref: rec.Ref, Alt: alt}}
	}
	return out, nil
}

// TestBuildFromReferenceSNPBubble is spec.md §8 scenario 2.
func TestBuildFromReferenceSNPBubble(t *testing.T) {
	provider := fastaProvider{contig: "chr1", seq: "ACGT"}
	records := []vcfsrc.VariantRecord{{
		Contig: "chr1", Position: 2, Ref: "G", Alt: []string{"A"},
	}}

	g, tr, err := construct.BuildFromReference(context.Background(), "chr1", 0, 4, provider, records, snpDecomposer{})
	require.NoError(t, err)
	require.NotNil(t, tr)

	var ac, gNode, a, tNode core.NodeID
	seqs := map[string]int{}
	for _, n := range g.Core.Nodes() {
		seqs[n.Sequence]++
		switch n.Sequence {
		case "AC":
			ac = n.ID
		case "G":
			gNode = n.ID
		case "A":
			a = n.ID
		case "T":
			tNode = n.ID
		}
	}
	assert.Equal(t, map[string]int{"AC": 1, "G": 1, "A": 1, "T": 1}, seqs)

	assert.True(t, g.Core.HasEdge(core.Side{Node: ac, End: core.EndSide}, core.Side{Node: gNode, End: core.Start}))
	assert.True(t, g.Core.HasEdge(core.Side{Node: ac, End: core.EndSide}, core.Side{Node: a, End: core.Start}))
	assert.True(t, g.Core.HasEdge(core.Side{Node: gNode, End: core.EndSide}, core.Side{Node: tNode, End: core.Start}))
	assert.True(t, g.Core.HasEdge(core.Side{Node: a, End: core.EndSide}, core.Side{Node: tNode, End: core.Start}))

	views, err := g.Paths.Mappings("chr1")
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, []core.NodeID{ac, gNode, tNode}, []core.NodeID{views[0].Pos.Node, views[1].Pos.Node, views[2].Pos.Node})
}

func TestBuildFromReferenceRejectsEmptyInterval(t *testing.T) {
	provider := fastaProvider{contig: "chr1", seq: "ACGT"}
	_, _, err := construct.BuildFromReference(context.Background(), "chr1", 2, 2, provider, nil, snpDecomposer{})
	assert.ErrorIs(t, err, construct.ErrInvalidInterval)
}

func TestBuildFromReferenceWithAltPathsCreatesOneAltPathPerBubble(t *testing.T) {
	provider := fastaProvider{contig: "chr1", seq: "ACGT"}
	records := []vcfsrc.VariantRecord{{
		Contig: "chr1", Position: 2, Ref: "G", Alt: []string{"A"},
	}}

	g, _, err := construct.BuildFromReference(context.Background(), "chr1", 0, 4, provider, records, snpDecomposer{}, construct.WithAltPaths())
	require.NoError(t, err)
	assert.True(t, g.Paths.HasPath("chr1:alt:2:1"))

	views, err := g.Paths.Mappings("chr1:alt:2:1")
	require.NoError(t, err)
	require.Len(t, views, 3)
	var seqs []string
	for _, v := range views {
		n, err := g.Core.GetNode(v.Pos.Node)
		require.NoError(t, err)
		seqs = append(seqs, n.Sequence)
	}
	assert.Equal(t, []string{"AC", "A", "T"}, seqs)
}

func TestBuildFromReferenceWithPhasePathsFollowsGenotype(t *testing.T) {
	provider := fastaProvider{contig: "chr1", seq: "ACGT"}
	records := []vcfsrc.VariantRecord{{
		Contig: "chr1", Position: 2, Ref: "G", Alt: []string{"A"},
		Genotypes: []vcfsrc.Genotype{
			{Sample: "s1", Alleles: []int{1}},
			{Sample: "s2", Alleles: []int{0}},
		},
	}}

	g, _, err := construct.BuildFromReference(context.Background(), "chr1", 0, 4, provider, records, snpDecomposer{}, construct.WithPhasePaths())
	require.NoError(t, err)

	s1Views, err := g.Paths.Mappings("chr1:phase:s1")
	require.NoError(t, err)
	var s1seqs []string
	for _, v := range s1Views {
		n, _ := g.Core.GetNode(v.Pos.Node)
		s1seqs = append(s1seqs, n.Sequence)
	}
	assert.Equal(t, []string{"AC", "A", "T"}, s1seqs)

	s2Views, err := g.Paths.Mappings("chr1:phase:s2")
	require.NoError(t, err)
	var s2seqs []string
	for _, v := range s2Views {
		n, _ := g.Core.GetNode(v.Pos.Node)
		s2seqs = append(s2seqs, n.Sequence)
	}
	assert.Equal(t, []string{"AC", "G", "T"}, s2seqs)
}

func TestBuildParallelMatchesSequentialForMultipleShards(t *testing.T) {
	provider := fastaProvider{contig: "chr1", seq: "ACGTACGTACGT"}
	records := []vcfsrc.VariantRecord{
		{Contig: "chr1", Position: 2, Ref: "G", Alt: []string{"A"}},
		{Contig: "chr1", Position: 9, Ref: "G", Alt: []string{"C"}},
	}

	g, tr, err := construct.BuildParallel(context.Background(), "chr1", 0, 12, provider, records, snpDecomposer{}, construct.WithShardSize(1))
	require.NoError(t, err)
	require.NotNil(t, tr)

	views, err := g.Paths.Mappings("chr1")
	require.NoError(t, err)
	var full string
	for _, v := range views {
		n, err := g.Core.GetNode(v.Pos.Node)
		require.NoError(t, err)
		full += n.Sequence
	}
	assert.Equal(t, "ACGTACGTACGT", full)
}
