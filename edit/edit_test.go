package edit_test

import (
	"testing"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/edit"
	"github.com/lvlath-labs/vgraph/mutate"
	"github.com/lvlath-labs/vgraph/pathidx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApplyInsertionThenEditDividesAndWires is spec.md §8 scenario 3: node
// "ACGT" gets an alignment path matching "ACG", inserting "TT", matching "T".
func TestApplyInsertionThenEditDividesAndWires(t *testing.T) {
	g := mutate.New()
	n, err := g.Core.CreateNode("ACGT", nil)
	require.NoError(t, err)
	require.NoError(t, g.Paths.CreatePath("ref", false))
	_, err = g.Paths.AppendMapping("ref", pathidx.Position{Node: n.ID, Orientation: core.Forward}, []pathidx.Edit{{FromLen: 4, ToLen: 4}})
	require.NoError(t, err)

	input := []edit.InputPath{{
		Name: "alt",
		Mappings: []edit.InputMapping{{
			Pos: pathidx.Position{Node: n.ID, Orientation: core.Forward, Offset: 0},
			Edits: []pathidx.Edit{
				{FromLen: 3, ToLen: 3},
				{FromLen: 0, ToLen: 2, Sequence: "TT"},
				{FromLen: 1, ToLen: 1},
			},
		}},
	}}

	translations, err := edit.Apply(g, input)
	require.NoError(t, err)
	require.NotEmpty(t, translations)

	var acg, tt, tail core.NodeID
	for _, nd := range g.Core.Nodes() {
		switch nd.Sequence {
		case "ACG":
			acg = nd.ID
		case "TT":
			tt = nd.ID
		case "T":
			tail = nd.ID
		}
	}
	require.NotZero(t, acg)
	require.NotZero(t, tt)
	require.NotZero(t, tail)
	assert.NotEqual(t, acg, tail, "the division must split ACGT into two distinct pieces")

	assert.True(t, g.Core.HasEdge(core.Side{Node: acg, End: core.EndSide}, core.Side{Node: tt, End: core.Start}))
	assert.True(t, g.Core.HasEdge(core.Side{Node: tt, End: core.EndSide}, core.Side{Node: tail, End: core.Start}))

	views, err := g.Paths.Mappings("alt")
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, acg, views[0].Pos.Node)
	assert.Equal(t, tt, views[1].Pos.Node)
	assert.Equal(t, tail, views[2].Pos.Node)

	var sawInsertionTranslation bool
	for _, tr := range translations {
		if len(tr.To) == 1 && tr.To[0].Node == tt && tr.To[0].Orientation == core.Forward {
			require.Len(t, tr.From, 1)
			assert.Equal(t, n.ID, tr.From[0].Node)
			assert.Equal(t, 3, tr.From[0].Offset)
			assert.Equal(t, "TT", tr.From[0].Sequence)
			sawInsertionTranslation = true
		}
	}
	assert.True(t, sawInsertionTranslation)
}

func TestApplyRejectsDuplicatePathName(t *testing.T) {
	g := mutate.New()
	n, err := g.Core.CreateNode("ACGT", nil)
	require.NoError(t, err)
	require.NoError(t, g.Paths.CreatePath("p", false))

	_, err = edit.Apply(g, []edit.InputPath{{
		Name: "p",
		Mappings: []edit.InputMapping{{
			Pos:   pathidx.Position{Node: n.ID, Orientation: core.Forward, Offset: 0},
			Edits: []pathidx.Edit{{FromLen: 4, ToLen: 4}},
		}},
	}})
	assert.ErrorIs(t, err, edit.ErrPathExists)
}

func TestApplyMergesSharedBreakpointsAcrossTwoPaths(t *testing.T) {
	g := mutate.New()
	n, err := g.Core.CreateNode("ACGTACGT", nil)
	require.NoError(t, err)

	input := []edit.InputPath{
		{
			Name: "a",
			Mappings: []edit.InputMapping{{
				Pos: pathidx.Position{Node: n.ID, Orientation: core.Forward, Offset: 0},
				Edits: []pathidx.Edit{
					{FromLen: 3, ToLen: 3, Sequence: "AGG"},
					{FromLen: 5, ToLen: 5},
				},
			}},
		},
		{
			Name: "b",
			Mappings: []edit.InputMapping{{
				Pos: pathidx.Position{Node: n.ID, Orientation: core.Forward, Offset: 0},
				Edits: []pathidx.Edit{
					{FromLen: 5, ToLen: 5, Sequence: "AGGAG"},
					{FromLen: 3, ToLen: 3},
				},
			}},
		},
	}

	_, err = edit.Apply(g, input)
	require.NoError(t, err)

	// Breakpoints at 3 and 5 both get cut, so the original node becomes three
	// pieces: ACG (0-3), TA (3-5), CGT (5-8).
	var seqs []string
	for _, nd := range g.Core.Nodes() {
		seqs = append(seqs, nd.Sequence)
	}
	assert.ElementsMatch(t, []string{"ACG", "TA", "CGT"}, seqs)
}

func TestApplyReusesOneInsertedNodeAcrossPaths(t *testing.T) {
	g := mutate.New()
	n, err := g.Core.CreateNode("ACGT", nil)
	require.NoError(t, err)

	mk := func(name string) edit.InputPath {
		return edit.InputPath{
			Name: name,
			Mappings: []edit.InputMapping{{
				Pos: pathidx.Position{Node: n.ID, Orientation: core.Forward, Offset: 0},
				Edits: []pathidx.Edit{
					{FromLen: 2, ToLen: 2},
					{FromLen: 0, ToLen: 2, Sequence: "GG"},
					{FromLen: 2, ToLen: 2},
				},
			}},
		}
	}

	_, err = edit.Apply(g, []edit.InputPath{mk("a"), mk("b")})
	require.NoError(t, err)

	count := 0
	for _, nd := range g.Core.Nodes() {
		if nd.Sequence == "GG" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
