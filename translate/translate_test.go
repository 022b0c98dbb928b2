package translate_test

import (
	"testing"

	"github.com/lvlath-labs/vgraph/core"
	"github.com/lvlath-labs/vgraph/translate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func step(node core.NodeID, o core.Orientation, off, length int) translate.Step {
	return translate.Step{Node: node, Orientation: o, Offset: off, Length: length}
}

func TestComposeChainsMatchingSteps(t *testing.T) {
	under := translate.Translation{
		From: translate.Path{step(1, core.Forward, 0, 4)},
		To:   translate.Path{step(2, core.Forward, 0, 4)},
	}
	over := translate.Translation{
		From: translate.Path{step(2, core.Forward, 0, 4)},
		To:   translate.Path{step(3, core.Forward, 0, 4)},
	}
	got, err := translate.Compose(over, under)
	require.NoError(t, err)
	assert.Equal(t, translate.Path{step(1, core.Forward, 0, 4)}, got.From)
	assert.Equal(t, translate.Path{step(3, core.Forward, 0, 4)}, got.To)
}

func TestComposeRejectsMismatchedSteps(t *testing.T) {
	under := translate.Translation{
		From: translate.Path{step(1, core.Forward, 0, 4)},
		To:   translate.Path{step(2, core.Forward, 0, 4)},
	}
	over := translate.Translation{
		From: translate.Path{step(9, core.Forward, 0, 4)},
		To:   translate.Path{step(3, core.Forward, 0, 4)},
	}
	_, err := translate.Compose(over, under)
	assert.ErrorIs(t, err, translate.ErrStepMismatch)
}

func TestInvertSwapsFromAndTo(t *testing.T) {
	tr := translate.Translation{
		From: translate.Path{step(1, core.Forward, 0, 4)},
		To:   translate.Path{step(2, core.Forward, 0, 4)},
	}
	inv := tr.Invert()
	assert.Equal(t, tr.To, inv.From)
	assert.Equal(t, tr.From, inv.To)
}

func TestOverlayXORsOrientationThroughTwoRewrites(t *testing.T) {
	// under: node 1 forward divides into node 2, read in reverse on the new graph.
	under := translate.Translation{
		From: translate.Path{step(1, core.Forward, 0, 4)},
		To:   translate.Path{step(2, core.Reverse, 0, 4)},
	}
	// over: node 2 (as seen reversed) gets unfolded into node 3, also reversed.
	over := translate.Translation{
		From: translate.Path{step(2, core.Reverse, 0, 4)},
		To:   translate.Path{step(3, core.Reverse, 0, 4)},
	}
	got := translate.Overlay(over, under)
	require.Len(t, got.From, 1)
	// Reverse composed with Reverse cancels back to Forward.
	assert.Equal(t, core.Forward, got.From[0].Orientation)
	assert.Equal(t, core.NodeID(1), got.From[0].Node)
	assert.Equal(t, translate.Path{step(3, core.Reverse, 0, 4)}, got.To)
}

func TestOverlayPassesThroughUntouchedSteps(t *testing.T) {
	under := translate.Translation{
		From: translate.Path{step(1, core.Forward, 0, 4)},
		To:   translate.Path{step(2, core.Forward, 0, 4)},
	}
	over := translate.Translation{
		From: translate.Path{step(99, core.Forward, 0, 4)},
		To:   translate.Path{step(100, core.Forward, 0, 4)},
	}
	got := translate.Overlay(over, under)
	assert.Equal(t, over.From, got.From)
}

func TestOverlayIsAssociative(t *testing.T) {
	// Three chained rewrites 1->2->3->4. Overlay(over, under) requires
	// under.To to name the same nodes as over.From, so chaining left-to-right
	// means the earlier rewrite is always "under".
	t1 := translate.Translation{
		From: translate.Path{step(1, core.Forward, 0, 4)},
		To:   translate.Path{step(2, core.Forward, 0, 4)},
	}
	t2 := translate.Translation{
		From: translate.Path{step(2, core.Forward, 0, 4)},
		To:   translate.Path{step(3, core.Reverse, 0, 4)},
	}
	t3 := translate.Translation{
		From: translate.Path{step(3, core.Reverse, 0, 4)},
		To:   translate.Path{step(4, core.Reverse, 0, 4)},
	}

	// (t1 then t2) then t3
	t1t2 := translate.Overlay(t2, t1)
	left := translate.Overlay(t3, t1t2)

	// t1 then (t2 then t3)
	t2t3 := translate.Overlay(t3, t2)
	right := translate.Overlay(t2t3, t1)

	assert.Equal(t, left, right)
	assert.Equal(t, core.NodeID(1), left.From[0].Node)
	assert.Equal(t, core.NodeID(4), left.To[0].Node)
}

func TestPathTotalLengthSumsSteps(t *testing.T) {
	p := translate.Path{step(1, core.Forward, 0, 4), step(2, core.Forward, 0, 2)}
	assert.Equal(t, 6, p.TotalLength())
}

func TestSetByToNodeIndexesFirstStep(t *testing.T) {
	set := translate.Set{
		translate.Translation{From: translate.Path{step(1, core.Forward, 0, 4)}, To: translate.Path{step(2, core.Forward, 0, 4)}},
		translate.Translation{From: translate.Path{step(9, core.Forward, 0, 1)}, To: translate.Path{step(10, core.Forward, 0, 1)}},
	}
	idx := set.ByToNode()
	require.Contains(t, idx, core.NodeID(2))
	require.Contains(t, idx, core.NodeID(10))
	assert.Equal(t, core.NodeID(1), idx[2].From[0].Node)
}
