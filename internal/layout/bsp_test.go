package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibrid/mywm/internal/geom"
)

func usable() geom.Rect { return geom.Rect{X: 0, Y: 0, Width: 1000, Height: 800} }

func TestInsertFirstWindowFillsRect(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))

	got := tr.Apply(usable(), 0)
	assert.Equal(t, usable(), got[1])
}

func TestInsertSplitsWiderLeafVertically(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable())) // 1000x800, wider than tall
	require.NoError(t, tr.Insert(2, 1, usable()))

	got := tr.Apply(usable(), 0)
	require.Len(t, got, 2)
	assert.Equal(t, 500, got[1].Width)
	assert.Equal(t, 500, got[2].Width)
	assert.Equal(t, 800, got[1].Height)
	assert.Equal(t, 0, got[1].X)
	assert.Equal(t, 500, got[2].X)
}

func TestApplyTilesDisjointlyAndCoversUsableRect(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))
	require.NoError(t, tr.Insert(2, 1, usable()))
	require.NoError(t, tr.Insert(3, 2, geom.Rect{X: 500, Y: 0, Width: 500, Height: 800}))

	got := tr.Apply(usable(), 0)
	require.Len(t, got, 3)

	area := 0
	for _, r := range got {
		area += r.Width * r.Height
	}
	assert.Equal(t, usable().Width*usable().Height, area)
}

func TestApplyShrinksEachLeafByHalfGap(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))

	got := tr.Apply(usable(), 10)
	assert.Equal(t, 5, got[1].X)
	assert.Equal(t, 5, got[1].Y)
	assert.Equal(t, 990, got[1].Width)
	assert.Equal(t, 790, got[1].Height)
}

func TestRemoveCollapsesLeafAndPromotesSibling(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))
	require.NoError(t, tr.Insert(2, 1, usable()))

	require.NoError(t, tr.Remove(1))

	got := tr.Apply(usable(), 0)
	require.Len(t, got, 1)
	assert.Equal(t, usable(), got[2])
}

func TestRemoveLastWindowEmptiesTree(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))
	require.NoError(t, tr.Remove(1))

	assert.Equal(t, 0, tr.Len())
	assert.Empty(t, tr.Apply(usable(), 0))
}

func TestPromoteSwapsIntoFirstLeafSlot(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))
	require.NoError(t, tr.Insert(2, 1, usable()))
	require.NoError(t, tr.Insert(3, 2, geom.Rect{X: 500, Y: 0, Width: 500, Height: 800}))

	first, _ := tr.FirstLeaf()
	require.Equal(t, WindowID(1), first)

	require.NoError(t, tr.Promote(3))

	first, _ = tr.FirstLeaf()
	assert.Equal(t, WindowID(3), first)

	got := tr.Apply(usable(), 0)
	assert.Equal(t, 0, got[3].X) // 3 now occupies the original leftmost slot
}

func TestSwapExchangesLeafPositions(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))
	require.NoError(t, tr.Insert(2, 1, usable()))

	before := tr.Apply(usable(), 0)
	require.NoError(t, tr.Swap(1, 2))
	after := tr.Apply(usable(), 0)

	assert.Equal(t, before[1], after[2])
	assert.Equal(t, before[2], after[1])
}

func TestResizeRatioClampsToBounds(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))
	require.NoError(t, tr.Insert(2, 1, usable()))

	ok, err := tr.ResizeRatio(1, AxisVertical, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	got := tr.Apply(usable(), 0)
	assert.Equal(t, 900, got[1].Width) // clamped at ratio 0.9
}

func TestResizeRatioReturnsFalseWhenNoMatchingAncestor(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))

	ok, err := tr.ResizeRatio(1, AxisHorizontal, 0.1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsertRejectsDuplicateWindow(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))
	err := tr.Insert(1, 1, usable())
	assert.Error(t, err)
}

func TestInsertRejectsUnknownTarget(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))
	err := tr.Insert(2, 99, usable())
	assert.Error(t, err)
}

func TestFirstLeafTieBreakFollowsInsertionOrder(t *testing.T) {
	tr := New()
	require.NoError(t, tr.Insert(1, 0, usable()))
	require.NoError(t, tr.Insert(2, 1, usable()))
	require.NoError(t, tr.Insert(3, 1, geom.Rect{X: 0, Y: 0, Width: 500, Height: 800}))

	first, ok := tr.FirstLeaf()
	require.True(t, ok)
	assert.Equal(t, WindowID(1), first)
}
