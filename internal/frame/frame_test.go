package frame

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibrid/mywm/internal/geom"
)

type fakeGateway struct {
	nextID     xproto.Window
	created    map[xproto.Window]geom.Rect
	reparented map[xproto.Window]xproto.Window
	configured map[xproto.Window]geom.Rect
	mapped     map[xproto.Window]bool
	saveSet    map[xproto.Window]bool
	filled     map[xproto.Window][]geom.Rect
	destroyed  map[xproto.Window]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		nextID:     100,
		created:    map[xproto.Window]geom.Rect{},
		reparented: map[xproto.Window]xproto.Window{},
		configured: map[xproto.Window]geom.Rect{},
		mapped:     map[xproto.Window]bool{},
		saveSet:    map[xproto.Window]bool{},
		filled:     map[xproto.Window][]geom.Rect{},
		destroyed:  map[xproto.Window]bool{},
	}
}

func (f *fakeGateway) NewWindowID() (xproto.Window, error) {
	f.nextID++
	return f.nextID, nil
}
func (f *fakeGateway) CreateWindow(id xproto.Window, g geom.Rect, backPixel, eventMask uint32) error {
	f.created[id] = g
	return nil
}
func (f *fakeGateway) DestroyWindow(w xproto.Window) error { f.destroyed[w] = true; return nil }
func (f *fakeGateway) Reparent(child, parent xproto.Window, x, y int) error {
	f.reparented[child] = parent
	return nil
}
func (f *fakeGateway) ReparentToRoot(child xproto.Window, x, y int) error {
	f.reparented[child] = 0
	return nil
}
func (f *fakeGateway) Configure(w xproto.Window, g geom.Rect) error {
	f.configured[w] = g
	return nil
}
func (f *fakeGateway) Map(w xproto.Window) error   { f.mapped[w] = true; return nil }
func (f *fakeGateway) Unmap(w xproto.Window) error { f.mapped[w] = false; return nil }
func (f *fakeGateway) AddToSaveSet(w xproto.Window) error {
	f.saveSet[w] = true
	return nil
}
func (f *fakeGateway) RemoveFromSaveSet(w xproto.Window) error {
	f.saveSet[w] = false
	return nil
}
func (f *fakeGateway) FillRects(w xproto.Window, rects []geom.Rect, colorRGB uint32) error {
	f.filled[w] = rects
	return nil
}

func testAppearance() Appearance {
	return Appearance{InnerWidth: 2, OuterWidth: 4, InnerColor: 0x112233, OuterColor: 0x445566}
}

func TestCreateReparentsClientIntoFrame(t *testing.T) {
	gw := newFakeGateway()
	g := geom.Rect{X: 10, Y: 10, Width: 200, Height: 100}

	fr, err := Create(gw, 42, g, testAppearance())
	require.NoError(t, err)

	assert.Equal(t, fr.Win, gw.reparented[42])
	assert.True(t, gw.saveSet[42])
	assert.Equal(t, g, gw.created[fr.Win])
}

func TestCreateDrawsInnerBand(t *testing.T) {
	gw := newFakeGateway()
	g := geom.Rect{X: 0, Y: 0, Width: 100, Height: 80}

	fr, err := Create(gw, 42, g, testAppearance())
	require.NoError(t, err)

	rects := gw.filled[fr.Win]
	require.Len(t, rects, 4)
	for _, r := range rects {
		assert.Greater(t, r.Width, 0)
		assert.Greater(t, r.Height, 0)
	}
}

func TestDrawSkipsWhenNoInnerWidth(t *testing.T) {
	gw := newFakeGateway()
	app := testAppearance()
	app.InnerWidth = 0

	fr, err := Create(gw, 42, geom.Rect{Width: 100, Height: 80}, app)
	require.NoError(t, err)
	assert.Empty(t, gw.filled[fr.Win])
}

func TestMoveResizeInsetsClientByBothBands(t *testing.T) {
	gw := newFakeGateway()
	app := testAppearance() // outer 4, inner 2 -> inset 6
	fr, err := Create(gw, 42, geom.Rect{X: 0, Y: 0, Width: 200, Height: 100}, app)
	require.NoError(t, err)

	require.NoError(t, fr.MoveResize(geom.Rect{X: 5, Y: 5, Width: 300, Height: 150}))

	clientGeom := gw.configured[42]
	assert.Equal(t, 6, clientGeom.X)
	assert.Equal(t, 6, clientGeom.Y)
	assert.Equal(t, 300-2*6, clientGeom.Width)
	assert.Equal(t, 150-2*6, clientGeom.Height)
}

func TestMoveResizeClampsDegenerateClientSize(t *testing.T) {
	gw := newFakeGateway()
	fr, err := Create(gw, 42, geom.Rect{Width: 50, Height: 50}, testAppearance())
	require.NoError(t, err)

	require.NoError(t, fr.MoveResize(geom.Rect{Width: 4, Height: 4}))

	clientGeom := gw.configured[42]
	assert.Equal(t, 1, clientGeom.Width)
	assert.Equal(t, 1, clientGeom.Height)
}

func TestDestroyReparentsToRootAndDestroysFrame(t *testing.T) {
	gw := newFakeGateway()
	fr, err := Create(gw, 42, geom.Rect{X: 1, Y: 2, Width: 100, Height: 80}, testAppearance())
	require.NoError(t, err)

	require.NoError(t, fr.Destroy())

	assert.Equal(t, xproto.Window(0), gw.reparented[42])
	assert.False(t, gw.saveSet[42])
	assert.True(t, gw.destroyed[fr.Win])
	assert.False(t, gw.mapped[fr.Win])
}

func TestSetAppearanceRedrawsImmediately(t *testing.T) {
	gw := newFakeGateway()
	fr, err := Create(gw, 42, geom.Rect{Width: 100, Height: 80}, testAppearance())
	require.NoError(t, err)

	next := testAppearance()
	next.InnerColor = 0xabcdef
	require.NoError(t, fr.SetAppearance(next))

	assert.Equal(t, next, fr.App)
	assert.NotEmpty(t, gw.filled[fr.Win])
}
