// Package wm is the window-state engine: the authoritative owner of the
// window/workspace/monitor maps and the operations that mutate them, per
// spec.md §4.5. It is the reactor's single-threaded home for all state
// mutation, grounded on moukhtar22-doWM/wm/window_manager.go's Run loop.
package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/hibrid/mywm/internal/frame"
	"github.com/hibrid/mywm/internal/geom"
	"github.com/hibrid/mywm/internal/x11"
)

// Gateway is everything the engine needs from the display connection: the
// frame.Gateway subset plus class/title/geometry queries, input focus, and
// the monitor/strut/pointer queries the layout and adoption logic need.
// Keeping this as an interface (rather than depending on *x11.Connection
// directly) is the same seam frame.Gateway draws, so engine_test.go can
// exercise the whole engine against a fake.
type Gateway interface {
	frame.Gateway

	SelectInput(w xproto.Window, mask uint32) error
	SetInputFocus(w xproto.Window) error
	IsOverrideRedirect(w xproto.Window) (bool, error)
	QueryClassAndTitle(w xproto.Window) (class, title string)
	Geometry(w xproto.Window) (geom.Rect, error)
	SendDeleteWindow(w xproto.Window) error

	Monitors() ([]geom.Rect, error)
	Struts() x11.Struts
	QueryPointer() (x, y int, err error)

	ConfigureFromRequest(w xproto.Window, mask uint16, values []uint32) error
}
