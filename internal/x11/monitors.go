package x11

import (
	xgbxinerama "github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xrect"

	"github.com/hibrid/mywm/internal/geom"
)

// Monitors returns the physical output rectangles, grounded on
// other_examples/dominikh-gwm__main.go's Screens: xinerama.PhysicalHeads
// first, falling back to the root window's own geometry as a single
// monitor when Xinerama is unavailable (a plain single-head X server).
func (c *Connection) Monitors() ([]geom.Rect, error) {
	if err := xgbxinerama.Init(c.Conn); err == nil {
		heads, err := xinerama.PhysicalHeads(c.XUtil)
		if err == nil && len(heads) > 0 {
			out := make([]geom.Rect, len(heads))
			for i, h := range heads {
				out[i] = rectFromXrect(h)
			}
			return out, nil
		}
	}
	return []geom.Rect{c.Rect}, nil
}

func rectFromXrect(r xrect.Rect) geom.Rect {
	return geom.Rect{X: r.X(), Y: r.Y(), Width: r.Width(), Height: r.Height()}
}

// Struts returns the total reserved edge space claimed by EWMH dock/bar
// windows (e.g. a status bar), summed across every client advertising
// _NET_WM_WINDOW_TYPE_DOCK. The layout engine subtracts this from a
// monitor's rectangle per spec.md §4.5's bar-toggle paragraph.
type Struts struct {
	Left, Right, Top, Bottom int
}

func (c *Connection) Struts() Struts {
	var total Struts
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return total
	}
	for _, win := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
		if err != nil {
			continue
		}
		if !containsDock(types) {
			continue
		}
		if s, err := ewmh.WmStrutGet(c.XUtil, win); err == nil {
			total.Left += int(s.Left)
			total.Right += int(s.Right)
			total.Top += int(s.Top)
			total.Bottom += int(s.Bottom)
		}
	}
	return total
}

func containsDock(types []string) bool {
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// QueryPointer returns the current pointer position in root coordinates.
func (c *Connection) QueryPointer() (x, y int, err error) {
	reply, err := xproto.QueryPointer(c.Conn, c.Root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(reply.RootX), int(reply.RootY), nil
}
