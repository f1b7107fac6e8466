// Package x11 is the display gateway: it wraps the X connection, the root
// window, screen geometry, key/button grabs, and window reparenting and
// geometry calls. No other package talks to xgb or xgbutil directly.
package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/hibrid/mywm/internal/geom"
)

// Connection owns the X11 display connection and root window. It holds no
// window-manager state — only what reading or writing the wire protocol
// requires.
type Connection struct {
	Conn  *xgb.Conn
	XUtil *xgbutil.XUtil
	Root  xproto.Window
	Rect  geom.Rect
}

// Connect opens the X display, resolves the default screen's root window,
// and initializes the keybind module used for keysym-name lookups.
//
// Grounded on moukhtar22-doWM/wm/window_manager.go's Create: xgb.NewConn
// paired with xgbutil.NewConnXgb over the same connection.
func Connect() (*Connection, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("open X display: %w", err)
	}

	xu, err := xgbutil.NewConnXgb(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create xgbutil connection: %w", err)
	}
	keybind.Initialize(xu)

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	root := screen.Root

	geomReply, err := xproto.GetGeometry(conn, xproto.Drawable(root)).Reply()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("query root geometry: %w", err)
	}

	return &Connection{
		Conn:  conn,
		XUtil: xu,
		Root:  root,
		Rect: geom.Rect{
			X: 0, Y: 0,
			Width:  int(geomReply.Width),
			Height: int(geomReply.Height),
		},
	}, nil
}

// BecomeWM registers for substructure-redirect and substructure-notify on
// the root window, which is how an X window manager intercepts map and
// configure requests from clients. Fails with BadAccess if another window
// manager already holds the root's substructure-redirect.
func (c *Connection) BecomeWM() error {
	err := xproto.ChangeWindowAttributesChecked(
		c.Conn,
		c.Root,
		xproto.CwEventMask,
		[]uint32{
			uint32(xproto.EventMaskSubstructureNotify | xproto.EventMaskSubstructureRedirect),
		},
	).Check()
	if err != nil {
		return fmt.Errorf("register substructure redirect (is another WM running?): %w", err)
	}
	return nil
}

// QueryTree returns the current top-level children of the root window, used
// at startup to adopt windows that existed before the manager started.
func (c *Connection) QueryTree() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.Conn, c.Root).Reply()
	if err != nil {
		return nil, err
	}
	return tree.Children, nil
}

// SetEWMHName announces the window manager's name via a child window
// carrying _NET_SUPPORTING_WM_CHECK, the minimal EWMH compliance marker.
func (c *Connection) SetEWMHName(name string) {
	id, err := xproto.NewWindowId(c.Conn)
	if err != nil {
		slog.Warn("couldn't allocate EWMH marker window", "error", err)
		return
	}
	err = xproto.CreateWindowChecked(
		c.Conn, 0, id, c.Root, -1, -1, 1, 1, 0,
		xproto.WindowClassInputOutput, xproto.WindowNone, 0, nil,
	).Check()
	if err != nil {
		slog.Warn("couldn't create EWMH marker window", "error", err)
		return
	}
	setProperty(c, c.Root, "_NET_SUPPORTING_WM_CHECK", "WINDOW", 32, []byte{
		byte(id), byte(id >> 8), byte(id >> 16), byte(id >> 24),
	})
	setProperty(c, id, "_NET_SUPPORTING_WM_CHECK", "WINDOW", 32, []byte{
		byte(id), byte(id >> 8), byte(id >> 16), byte(id >> 24),
	})
	setProperty(c, id, "_NET_WM_NAME", "UTF8_STRING", 8, []byte(name))
}

func setProperty(c *Connection, win xproto.Window, propName, typeName string, format byte, data []byte) {
	propAtom, err := xproto.InternAtom(c.Conn, false, uint16(len(propName)), propName).Reply()
	if err != nil {
		return
	}
	typeAtom, err := xproto.InternAtom(c.Conn, false, uint16(len(typeName)), typeName).Reply()
	if err != nil {
		return
	}
	xproto.ChangePropertyChecked(
		c.Conn, xproto.PropModeReplace, win, propAtom.Atom, typeAtom.Atom,
		format, uint32(len(data))/uint32(format/8), data,
	).Check()
}

// Close tears down the X connection.
func (c *Connection) Close() {
	if c.Conn != nil {
		c.Conn.Close()
	}
}
