package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/hibrid/mywm/internal/geom"
)

// NewWindowID allocates an X resource id for a window the manager is about
// to create (a frame, typically).
func (c *Connection) NewWindowID() (xproto.Window, error) {
	return xproto.NewWindowId(c.Conn)
}

// CreateWindow creates a manager-owned InputOutput window with the given
// geometry, background pixel, and event mask.
func (c *Connection) CreateWindow(id xproto.Window, g geom.Rect, backPixel uint32, eventMask uint32) error {
	return xproto.CreateWindowChecked(
		c.Conn,
		0,
		id,
		c.Root,
		int16(g.X), int16(g.Y),
		uint16(g.Width), uint16(g.Height),
		0,
		xproto.WindowClassInputOutput,
		xproto.WindowNone,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{backPixel, eventMask},
	).Check()
}

// DestroyWindow destroys a manager-owned window (a frame).
func (c *Connection) DestroyWindow(w xproto.Window) error {
	return xproto.DestroyWindowChecked(c.Conn, w).Check()
}

// Reparent reparents child into parent at the given offset, grounded on
// moukhtar22-doWM's Frame/UnFrame reparent calls.
func (c *Connection) Reparent(child, parent xproto.Window, x, y int) error {
	return xproto.ReparentWindowChecked(c.Conn, child, parent, int16(x), int16(y)).Check()
}

// ReparentToRoot reparents a window directly back to the root, used when a
// frame is torn down.
func (c *Connection) ReparentToRoot(child xproto.Window, x, y int) error {
	return c.Reparent(child, c.Root, x, y)
}

// Configure sets a window's geometry.
func (c *Connection) Configure(w xproto.Window, g geom.Rect) error {
	return xproto.ConfigureWindowChecked(
		c.Conn, w,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(g.X), uint32(g.Y), uint32(g.Width), uint32(g.Height)},
	).Check()
}

// ConfigureFromRequest answers a ConfigureRequestEvent for a window the
// manager does not (yet, or no longer) manage, passing through whichever
// fields the client asked to change. Grounded on moukhtar22-doWM's
// OnConfigureRequest / createChanges.
func (c *Connection) ConfigureFromRequest(w xproto.Window, mask uint16, values []uint32) error {
	return xproto.ConfigureWindowChecked(c.Conn, w, uint16(mask), values).Check()
}

// Map maps a window.
func (c *Connection) Map(w xproto.Window) error {
	return xproto.MapWindowChecked(c.Conn, w).Check()
}

// Unmap unmaps a window.
func (c *Connection) Unmap(w xproto.Window) error {
	return xproto.UnmapWindowChecked(c.Conn, w).Check()
}

// AddToSaveSet adds a client window to the save-set so that if the manager
// crashes or exits, X reparents the window back to the root automatically.
func (c *Connection) AddToSaveSet(w xproto.Window) error {
	return xproto.ChangeSaveSetChecked(c.Conn, xproto.SetModeInsert, w).Check()
}

// RemoveFromSaveSet reverses AddToSaveSet, called when the manager tears a
// frame down cleanly itself.
func (c *Connection) RemoveFromSaveSet(w xproto.Window) error {
	return xproto.ChangeSaveSetChecked(c.Conn, xproto.SetModeDelete, w).Check()
}

// SelectInput changes the event mask a window reports to the manager.
func (c *Connection) SelectInput(w xproto.Window, mask uint32) error {
	return xproto.ChangeWindowAttributesChecked(c.Conn, w, xproto.CwEventMask, []uint32{mask}).Check()
}

// SetInputFocus gives input focus to a window.
func (c *Connection) SetInputFocus(w xproto.Window) error {
	return xproto.SetInputFocusChecked(c.Conn, xproto.InputFocusPointerRoot, w, xproto.TimeCurrentTime).Check()
}

// IsOverrideRedirect reports whether a window has set override-redirect,
// meaning the manager must never frame it (menus, tooltips, splash
// screens).
func (c *Connection) IsOverrideRedirect(w xproto.Window) (bool, error) {
	attr, err := xproto.GetWindowAttributes(c.Conn, w).Reply()
	if err != nil {
		return false, err
	}
	return attr.OverrideRedirect, nil
}

// IsViewable reports whether a window is currently mapped, used when
// adopting windows that pre-date the manager.
func (c *Connection) IsViewable(w xproto.Window) (bool, error) {
	attr, err := xproto.GetWindowAttributes(c.Conn, w).Reply()
	if err != nil {
		return false, err
	}
	return attr.MapState == xproto.MapStateViewable, nil
}

// QueryClassAndTitle resolves WM_CLASS and a best-effort title (EWMH
// _NET_WM_NAME, falling back to ICCCM WM_NAME), tolerating either being
// absent per spec.md §8's boundary case ("no class or title").
func (c *Connection) QueryClassAndTitle(w xproto.Window) (class, title string) {
	if wc, err := icccm.WmClassGet(c.XUtil, w); err == nil && wc != nil {
		class = wc.Class
	}
	if name, err := ewmh.WmNameGet(c.XUtil, w); err == nil && name != "" {
		title = name
	} else if name, err := icccm.WmNameGet(c.XUtil, w); err == nil {
		title = name
	}
	return class, title
}

// Geometry returns a window's current geometry in root coordinates.
func (c *Connection) Geometry(w xproto.Window) (geom.Rect, error) {
	g, err := xproto.GetGeometry(c.Conn, xproto.Drawable(w)).Reply()
	if err != nil {
		return geom.Rect{}, err
	}
	return geom.Rect{X: int(g.X), Y: int(g.Y), Width: int(g.Width), Height: int(g.Height)}, nil
}

// SendDeleteWindow asks a client to close gracefully via WM_DELETE_WINDOW,
// returning an error if the client's WM_PROTOCOLS doesn't advertise support
// so the caller can fall back to destroying the window outright. Grounded
// on moukhtar22-doWM's SendWmDelete.
func (c *Connection) SendDeleteWindow(w xproto.Window) error {
	protocolsAtom, err := xproto.InternAtom(c.Conn, true, uint16(len("WM_PROTOCOLS")), "WM_PROTOCOLS").Reply()
	if err != nil {
		return err
	}
	deleteAtom, err := xproto.InternAtom(c.Conn, true, uint16(len("WM_DELETE_WINDOW")), "WM_DELETE_WINDOW").Reply()
	if err != nil {
		return err
	}

	prop, err := xproto.GetProperty(c.Conn, false, w, protocolsAtom.Atom, xproto.AtomAtom, 0, (1<<32)-1).Reply()
	if err != nil || prop.Format != 32 {
		return fmt.Errorf("couldn't get WM_PROTOCOLS")
	}
	supportsDelete := false
	for i := 0; i < int(prop.ValueLen); i++ {
		atom := xgb.Get32(prop.Value[i*4:])
		if xproto.Atom(atom) == deleteAtom.Atom {
			supportsDelete = true
			break
		}
	}
	if !supportsDelete {
		return fmt.Errorf("WM_DELETE_WINDOW not supported")
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   protocolsAtom.Atom,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(deleteAtom.Atom), uint32(xproto.TimeCurrentTime), 0, 0, 0,
		}),
	}
	return xproto.SendEventChecked(c.Conn, false, w, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}
