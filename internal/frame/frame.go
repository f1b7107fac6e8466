// Package frame owns the decoration window that reparents exactly one
// client and draws its border bands, per spec.md §4.2.
package frame

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/hibrid/mywm/internal/geom"
)

// Gateway is the subset of internal/x11's Connection a Frame needs. A
// narrow interface here keeps frame independent of the display gateway's
// concrete type, the same separation spec.md §4.1 draws between the
// gateway and its callers.
type Gateway interface {
	NewWindowID() (xproto.Window, error)
	CreateWindow(id xproto.Window, g geom.Rect, backPixel uint32, eventMask uint32) error
	DestroyWindow(w xproto.Window) error
	Reparent(child, parent xproto.Window, x, y int) error
	ReparentToRoot(child xproto.Window, x, y int) error
	Configure(w xproto.Window, g geom.Rect) error
	Map(w xproto.Window) error
	Unmap(w xproto.Window) error
	AddToSaveSet(w xproto.Window) error
	RemoveFromSaveSet(w xproto.Window) error
	FillRects(w xproto.Window, rects []geom.Rect, colorRGB uint32) error
}

const frameEventMask = uint32(
	xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskButtonPress,
)

// Appearance is the mutable set of border widths and colors a Frame draws,
// changeable at runtime via `set-border`/`set-color` per spec.md §6.
type Appearance struct {
	InnerWidth int
	OuterWidth int
	InnerColor uint32 // packed 0xRRGGBB
	OuterColor uint32
}

// Frame is the manager-owned parent window of exactly one client.
type Frame struct {
	gw     Gateway
	Client xproto.Window
	Win    xproto.Window
	Geom   geom.Rect
	App    Appearance
}

// Create allocates the frame window sized to g, reparents client into it at
// the (outer+inner, outer+inner) offset spec.md §4.2 specifies, and draws
// the border. It maps nothing; the caller maps the frame. Grounded on
// moukhtar22-doWM's Frame method.
func Create(gw Gateway, client xproto.Window, g geom.Rect, app Appearance) (*Frame, error) {
	id, err := gw.NewWindowID()
	if err != nil {
		return nil, fmt.Errorf("allocate frame window id: %w", err)
	}

	if err := gw.CreateWindow(id, g, app.OuterColor, frameEventMask); err != nil {
		return nil, fmt.Errorf("create frame window: %w", err)
	}
	if err := gw.AddToSaveSet(client); err != nil {
		return nil, fmt.Errorf("add client to save set: %w", err)
	}

	inset := app.OuterWidth + app.InnerWidth
	if err := gw.Reparent(client, id, inset, inset); err != nil {
		return nil, fmt.Errorf("reparent client into frame: %w", err)
	}

	f := &Frame{gw: gw, Client: client, Win: id, Geom: g, App: app}
	if err := f.Draw(); err != nil {
		return nil, fmt.Errorf("draw frame border: %w", err)
	}
	return f, nil
}

// Draw paints the inner border band onto the frame window. The outer band
// needs no drawing: it is simply the parts of the frame window's own
// OuterColor background that the inner band and client don't cover. The
// inner band is a ring of width InnerWidth sitting between the outer band
// and the client, painted as up to four rectangles so the fill never
// touches the client's own area.
func (f *Frame) Draw() error {
	ow, iw := f.App.OuterWidth, f.App.InnerWidth
	if iw <= 0 {
		return nil
	}

	bandW := f.Geom.Width - 2*ow
	bandH := f.Geom.Height - 2*ow
	if bandW <= 0 || bandH <= 0 {
		return nil
	}

	rects := []geom.Rect{
		{X: ow, Y: ow, Width: bandW, Height: iw},                  // top
		{X: ow, Y: ow + bandH - iw, Width: bandW, Height: iw},      // bottom
		{X: ow, Y: ow + iw, Width: iw, Height: bandH - 2*iw},       // left
		{X: ow + bandW - iw, Y: ow + iw, Width: iw, Height: bandH - 2*iw}, // right
	}
	return f.gw.FillRects(f.Win, rects, f.App.InnerColor)
}

// Destroy reparents the client back to the root and destroys the frame
// window, the pairing spec.md §3's Frame invariant requires. Grounded on
// moukhtar22-doWM's UnFrame.
func (f *Frame) Destroy() error {
	if err := f.gw.Unmap(f.Win); err != nil {
		return fmt.Errorf("unmap frame: %w", err)
	}
	if err := f.gw.ReparentToRoot(f.Client, f.Geom.X, f.Geom.Y); err != nil {
		return fmt.Errorf("reparent client to root: %w", err)
	}
	if err := f.gw.RemoveFromSaveSet(f.Client); err != nil {
		return fmt.Errorf("remove client from save set: %w", err)
	}
	return f.gw.DestroyWindow(f.Win)
}

// MoveResize configures the frame to g, then configures the client to the
// inset rectangle spec.md §4.2 defines:
// (outer+inner, outer+inner, g.w-2*(outer+inner), g.h-2*(outer+inner)).
func (f *Frame) MoveResize(g geom.Rect) error {
	f.Geom = g
	if err := f.gw.Configure(f.Win, g); err != nil {
		return fmt.Errorf("configure frame: %w", err)
	}
	inset := f.App.OuterWidth + f.App.InnerWidth
	clientGeom := geom.Rect{
		X: inset, Y: inset,
		Width:  g.Width - 2*inset,
		Height: g.Height - 2*inset,
	}
	if clientGeom.Width < 1 {
		clientGeom.Width = 1
	}
	if clientGeom.Height < 1 {
		clientGeom.Height = 1
	}
	if err := f.gw.Configure(f.Client, clientGeom); err != nil {
		return err
	}
	return f.Draw()
}

// Map maps the frame (and, transitively, the reparented client).
func (f *Frame) Map() error { return f.gw.Map(f.Win) }

// Unmap unmaps the frame without destroying it, used to hide windows on an
// inactive workspace.
func (f *Frame) Unmap() error { return f.gw.Unmap(f.Win) }

// SetAppearance updates border widths/colors and reapplies the current
// geometry so the change is visible immediately.
func (f *Frame) SetAppearance(app Appearance) error {
	f.App = app
	return f.MoveResize(f.Geom)
}
