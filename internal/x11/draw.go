package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/hibrid/mywm/internal/geom"
)

// FillRects fills a set of rectangles on win with a solid color, the single
// drawing primitive spec.md §4.2's Draw needs for its inner/outer border
// bands. One-shot graphics context per call — border redraws are rare
// (appearance changes and resizes), not a hot path.
func (c *Connection) FillRects(win xproto.Window, rects []geom.Rect, colorRGB uint32) error {
	if len(rects) == 0 {
		return nil
	}
	gc, err := xproto.NewGcontextId(c.Conn)
	if err != nil {
		return err
	}
	if err := xproto.CreateGCChecked(c.Conn, gc, xproto.Drawable(win), xproto.GcForeground, []uint32{colorRGB}).Check(); err != nil {
		return err
	}
	defer xproto.FreeGC(c.Conn, gc)

	xrects := make([]xproto.Rectangle, len(rects))
	for i, r := range rects {
		xrects[i] = xproto.Rectangle{X: int16(r.X), Y: int16(r.Y), Width: uint16(r.Width), Height: uint16(r.Height)}
	}
	return xproto.PolyFillRectangleChecked(c.Conn, xproto.Drawable(win), gc, xrects).Check()
}
