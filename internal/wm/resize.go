package wm

import (
	"fmt"

	"github.com/hibrid/mywm/internal/layout"
)

// resizeRatioStep converts a pixel delta on a monitor dimension into a
// ratio delta for ResizeRatio, so `resize +40x +0y` feels proportional
// regardless of monitor size.
func resizeRatioStep(delta, dimension int) float64 {
	if dimension == 0 {
		return 0
	}
	return float64(delta) / float64(dimension)
}

// Resize adjusts the focused window's geometry, per spec.md §4.5's Resize
// paragraph: for tiled windows, the nearest ancestor BSP split whose axis
// matches the non-zero dimension; for floating windows, the stored
// floating geometry directly.
func (e *Engine) Resize(dx, dy int) error {
	if e.focused == 0 {
		return nil
	}
	w, ok := e.windows[e.focused]
	if !ok {
		return nil
	}

	if w.Floating {
		g := w.FloatGeom
		g.Width += dx
		g.Height += dy
		if g.Width < 1 {
			g.Width = 1
		}
		if g.Height < 1 {
			g.Height = 1
		}
		w.FloatGeom = g
		return w.Frame.MoveResize(g)
	}

	ws, ok := e.workspaces[w.Workspace]
	if !ok {
		return fmt.Errorf("resize: no such workspace %d", w.Workspace)
	}
	monitor, ok := e.monitors[ws.Monitor]
	if !ok {
		return fmt.Errorf("resize: no such monitor %d", ws.Monitor)
	}

	changed := false
	if dx != 0 {
		ratioDelta := resizeRatioStep(dx, monitor.Rect.Width)
		if ok, err := ws.Tree.ResizeRatio(toLeafID(w.ID), layout.AxisVertical, ratioDelta); err != nil {
			return fmt.Errorf("resize: %w", err)
		} else if ok {
			changed = true
		}
	}
	if dy != 0 {
		ratioDelta := resizeRatioStep(dy, monitor.Rect.Height)
		if ok, err := ws.Tree.ResizeRatio(toLeafID(w.ID), layout.AxisHorizontal, ratioDelta); err != nil {
			return fmt.Errorf("resize: %w", err)
		} else if ok {
			changed = true
		}
	}
	if !changed {
		return nil // lone tiled window: a no-op, per spec.md §8's boundary case
	}
	return e.applyLayout(ws)
}
