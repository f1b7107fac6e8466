package wm

import "fmt"

// FullscreenToggle grows the focused window's frame to the monitor rect
// with zero borders, or restores it and reapplies the layout, per
// spec.md §4.5's Fullscreen paragraph.
func (e *Engine) FullscreenToggle() error {
	if e.focused == 0 {
		return nil
	}
	w, ok := e.windows[e.focused]
	if !ok {
		return nil
	}
	ws, ok := e.workspaces[w.Workspace]
	if !ok {
		return fmt.Errorf("fullscreen: no such workspace %d", w.Workspace)
	}

	if w.Fullscreen {
		w.Fullscreen = false
		if err := w.Frame.SetAppearance(e.appearance.Frame); err != nil {
			return fmt.Errorf("fullscreen: restore borders: %w", err)
		}
		return e.applyLayout(ws)
	}

	w.Fullscreen = true
	monitor := e.monitors[ws.Monitor].Rect
	zero := w.Frame.App
	zero.InnerWidth, zero.OuterWidth = 0, 0
	if err := w.Frame.SetAppearance(zero); err != nil {
		return fmt.Errorf("fullscreen: zero borders: %w", err)
	}
	return w.Frame.MoveResize(monitor)
}
