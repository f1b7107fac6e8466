package wm

import "fmt"

// floatStep is the monitor-relative translate distance for moving a
// floating window, per spec.md §4.5: "Floating windows instead translate
// by a fixed step (monitor-relative 5%)."
const floatStep = 0.05

// Move swaps the focused window with its directional neighbor (tiled case)
// or translates it by a fixed monitor-relative step (floating case), per
// spec.md §4.5's Window movement paragraph.
func (e *Engine) Move(dir Direction) error {
	if e.focused == 0 {
		return nil
	}
	w, ok := e.windows[e.focused]
	if !ok {
		return nil
	}

	if w.Floating {
		return e.translateFloating(w, dir)
	}
	return e.swapTiled(w, dir)
}

func (e *Engine) swapTiled(w *Window, dir Direction) error {
	neighbor, found := e.directionalNeighbor(w, dir)
	if !found || neighbor.Floating {
		return nil
	}

	ws, ok := e.workspaces[w.Workspace]
	if !ok {
		return fmt.Errorf("move: no such workspace %d", w.Workspace)
	}
	if err := ws.Tree.Swap(toLeafID(w.ID), toLeafID(neighbor.ID)); err != nil {
		return fmt.Errorf("move: swap leaves: %w", err)
	}
	return e.applyLayout(ws)
}

func (e *Engine) translateFloating(w *Window, dir Direction) error {
	ws, ok := e.workspaces[w.Workspace]
	if !ok {
		return fmt.Errorf("move: no such workspace %d", w.Workspace)
	}
	monitor, ok := e.monitors[ws.Monitor]
	if !ok {
		return fmt.Errorf("move: no such monitor %d", ws.Monitor)
	}

	dx := int(float64(monitor.Rect.Width) * floatStep)
	dy := int(float64(monitor.Rect.Height) * floatStep)

	g := w.FloatGeom
	switch dir {
	case DirLeft:
		g.X -= dx
	case DirRight:
		g.X += dx
	case DirUp:
		g.Y -= dy
	case DirDown:
		g.Y += dy
	}
	w.FloatGeom = g
	return w.Frame.MoveResize(g)
}
