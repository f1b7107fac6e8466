package wm

import (
	"fmt"

	"github.com/hibrid/mywm/internal/geom"
)

// FloatToggle removes the focused window from the BSP leaf set, or inserts
// it back at the previously focused leaf, per spec.md §4.5's Floating
// toggle paragraph and the round-trip property in §8 ("Float-toggle
// applied twice restores the window's tiled geometry and BSP position").
func (e *Engine) FloatToggle() error {
	if e.focused == 0 {
		return nil
	}
	w, ok := e.windows[e.focused]
	if !ok {
		return nil
	}
	ws, ok := e.workspaces[w.Workspace]
	if !ok {
		return fmt.Errorf("float: no such workspace %d", w.Workspace)
	}

	if w.Floating {
		return e.floatToTiled(w, ws)
	}
	return e.tiledToFloat(w, ws)
}

func (e *Engine) tiledToFloat(w *Window, ws *Workspace) error {
	reinsertTarget, _ := ws.Tree.FirstLeaf()
	w.reinsertAfter = fromLeafID(reinsertTarget)

	if err := ws.Tree.Remove(toLeafID(w.ID)); err != nil {
		return fmt.Errorf("float: remove from layout: %w", err)
	}
	w.Floating = true
	ws.Floating[w.ID] = true

	monitor := e.monitors[ws.Monitor].Rect
	if w.FloatGeom == (geom.Rect{}) {
		w.FloatGeom = placementGeom(monitor, "")
	}
	if err := w.Frame.MoveResize(w.FloatGeom); err != nil {
		return fmt.Errorf("float: move to floating geometry: %w", err)
	}
	return e.applyLayout(ws)
}

func (e *Engine) floatToTiled(w *Window, ws *Workspace) error {
	delete(ws.Floating, w.ID)
	w.Floating = false

	target := w.reinsertAfter
	if target == 0 || !ws.Tree.Contains(toLeafID(target)) {
		leaf, _ := ws.Tree.FirstLeaf()
		target = fromLeafID(leaf)
	}
	if err := ws.Tree.Insert(toLeafID(w.ID), toLeafID(target), e.leafRect(ws, target)); err != nil {
		return fmt.Errorf("float: reinsert into layout: %w", err)
	}
	return e.applyLayout(ws)
}
