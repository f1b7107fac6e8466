package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/hibrid/mywm/internal/geom"
	"github.com/hibrid/mywm/internal/layout"
)

// toLeafID / fromLeafID convert between the display connection's window
// handle and the layout package's own identity type, the boundary
// conversion layout.WindowID's doc comment calls for.
func toLeafID(w xproto.Window) layout.WindowID   { return layout.WindowID(w) }
func fromLeafID(id layout.WindowID) xproto.Window { return xproto.Window(id) }

// applyLayout recomputes every tiled window's geometry on ws and reconfigures
// their frames. Windows whose frame has since disappeared from the engine's
// map are skipped rather than treated as an error — a defensive edge the
// teacher's own Frame lookups (`wm.clients[w]`) share.
func (e *Engine) applyLayout(ws *Workspace) error {
	rect := e.UsableRect(ws.Monitor)
	geoms := ws.Tree.Apply(rect, e.appearance.Gap)
	for leafID, g := range geoms {
		win := fromLeafID(leafID)
		w, ok := e.windows[win]
		if !ok {
			continue
		}
		w.TiledGeom = g
		if err := w.Frame.MoveResize(g); err != nil {
			return fmt.Errorf("apply layout: move-resize %d: %w", win, err)
		}
	}
	return nil
}

// leafRect returns the rect a tiled window currently occupies, for use as
// the Insert axis-decision rect when splitting that leaf. Falls back to the
// workspace's whole usable rect when target is the zero window (an empty
// tree) or otherwise not found.
func (e *Engine) leafRect(ws *Workspace, target xproto.Window) geom.Rect {
	usable := e.UsableRect(ws.Monitor)
	if target == 0 {
		return usable
	}
	if r, ok := ws.Tree.RectOf(toLeafID(target), usable); ok {
		return r
	}
	return usable
}

// moveWorkspaceToMonitor relocates ws to a different monitor's workspace
// list and marks it visible only if the new host had no visible workspace
// yet. It updates bookkeeping only: no frames are mapped or unmapped here.
func (e *Engine) moveWorkspaceToMonitor(ws *Workspace, monitorID int) {
	if ws.Monitor == monitorID {
		return
	}
	if oldMon, ok := e.monitors[ws.Monitor]; ok {
		removeInt(&oldMon.Workspaces, ws.Index)
	}

	newMon, ok := e.monitors[monitorID]
	if !ok {
		return
	}
	_, hostHasVisible := e.visibleWorkspace(monitorID)
	newMon.Workspaces = append(newMon.Workspaces, ws.Index)
	ws.Monitor = monitorID
	ws.Visible = !hostHasVisible
}

func removeInt(s *[]int, v int) {
	out := (*s)[:0]
	for _, x := range *s {
		if x != v {
			out = append(out, x)
		}
	}
	*s = out
}
