package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/hibrid/mywm/internal/frame"
	"github.com/hibrid/mywm/internal/geom"
	"github.com/hibrid/mywm/internal/rules"
)

const clientEventMask = uint32(
	xproto.EventMaskEnterWindow | xproto.EventMaskPropertyChange,
)

// HandleMapRequest adopts a newly mapped client: queries class/title,
// consults the rule matcher, creates a frame, and places the window tiled
// or floating in its target workspace, per spec.md §4.5's Adoption
// paragraph. Grounded on moukhtar22-doWM's OnMapRequest/Frame pairing,
// generalized with rule matching and workspace/floating placement.
func (e *Engine) HandleMapRequest(win xproto.Window) error {
	if _, already := e.windows[win]; already {
		return nil
	}

	if or, err := e.gw.IsOverrideRedirect(win); err == nil && or {
		return e.gw.Map(win)
	}

	class, title := e.gw.QueryClassAndTitle(win)

	if claimed, err := e.adoptPendingScratch(win, class, title); claimed {
		return err
	}

	targetWS := e.activeWorkspaceIndex()
	targetMonitor := -1
	floating := false
	area := ""

	if len(e.spawnHints) > 0 {
		hint := e.spawnHints[0]
		e.spawnHints = e.spawnHints[1:]
		applyPlacement(hint, e, &targetWS, &targetMonitor, &floating, &area)
	} else if rule, matched := e.rules.Match(class, title); matched {
		applyPlacement(rule, e, &targetWS, &targetMonitor, &floating, &area)
	}

	ws, ok := e.workspaces[targetWS]
	if !ok {
		return fmt.Errorf("adopt: no such workspace %d", targetWS)
	}
	if targetMonitor != -1 {
		if mon, ok := e.monitors[targetMonitor]; ok {
			e.moveWorkspaceToMonitor(ws, mon.ID)
		}
	}

	initial := e.monitors[ws.Monitor].Rect
	fr, err := frame.Create(e.gw, win, initial, e.appearance.Frame)
	if err != nil {
		return fmt.Errorf("adopt: create frame: %w", err)
	}
	if err := e.gw.SelectInput(win, clientEventMask); err != nil {
		return fmt.Errorf("adopt: select input: %w", err)
	}

	w := &Window{
		ID: win, Frame: fr,
		Class: class, Title: title,
		Workspace: targetWS, Floating: floating,
	}
	e.windows[win] = w

	occupiedBefore := e.occupied()

	if floating {
		ws.Floating[win] = true
		w.FloatGeom = placementGeom(e.monitors[ws.Monitor].Rect, area)
		if err := fr.MoveResize(w.FloatGeom); err != nil {
			return fmt.Errorf("adopt: place floating window: %w", err)
		}
	} else {
		// Insert ignores target when the tree is empty, so the zero value
		// is fine there.
		target, _ := ws.Tree.FirstLeaf()
		if err := ws.Tree.Insert(toLeafID(win), target, e.leafRect(ws, fromLeafID(target))); err != nil {
			return fmt.Errorf("adopt: insert into layout: %w", err)
		}
	}

	if ws.Visible {
		if err := e.applyLayout(ws); err != nil {
			return err
		}
		if err := fr.Map(); err != nil {
			return fmt.Errorf("adopt: map frame: %w", err)
		}
		w.Mapped = true
	}

	if !sameOccupancy(occupiedBefore, e.occupied()) {
		e.emitWorkspace()
	}

	return e.setFocus(win)
}

// applyPlacement folds a matched rule or spawn hint's override fields into
// the pending adoption decision, per spec.md §4.4's "apply what is valid"
// rule-conflict handling: a workspace naming a workspace that doesn't exist
// is silently skipped rather than rejecting the whole rule.
func applyPlacement(r rules.Rule, e *Engine, targetWS, targetMonitor *int, floating *bool, area *string) {
	if r.Workspace != nil {
		if _, ok := e.workspaces[*r.Workspace]; ok {
			*targetWS = *r.Workspace
		}
	}
	if r.Monitor != nil {
		if _, ok := e.monitors[*r.Monitor]; ok {
			*targetMonitor = *r.Monitor
		}
	}
	if r.Float != nil {
		*floating = *r.Float
	}
	if r.Area != "" {
		*area = r.Area
	}
}

func sameOccupancy(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// placementGeom sizes a newly floated window at a third of the monitor in
// each dimension and positions it per area, the rule's relative-placement
// token (spec.md §3): "top-left", "top-right", "bottom-left",
// "bottom-right", "top", "bottom", "left", "right", or "" / "center" /
// anything unrecognized, which centers it — spec.md names the token but
// doesn't enumerate its values or the default geometry ratio, so both are
// this implementation's own resolution (see DESIGN.md).
func placementGeom(monitor geom.Rect, area string) geom.Rect {
	w := monitor.Width / 3
	h := monitor.Height / 3
	r := geom.Rect{Width: w, Height: h}

	left := monitor.X
	right := monitor.X + monitor.Width - w
	centerX := monitor.X + (monitor.Width-w)/2
	top := monitor.Y
	bottom := monitor.Y + monitor.Height - h
	centerY := monitor.Y + (monitor.Height-h)/2

	switch area {
	case "top-left":
		r.X, r.Y = left, top
	case "top-right":
		r.X, r.Y = right, top
	case "bottom-left":
		r.X, r.Y = left, bottom
	case "bottom-right":
		r.X, r.Y = right, bottom
	case "top":
		r.X, r.Y = centerX, top
	case "bottom":
		r.X, r.Y = centerX, bottom
	case "left":
		r.X, r.Y = left, centerY
	case "right":
		r.X, r.Y = right, centerY
	default:
		r.X, r.Y = centerX, centerY
	}
	return r
}
