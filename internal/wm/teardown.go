package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// HandleUnmapNotify and HandleDestroyNotify both tear a window out of
// state — a client is destroyed on unmap or destroy notify per spec.md §3's
// Window lifecycle. Scratchpad windows are detached from their Scratchpad
// record instead of just vanishing, so a later `scratch toggle` respawns
// them.
func (e *Engine) HandleUnmapNotify(win xproto.Window) error {
	return e.forgetWindow(win)
}

func (e *Engine) HandleDestroyNotify(win xproto.Window) error {
	return e.forgetWindow(win)
}

func (e *Engine) forgetWindow(win xproto.Window) error {
	w, ok := e.windows[win]
	if !ok {
		return nil
	}
	delete(e.windows, win)

	if w.Scratch {
		for _, sp := range e.scratchpads {
			if sp.Window == win {
				sp.Window = 0
				sp.Visible = false
			}
		}
	} else if ws, ok := e.workspaces[w.Workspace]; ok {
		occupiedBefore := e.occupied()
		if w.Floating {
			delete(ws.Floating, win)
		} else if err := ws.Tree.Remove(toLeafID(win)); err != nil {
			return fmt.Errorf("forget window: remove from layout: %w", err)
		}
		if ws.Visible {
			if err := e.applyLayout(ws); err != nil {
				return err
			}
		}
		if !sameOccupancy(occupiedBefore, e.occupied()) {
			e.emitWorkspace()
		}
	}

	if err := w.Frame.Destroy(); err != nil {
		return fmt.Errorf("forget window: destroy frame: %w", err)
	}

	if e.focused == win {
		e.focused = 0
		if next, ok := e.firstMappedOnWorkspace(w.Workspace); ok {
			return e.setFocus(next)
		}
	}
	return nil
}

func (e *Engine) firstMappedOnWorkspace(wsIndex int) (xproto.Window, bool) {
	for id, w := range e.windows {
		if w.Workspace == wsIndex && w.Mapped && !w.Scratch {
			return id, true
		}
	}
	return 0, false
}

// HandleConfigureRequest honors a client's own configure request when it is
// not currently tiled (a floating or not-yet-framed window is free to
// request its own geometry); tiled and fullscreen windows have their
// geometry dictated by the engine, so their request is ignored and the
// frame's current geometry is simply re-applied to frame and client. No
// synthetic ConfigureNotify is sent.
func (e *Engine) HandleConfigureRequest(win xproto.Window, mask uint16, values []uint32) error {
	w, managed := e.windows[win]
	if !managed {
		return e.gw.ConfigureFromRequest(win, mask, values)
	}
	if !w.Floating || w.Fullscreen {
		return w.Frame.MoveResize(w.Frame.Geom)
	}
	return e.gw.ConfigureFromRequest(win, mask, values)
}
