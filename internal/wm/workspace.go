package wm

import "fmt"

// View makes workspace n the visible one on its host monitor: unmaps the
// previously visible workspace's frames, maps the new one's, and reapplies
// its layout, per spec.md §4.5's Workspace view paragraph.
func (e *Engine) View(n int) error {
	ws, ok := e.workspaces[n]
	if !ok {
		return fmt.Errorf("unknown-workspace")
	}
	if ws.Visible {
		// Nothing to remap; viewing again only repeats the occupancy event.
		e.emitWorkspace()
		return nil
	}

	if prev, ok := e.visibleWorkspace(ws.Monitor); ok {
		prev.Visible = false
		if err := e.setMappedForWorkspace(prev, false); err != nil {
			return err
		}
	}

	ws.Visible = true
	if err := e.applyLayout(ws); err != nil {
		return err
	}
	if err := e.setMappedForWorkspace(ws, true); err != nil {
		return err
	}
	e.emitWorkspace()
	return nil
}

func (e *Engine) setMappedForWorkspace(ws *Workspace, mapped bool) error {
	for _, w := range e.windows {
		if w.Workspace != ws.Index || w.Scratch {
			continue
		}
		if mapped {
			if err := w.Frame.Map(); err != nil {
				return fmt.Errorf("map frame for window %d: %w", w.ID, err)
			}
		} else {
			if err := w.Frame.Unmap(); err != nil {
				return fmt.Errorf("unmap frame for window %d: %w", w.ID, err)
			}
		}
		w.Mapped = mapped
	}
	return nil
}

// Send moves the focused window to workspace n. If n is visible, the
// target's layout is reapplied immediately; otherwise the window is
// unmapped, per spec.md §4.5's Workspace send paragraph.
func (e *Engine) Send(n int) error {
	if e.focused == 0 {
		return nil
	}
	w, ok := e.windows[e.focused]
	if !ok {
		return nil
	}
	target, ok := e.workspaces[n]
	if !ok {
		return fmt.Errorf("unknown-workspace")
	}
	if w.Workspace == n {
		return nil
	}

	source, ok := e.workspaces[w.Workspace]
	if !ok {
		return fmt.Errorf("send: no such workspace %d", w.Workspace)
	}
	occupiedBefore := e.occupied()

	if w.Floating {
		delete(source.Floating, w.ID)
		target.Floating[w.ID] = true
	} else {
		if err := source.Tree.Remove(toLeafID(w.ID)); err != nil {
			return fmt.Errorf("send: remove from source layout: %w", err)
		}
		if err := e.applyLayout(source); err != nil {
			return err
		}
		leaf, _ := target.Tree.FirstLeaf()
		if err := target.Tree.Insert(toLeafID(w.ID), leaf, e.leafRect(target, fromLeafID(leaf))); err != nil {
			return fmt.Errorf("send: insert into target layout: %w", err)
		}
	}
	w.Workspace = n

	if target.Visible {
		if err := e.applyLayout(target); err != nil {
			return err
		}
		if err := w.Frame.Map(); err != nil {
			return fmt.Errorf("send: map frame: %w", err)
		}
		w.Mapped = true
	} else {
		if err := w.Frame.Unmap(); err != nil {
			return fmt.Errorf("send: unmap frame: %w", err)
		}
		w.Mapped = false
	}

	if !sameOccupancy(occupiedBefore, e.occupied()) {
		e.emitWorkspace()
	}
	return nil
}

// MoveWorkspace relocates workspace n to monitor m, per spec.md §4.5's
// `move-ws` paragraph.
func (e *Engine) MoveWorkspace(n, monitorID int) error {
	ws, ok := e.workspaces[n]
	if !ok {
		return fmt.Errorf("unknown-workspace")
	}
	if _, ok := e.monitors[monitorID]; !ok {
		return fmt.Errorf("unknown-monitor")
	}

	wasVisible := ws.Visible
	if wasVisible {
		if err := e.setMappedForWorkspace(ws, false); err != nil {
			return err
		}
		ws.Visible = false
	}

	e.moveWorkspaceToMonitor(ws, monitorID)

	if ws.Visible {
		if err := e.applyLayout(ws); err != nil {
			return err
		}
		if err := e.setMappedForWorkspace(ws, true); err != nil {
			return err
		}
	}
	e.emitWorkspace()
	return nil
}
