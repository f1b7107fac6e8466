package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/hibrid/mywm/internal/frame"
	"github.com/hibrid/mywm/internal/geom"
)

// Scratch geometry is fixed 80%x60% centered on the focused monitor, per
// spec.md §9 Open Question (b).
const (
	scratchWidthRatio  = 0.8
	scratchHeightRatio = 0.6
)

func scratchGeom(monitor geom.Rect) geom.Rect {
	w := int(float64(monitor.Width) * scratchWidthRatio)
	h := int(float64(monitor.Height) * scratchHeightRatio)
	return geom.Rect{
		X: monitor.X + (monitor.Width-w)/2,
		Y: monitor.Y + (monitor.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// RegisterScratch records a named scratchpad's spawn command, per the
// `scratch <name>:<spawn-command>` form of the `scratch` verb.
func (e *Engine) RegisterScratch(name, spawnCmd string) {
	e.scratchpads[name] = &Scratchpad{Name: name, SpawnCmd: spawnCmd}
}

// ScratchToggle implements `scratch toggle <name>`. If the scratchpad has
// never been spawned (or its window has since died), it returns the
// registered spawn command and launching=true; the caller (the command
// dispatcher, which owns process execution) is responsible for actually
// starting it. The engine marks the scratchpad as awaiting adoption so the
// next map-request is claimed by HandleMapRequest instead of ordinary
// placement. If the window already exists, this call maps/focuses or
// unmaps it directly.
func (e *Engine) ScratchToggle(name string) (spawnCmd string, launching bool, err error) {
	sp, ok := e.scratchpads[name]
	if !ok {
		return "", false, fmt.Errorf("unknown-scratchpad")
	}

	if sp.Window != 0 {
		if _, stillManaged := e.windows[sp.Window]; !stillManaged {
			sp.Window = 0
		}
	}

	if sp.Window == 0 {
		e.pendingScratch = name
		return sp.SpawnCmd, true, nil
	}

	w := e.windows[sp.Window]
	if sp.Visible {
		if err := w.Frame.Unmap(); err != nil {
			return "", false, fmt.Errorf("scratch toggle: unmap: %w", err)
		}
		w.Mapped = false
		sp.Visible = false
		return "", false, nil
	}

	rect := scratchGeom(e.focusedMonitorRect())
	w.FloatGeom = rect
	if err := w.Frame.MoveResize(rect); err != nil {
		return "", false, fmt.Errorf("scratch toggle: move-resize: %w", err)
	}
	if err := w.Frame.Map(); err != nil {
		return "", false, fmt.Errorf("scratch toggle: map: %w", err)
	}
	w.Mapped = true
	sp.Visible = true
	return "", false, e.setFocus(w.ID)
}

// adoptPendingScratch binds win to the scratchpad named by pendingScratch,
// shown immediately at its fixed centered geometry, excluded from layout
// and workspace occupancy. Returns false if there is no pending scratchpad.
func (e *Engine) adoptPendingScratch(win xproto.Window, class, title string) (bool, error) {
	if e.pendingScratch == "" {
		return false, nil
	}
	name := e.pendingScratch
	e.pendingScratch = ""

	sp, ok := e.scratchpads[name]
	if !ok {
		return false, nil
	}

	rect := scratchGeom(e.focusedMonitorRect())
	fr, err := frame.Create(e.gw, win, rect, e.appearance.Frame)
	if err != nil {
		return true, fmt.Errorf("adopt scratch: create frame: %w", err)
	}
	if err := e.gw.SelectInput(win, clientEventMask); err != nil {
		return true, fmt.Errorf("adopt scratch: select input: %w", err)
	}

	w := &Window{
		ID: win, Frame: fr,
		Class: class, Title: title,
		Scratch: true, Floating: true,
		FloatGeom: rect,
	}
	e.windows[win] = w
	sp.Window = win
	sp.Visible = true

	if err := fr.Map(); err != nil {
		return true, fmt.Errorf("adopt scratch: map: %w", err)
	}
	w.Mapped = true
	return true, e.setFocus(win)
}
