package wm

import "fmt"

// SetGap sets the global gap, reapplying the layout of every visible
// workspace so the change takes effect immediately. `set-gap G; set-gap G`
// is a no-op per spec.md §8.
func (e *Engine) SetGap(pixels int) error {
	if pixels == e.appearance.Gap {
		return nil
	}
	e.appearance.Gap = pixels
	return e.reapplyAllVisible()
}

// SetBorderWidth sets the inner or outer border width and redraws every
// managed window's frame.
func (e *Engine) SetBorderWidth(kind string, pixels int) error {
	switch kind {
	case "inner":
		e.appearance.Frame.InnerWidth = pixels
	case "outer":
		e.appearance.Frame.OuterWidth = pixels
	default:
		return fmt.Errorf("unknown border kind %q", kind)
	}
	return e.redrawAllFrames()
}

// SetBorderColor sets the inner or outer border color and redraws every
// managed window's frame.
func (e *Engine) SetBorderColor(kind string, rgb uint32) error {
	switch kind {
	case "inner":
		e.appearance.Frame.InnerColor = rgb
	case "outer":
		e.appearance.Frame.OuterColor = rgb
	default:
		return fmt.Errorf("unknown border kind %q", kind)
	}
	return e.redrawAllFrames()
}

func (e *Engine) redrawAllFrames() error {
	for _, w := range e.windows {
		app := e.appearance.Frame
		if w.Fullscreen {
			app.InnerWidth, app.OuterWidth = 0, 0
		}
		if err := w.Frame.SetAppearance(app); err != nil {
			return fmt.Errorf("redraw frame for window %d: %w", w.ID, err)
		}
	}
	return nil
}

// ResetConfig clears the rule list and resets gap/border widths/colors to
// defaults, the state-engine half of the configuration pipeline's
// reset-before-replay policy on reload (spec.md §4.8). The input manager's
// binding maps are reset separately, since bindings aren't engine state.
func (e *Engine) ResetConfig() error {
	e.rules.Reset()
	e.appearance = DefaultAppearance()
	if err := e.redrawAllFrames(); err != nil {
		return err
	}
	return e.reapplyAllVisible()
}

func (e *Engine) reapplyAllVisible() error {
	for _, ws := range e.workspaces {
		if ws.Visible {
			if err := e.applyLayout(ws); err != nil {
				return err
			}
		}
	}
	return nil
}
