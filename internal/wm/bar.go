package wm

// BarToggle flips bar visibility and emits bar-toggle, a true toggle per
// spec.md §9 Open Question (a) (the source's cmd_toggle_bar unconditionally
// published visible:false; this spec defines it as a toggle instead).
func (e *Engine) BarToggle() error {
	e.barVisible = !e.barVisible
	e.publisher.PublishBarToggle(e.barVisible)
	return nil
}

// SetBarShowOccupiedOnly sets the `bar show-occupied-only` semantics flag
// the bar renderer reads via workspace events; the engine itself only
// stores it, since bar content is the external renderer's concern.
func (e *Engine) SetBarShowOccupiedOnly(v bool) {
	e.barShowOccupiedOnly = v
}

// BarVisible reports the current bar visibility flag.
func (e *Engine) BarVisible() bool { return e.barVisible }
