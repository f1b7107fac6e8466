package wm

import "github.com/BurntSushi/xgb/xproto"

// HandleEnterNotify implements focus-follows-pointer: entering a managed
// client's window focuses it. Grounded on moukhtar22-doWM's
// OnEnterNotify/OnLeaveNotify border-highlight pair, generalized from a
// cosmetic color change to an actual input-focus change, since spec.md §9
// Open Question (c) requires focus events on any focus change "regardless
// of cause."
func (e *Engine) HandleEnterNotify(win xproto.Window) error {
	w, ok := e.windows[win]
	if !ok || w.Scratch {
		return nil
	}
	return e.setFocus(win)
}
