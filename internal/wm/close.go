package wm

// Close requests a graceful close of the focused window via
// WM_PROTOCOLS/WM_DELETE_WINDOW, per spec.md §6's `close` verb. When the
// client doesn't advertise WM_DELETE_WINDOW support, it is destroyed
// outright instead. The window is removed from state only when its
// UnmapNotify/DestroyNotify arrives, not here — closing is a request, not
// an immediate teardown.
func (e *Engine) Close() error {
	if e.focused == 0 {
		return nil
	}
	if err := e.gw.SendDeleteWindow(e.focused); err != nil {
		return e.gw.DestroyWindow(e.focused)
	}
	return nil
}

// Quit marks the reactor for shutdown; Reactor.Run's loop condition checks
// this flag once per iteration and returns after draining the current
// select, per spec.md §5's Cancellation and shutdown paragraph. Quit does
// not itself tear down frames — the caller calls Shutdown afterward once
// the reactor has returned.
func (e *Engine) Quit() error {
	e.running = false
	return nil
}

// Shutdown unmaps every frame back toward the root and marks the engine as
// no longer running, per spec.md §5's Cancellation and shutdown paragraph.
// It does not close the display connection or listen socket — the caller
// (cmd/mywm's main) owns those lifetimes.
func (e *Engine) Shutdown() error {
	e.running = false
	for _, w := range e.windows {
		if err := w.Frame.Destroy(); err != nil {
			return err
		}
	}
	return nil
}
