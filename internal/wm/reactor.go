package wm

import (
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/hibrid/mywm/internal/x11"
)

// EventSource is the blocking X event stream the reactor multiplexes,
// satisfied by *x11.Connection.
type EventSource interface {
	NextEvent() (x11.Event, error)
}

// InputLookup resolves a decoded key/button event to a command string,
// satisfied by internal/input's binding maps.
type InputLookup interface {
	LookupKey(detail xproto.Keycode, state uint16) (command string, ok bool)
	LookupButton(button xproto.Button, state uint16) (command string, ok bool)
}

// CommandRequest is one line submitted to the reactor from an external
// source — an IPC client, the configuration watcher's `reload-config`, or
// the daemon's signal handler's `quit`. Reply is nil for those last two
// fire-and-forget submissions. The initial configuration run does not use
// this path; it calls the dispatcher directly.
type CommandRequest struct {
	Line  string
	Reply chan<- string
}

// DispatchFunc runs one protocol line against the engine, returning OK/ERR
// per spec.md §7. internal/command implements this.
type DispatchFunc func(line string) (ok bool, reason string)

// Reactor is the single-threaded loop spec.md §5 describes: it multiplexes
// X events, IPC/config command lines, and (via the same CommandRequest
// channel) configuration reload notifications, which arrive as a
// `reload-config` line. Grounded on moukhtar22-doWM's blocking
// `for { PollForEvent(); switch ... }` loop, generalized into a `select`
// over multiple sources since a single blocking X read can't also watch a
// channel.
type Reactor struct {
	engine   *Engine
	events   EventSource
	input    InputLookup
	dispatch DispatchFunc
	commands <-chan CommandRequest

	log *slog.Logger
}

// NewReactor constructs a reactor. log may be nil, in which case
// slog.Default() is used.
func NewReactor(engine *Engine, events EventSource, input InputLookup, dispatch DispatchFunc, commands <-chan CommandRequest, log *slog.Logger) *Reactor {
	if log == nil {
		log = slog.Default()
	}
	return &Reactor{engine: engine, events: events, input: input, dispatch: dispatch, commands: commands, log: log}
}

// Run blocks, processing events and commands until the engine's Quit
// command fires or the X connection is lost. Returns x11.ErrConnectionLost
// on connection loss (fatal per spec.md §7(e)); returns nil on an orderly
// `quit`.
func (r *Reactor) Run() error {
	xEvents := make(chan x11.Event)
	xErrs := make(chan error, 1)
	go func() {
		for {
			ev, err := r.events.NextEvent()
			if err != nil {
				xErrs <- err
				return
			}
			xEvents <- ev
		}
	}()

	r.engine.running = true
	for r.engine.running {
		select {
		case ev := <-xEvents:
			if err := r.handleXEvent(ev); err != nil {
				r.log.Warn("event handler error", "event", ev.Kind, "window", ev.Window, "error", err)
			}
		case err := <-xErrs:
			return err
		case req := <-r.commands:
			ok, reason := r.dispatch(req.Line)
			if req.Reply == nil {
				continue
			}
			if ok {
				req.Reply <- "OK"
			} else {
				req.Reply <- "ERR " + reason
			}
		}
	}
	return nil
}

func (r *Reactor) handleXEvent(ev x11.Event) error {
	switch ev.Kind {
	case x11.EventMapRequest:
		return r.engine.HandleMapRequest(ev.Window)
	case x11.EventUnmapNotify:
		return r.engine.HandleUnmapNotify(ev.Window)
	case x11.EventDestroyNotify:
		return r.engine.HandleDestroyNotify(ev.Window)
	case x11.EventConfigureRequest:
		return r.engine.HandleConfigureRequest(ev.Window, ev.ValueMask, configValuesFromEvent(ev))
	case x11.EventEnterNotify:
		return r.engine.HandleEnterNotify(ev.Window)
	case x11.EventKeyPress:
		if cmd, ok := r.input.LookupKey(ev.Detail, ev.State); ok {
			if ok, reason := r.dispatch(cmd); !ok {
				r.log.Warn("bound command failed", "command", cmd, "reason", reason)
			}
		}
		return nil
	case x11.EventButtonPress:
		if cmd, ok := r.input.LookupButton(ev.Button, ev.State); ok {
			if ok, reason := r.dispatch(cmd); !ok {
				r.log.Warn("bound command failed", "command", cmd, "reason", reason)
			}
		}
		return nil
	default:
		return nil
	}
}

// configValuesFromEvent reconstructs the ConfigureWindow values array from
// a decoded ConfigureRequest event, in the fixed field order
// xproto.ConfigWindow* bits expect: X, Y, Width, Height, BorderWidth,
// Sibling, StackMode.
func configValuesFromEvent(ev x11.Event) []uint32 {
	var values []uint32
	if ev.ValueMask&xproto.ConfigWindowX != 0 {
		values = append(values, uint32(ev.X))
	}
	if ev.ValueMask&xproto.ConfigWindowY != 0 {
		values = append(values, uint32(ev.Y))
	}
	if ev.ValueMask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(ev.Width))
	}
	if ev.ValueMask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(ev.Height))
	}
	if ev.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(ev.BorderWidth))
	}
	if ev.ValueMask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(ev.Sibling))
	}
	if ev.ValueMask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(ev.StackMode))
	}
	return values
}
