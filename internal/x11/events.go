package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// ErrConnectionLost is returned by NextEvent when the X connection has
// failed. Per spec.md §4.1, this is always fatal for the process.
var ErrConnectionLost = errors.New("x11: connection lost")

// EventKind tags the small subset of X events the reactor cares about.
type EventKind int

const (
	EventMapRequest EventKind = iota
	EventUnmapNotify
	EventDestroyNotify
	EventConfigureRequest
	EventConfigureNotify
	EventKeyPress
	EventButtonPress
	EventEnterNotify
	EventUnknown
)

// Event is the reactor's own tagged union over xgb's untyped event
// interface, grounded on moukhtar22-doWM/wm/window_manager.go's
// `switch event.(type)` dispatch in Run.
type Event struct {
	Kind EventKind

	Window xproto.Window // the window the event concerns

	// ConfigureRequest fields
	ValueMask     uint16
	X, Y          int16
	Width, Height uint16
	BorderWidth   uint16
	Sibling       xproto.Window
	StackMode     byte

	// KeyPress / ButtonPress fields
	Detail xproto.Keycode
	Button xproto.Button
	State  uint16
	Child  xproto.Window
}

// NextEvent blocks for the next X event and decodes it into the reactor's
// Event sum type. Returns ErrConnectionLost when the connection has failed.
func (c *Connection) NextEvent() (Event, error) {
	raw, err := c.Conn.WaitForEvent()
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	if raw == nil {
		return Event{}, ErrConnectionLost
	}

	switch e := raw.(type) {
	case xproto.MapRequestEvent:
		return Event{Kind: EventMapRequest, Window: e.Window}, nil
	case xproto.UnmapNotifyEvent:
		return Event{Kind: EventUnmapNotify, Window: e.Window}, nil
	case xproto.DestroyNotifyEvent:
		return Event{Kind: EventDestroyNotify, Window: e.Window}, nil
	case xproto.ConfigureRequestEvent:
		return Event{
			Kind: EventConfigureRequest, Window: e.Window,
			ValueMask: e.ValueMask, X: e.X, Y: e.Y,
			Width: e.Width, Height: e.Height, BorderWidth: e.BorderWidth,
			Sibling: e.Sibling, StackMode: e.StackMode,
		}, nil
	case xproto.ConfigureNotifyEvent:
		return Event{Kind: EventConfigureNotify, Window: e.Window}, nil
	case xproto.KeyPressEvent:
		return Event{Kind: EventKeyPress, Window: e.Event, Detail: e.Detail, State: e.State, Child: e.Child}, nil
	case xproto.ButtonPressEvent:
		return Event{Kind: EventButtonPress, Window: e.Event, Button: e.Detail, State: e.State, Child: e.Child}, nil
	case xproto.EnterNotifyEvent:
		return Event{Kind: EventEnterNotify, Window: e.Event}, nil
	default:
		return Event{Kind: EventUnknown}, nil
	}
}
