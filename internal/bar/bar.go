// Package bar formats the three broadcast events of spec.md §4.5/§4.6 and
// hands them to the IPC server's subscriber fan-out, per
// original_source/hibridwm.cpp's BarPublisher class.
package bar

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/hibrid/mywm/internal/ipc"
)

// Broadcaster is the subset of ipc.Server the publisher needs, named here
// rather than imported as a concrete type so tests can substitute a fake
// without standing up a real socket.
type Broadcaster interface {
	Broadcast(name string, payload any)
}

// Publisher implements wm.Publisher by forwarding each event to a
// Broadcaster. It holds no state of its own — it is a pure formatter.
type Publisher struct {
	out Broadcaster
}

// New returns a Publisher that broadcasts through out.
func New(out Broadcaster) *Publisher {
	return &Publisher{out: out}
}

// PublishWorkspace implements wm.Publisher.
func (p *Publisher) PublishWorkspace(active int, occupied []int) {
	p.out.Broadcast("workspace", ipc.WorkspacePayload{Active: active, Occupied: occupied})
}

// PublishFocus implements wm.Publisher.
func (p *Publisher) PublishFocus(win xproto.Window, title string) {
	p.out.Broadcast("focus", ipc.FocusPayload{Win: uint32(win), Title: title})
}

// PublishBarToggle implements wm.Publisher.
func (p *Publisher) PublishBarToggle(visible bool) {
	p.out.Broadcast("bar-toggle", ipc.BarTogglePayload{Visible: visible})
}
