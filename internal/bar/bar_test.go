package bar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hibrid/mywm/internal/ipc"
)

type fakeBroadcaster struct {
	name    string
	payload any
	calls   int
}

func (f *fakeBroadcaster) Broadcast(name string, payload any) {
	f.name, f.payload = name, payload
	f.calls++
}

func TestPublishWorkspaceFormatsPayload(t *testing.T) {
	out := &fakeBroadcaster{}
	p := New(out)
	p.PublishWorkspace(2, []int{1, 2, 3})

	assert.Equal(t, "workspace", out.name)
	assert.Equal(t, ipc.WorkspacePayload{Active: 2, Occupied: []int{1, 2, 3}}, out.payload)
}

func TestPublishFocusFormatsPayload(t *testing.T) {
	out := &fakeBroadcaster{}
	p := New(out)
	p.PublishFocus(42, "xterm")

	assert.Equal(t, "focus", out.name)
	assert.Equal(t, ipc.FocusPayload{Win: 42, Title: "xterm"}, out.payload)
}

func TestPublishBarToggleFormatsPayload(t *testing.T) {
	out := &fakeBroadcaster{}
	p := New(out)
	p.PublishBarToggle(false)

	assert.Equal(t, "bar-toggle", out.name)
	assert.Equal(t, ipc.BarTogglePayload{Visible: false}, out.payload)
	assert.Equal(t, 1, out.calls)
}
