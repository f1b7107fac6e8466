// Package ipc is the control socket of spec.md §4.6: a line-oriented,
// UTF-8, one-reply-per-request protocol over a unix stream socket, plus an
// asynchronous JSON event stream pushed to every connected subscriber.
package ipc

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SocketPath resolves the control socket location per spec.md §6:
// $XDG_RUNTIME_DIR/mywm.sock, falling back to /tmp/mywm.sock when the
// environment variable is unset.
func SocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "mywm.sock")
	}
	return "/tmp/mywm.sock"
}

// eventLine is the wire shape of an asynchronous push, per spec.md §4.6:
// `{"event":"<name>","payload":{…}}`.
type eventLine struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// WorkspacePayload is the `workspace` event's payload.
type WorkspacePayload struct {
	Active   int   `json:"active"`
	Occupied []int `json:"occupied"`
}

// FocusPayload is the `focus` event's payload.
type FocusPayload struct {
	Win   uint32 `json:"win"`
	Title string `json:"title"`
}

// BarTogglePayload is the `bar-toggle` event's payload.
type BarTogglePayload struct {
	Visible bool `json:"visible"`
}

func encodeEvent(name string, payload any) ([]byte, error) {
	line, err := json.Marshal(eventLine{Event: name, Payload: payload})
	if err != nil {
		return nil, err
	}
	return append(line, '\n'), nil
}
