package wm

import "github.com/BurntSushi/xgb/xproto"

// Publisher receives the three broadcast events spec.md §4.5 and §4.6
// define. internal/bar's Publisher implements it on top of internal/ipc's
// server broadcast; the engine holds one Publisher and is oblivious to how events reach
// subscribers. "Every mutation that changes workspace occupancy, focus, or
// bar visibility produces exactly one corresponding broadcast event after
// the state has stabilized" — callers invoke these only once per
// settled mutation, never mid-mutation.
type Publisher interface {
	PublishWorkspace(active int, occupied []int)
	PublishFocus(win xproto.Window, title string)
	PublishBarToggle(visible bool)
}

// NopPublisher discards every event; useful for tests and for running the
// engine before a real publisher is wired up.
type NopPublisher struct{}

func (NopPublisher) PublishWorkspace(active int, occupied []int)    {}
func (NopPublisher) PublishFocus(win xproto.Window, title string)   {}
func (NopPublisher) PublishBarToggle(visible bool)                  {}
