// Package input owns the key/button binding tables of spec.md §4.7:
// keycombo and buttoncombo strings mapped to command strings, grabbed on
// the root window through the display gateway so the manager receives
// them regardless of which client has input focus.
package input

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/hibrid/mywm/internal/x11"
)

// Gateway is the subset of internal/x11's Connection the input manager
// needs to resolve and grab combos.
type Gateway interface {
	KeycodeForName(name string) (xproto.Keycode, error)
	GrabKey(mods uint16, code xproto.Keycode) error
	UngrabKey(mods uint16, code xproto.Keycode) error
	GrabButton(mods uint16, button xproto.Button) error
	UngrabButton(mods uint16, button xproto.Button) error
}

type keyBinding struct {
	mods uint16
	code xproto.Keycode
}

type buttonBinding struct {
	mods   uint16
	button xproto.Button
}

// Manager holds the two combo→command maps of spec.md §4.7 and mirrors
// them into X grabs via the Gateway.
type Manager struct {
	gw Gateway

	keyCommands    map[keyBinding]string
	buttonCommands map[buttonBinding]string

	keyCombos    map[string]keyBinding // combo string -> resolved binding, for Ungrab on reset
	buttonCombos map[string]buttonBinding
}

// New constructs an empty binding manager.
func New(gw Gateway) *Manager {
	return &Manager{
		gw:             gw,
		keyCommands:    make(map[keyBinding]string),
		buttonCommands: make(map[buttonBinding]string),
		keyCombos:      make(map[string]keyBinding),
		buttonCombos:   make(map[string]buttonBinding),
	}
}

// Bind installs a keycombo→command binding, grabbing the combo (a rebind
// ungrabs the old grab and grabs again), per the `bind` verb of spec.md §6. A combo naming an X button
// ("Button1".."Button3" as the final token) is routed to the button table
// instead, per spec.md §4.7's two-map design — mywm's grammar uses the
// same hyphen-joined modifier prefix for both.
func (m *Manager) Bind(combo, command string) error {
	mods, last, err := parseModifiers(combo)
	if err != nil {
		return err
	}

	if button, ok := buttonToken(last); ok {
		return m.bindButton(combo, mods, button, command)
	}
	return m.bindKey(combo, mods, last, command)
}

func (m *Manager) bindKey(combo string, mods uint16, keyName, command string) error {
	code, err := m.gw.KeycodeForName(keyName)
	if err != nil {
		return fmt.Errorf("bind %q: %w", combo, err)
	}
	if old, ok := m.keyCombos[combo]; ok {
		delete(m.keyCommands, old)
		m.gw.UngrabKey(old.mods, old.code)
	}
	b := keyBinding{mods: mods, code: code}
	if err := m.gw.GrabKey(mods, code); err != nil {
		return fmt.Errorf("grab %q: %w", combo, err)
	}
	m.keyCommands[b] = command
	m.keyCombos[combo] = b
	return nil
}

func (m *Manager) bindButton(combo string, mods uint16, button xproto.Button, command string) error {
	if old, ok := m.buttonCombos[combo]; ok {
		delete(m.buttonCommands, old)
		m.gw.UngrabButton(old.mods, old.button)
	}
	b := buttonBinding{mods: mods, button: button}
	if err := m.gw.GrabButton(mods, button); err != nil {
		return fmt.Errorf("grab %q: %w", combo, err)
	}
	m.buttonCommands[b] = command
	m.buttonCombos[combo] = b
	return nil
}

// LookupKey implements wm.InputLookup. Unknown combos are ignored silently
// per spec.md §4.7 — ok is false, not an error.
func (m *Manager) LookupKey(detail xproto.Keycode, state uint16) (string, bool) {
	cmd, ok := m.keyCommands[keyBinding{mods: normalizeState(state), code: detail}]
	return cmd, ok
}

// LookupButton implements wm.InputLookup.
func (m *Manager) LookupButton(button xproto.Button, state uint16) (string, bool) {
	cmd, ok := m.buttonCommands[buttonBinding{mods: normalizeState(state), button: button}]
	return cmd, ok
}

// Reset ungrabs every installed combo and clears both tables, per the
// configuration pipeline's reset-before-replay policy (spec.md §4.8).
func (m *Manager) Reset() {
	for _, b := range m.keyCombos {
		m.gw.UngrabKey(b.mods, b.code)
	}
	for _, b := range m.buttonCombos {
		m.gw.UngrabButton(b.mods, b.button)
	}
	m.keyCommands = make(map[keyBinding]string)
	m.buttonCommands = make(map[buttonBinding]string)
	m.keyCombos = make(map[string]keyBinding)
	m.buttonCombos = make(map[string]buttonBinding)
}

// normalizeState strips the lock/numlock bits X sets in event state that
// never appear in a grab's requested modifier mask.
func normalizeState(state uint16) uint16 {
	const relevant = xproto.ModMask1 | xproto.ModMask2 | xproto.ModMask3 | xproto.ModMask4 |
		xproto.ModMaskShift | xproto.ModMaskControl
	return state & relevant
}

// buttonToken recognizes the "Button1".."Button3" trailing token that
// routes a combo to the button table instead of the key table.
func buttonToken(token string) (xproto.Button, bool) {
	if !strings.HasPrefix(token, "Button") {
		return 0, false
	}
	b, err := x11.ButtonFromName(strings.TrimPrefix(token, "Button"))
	if err != nil {
		return 0, false
	}
	return b, true
}

// parseModifiers splits a spec.md §6 combo ("Mod4-Shift-Return") into its
// resolved modifier mask and trailing key/button token.
func parseModifiers(combo string) (mods uint16, last string, err error) {
	parts := strings.Split(combo, "-")
	if len(parts) < 2 {
		return 0, "", fmt.Errorf("malformed combo %q: need at least one modifier and a key", combo)
	}
	for _, tok := range parts[:len(parts)-1] {
		m, err := x11.ModMask(tok)
		if err != nil {
			return 0, "", fmt.Errorf("combo %q: %w", combo, err)
		}
		mods |= m
	}
	return mods, parts[len(parts)-1], nil
}
