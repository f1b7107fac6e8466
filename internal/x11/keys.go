package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
)

// ModMask resolves one spec.md §6 modifier token (Mod1..Mod4, Shift, Ctrl)
// to its X modifier bit.
func ModMask(token string) (uint16, error) {
	switch token {
	case "Mod1":
		return xproto.ModMask1, nil
	case "Mod2":
		return xproto.ModMask2, nil
	case "Mod3":
		return xproto.ModMask3, nil
	case "Mod4":
		return xproto.ModMask4, nil
	case "Shift":
		return xproto.ModMaskShift, nil
	case "Ctrl":
		return xproto.ModMaskControl, nil
	default:
		return 0, fmt.Errorf("unknown modifier %q", token)
	}
}

// KeycodeForName resolves an X11 keysym name ("Return", "h", "minus", ...)
// to a keycode on this connection, grounded on moukhtar22-doWM's use of
// keybind.StrToKeycodes.
func (c *Connection) KeycodeForName(name string) (xproto.Keycode, error) {
	codes := keybind.StrToKeycodes(c.XUtil, name)
	if len(codes) == 0 {
		return 0, fmt.Errorf("no keycode for keysym %q", name)
	}
	return codes[0], nil
}

// GrabKey grabs a modifier+keycode combination on the root window so the
// manager receives KeyPress events for it regardless of which client has
// focus.
func (c *Connection) GrabKey(mods uint16, code xproto.Keycode) error {
	return xproto.GrabKeyChecked(
		c.Conn, true, c.Root, mods, code,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
	).Check()
}

// UngrabKey releases a previously grabbed key combination.
func (c *Connection) UngrabKey(mods uint16, code xproto.Keycode) error {
	return xproto.UngrabKeyChecked(c.Conn, code, c.Root, mods).Check()
}

// GrabButton grabs a modifier+button combination on the root window,
// grounded on moukhtar22-doWM's GrabButtonChecked calls for button-1/-3
// drag gestures.
func (c *Connection) GrabButton(mods uint16, button xproto.Button) error {
	return xproto.GrabButtonChecked(
		c.Conn, true, c.Root,
		uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, xproto.AtomNone,
		byte(button), mods,
	).Check()
}

// UngrabButton releases a previously grabbed button combination.
func (c *Connection) UngrabButton(mods uint16, button xproto.Button) error {
	return xproto.UngrabButtonChecked(c.Conn, byte(button), c.Root, mods).Check()
}

// ButtonFromName maps the spec's button tokens ("1", "2", "3") to an X
// button index.
func ButtonFromName(name string) (xproto.Button, error) {
	switch strings.TrimSpace(name) {
	case "1":
		return xproto.ButtonIndex1, nil
	case "2":
		return xproto.ButtonIndex2, nil
	case "3":
		return xproto.ButtonIndex3, nil
	default:
		return 0, fmt.Errorf("unknown button %q", name)
	}
}
