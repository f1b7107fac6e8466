package input

import (
	"fmt"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGW struct {
	keycodes    map[string]xproto.Keycode
	grabbedKeys map[keyBinding]bool
	grabbedBtns map[buttonBinding]bool
}

func newFakeGW() *fakeGW {
	return &fakeGW{
		keycodes:    map[string]xproto.Keycode{"Return": 36, "h": 43, "l": 46},
		grabbedKeys: map[keyBinding]bool{},
		grabbedBtns: map[buttonBinding]bool{},
	}
}

func (g *fakeGW) KeycodeForName(name string) (xproto.Keycode, error) {
	c, ok := g.keycodes[name]
	if !ok {
		return 0, fmt.Errorf("no such key %q", name)
	}
	return c, nil
}
func (g *fakeGW) GrabKey(mods uint16, code xproto.Keycode) error {
	g.grabbedKeys[keyBinding{mods, code}] = true
	return nil
}
func (g *fakeGW) UngrabKey(mods uint16, code xproto.Keycode) error {
	delete(g.grabbedKeys, keyBinding{mods, code})
	return nil
}
func (g *fakeGW) GrabButton(mods uint16, button xproto.Button) error {
	g.grabbedBtns[buttonBinding{mods, button}] = true
	return nil
}
func (g *fakeGW) UngrabButton(mods uint16, button xproto.Button) error {
	delete(g.grabbedBtns, buttonBinding{mods, button})
	return nil
}

func TestBindKeyGrabsAndLooksUp(t *testing.T) {
	gw := newFakeGW()
	m := New(gw)
	require.NoError(t, m.Bind("Mod4-Shift-Return", "spawn xterm"))

	code, _ := gw.KeycodeForName("Return")
	cmd, ok := m.LookupKey(code, xproto.ModMask4|xproto.ModMaskShift)
	assert.True(t, ok)
	assert.Equal(t, "spawn xterm", cmd)
	assert.True(t, gw.grabbedKeys[keyBinding{xproto.ModMask4 | xproto.ModMaskShift, code}])
}

func TestLookupIgnoresLockBitsInEventState(t *testing.T) {
	gw := newFakeGW()
	m := New(gw)
	require.NoError(t, m.Bind("Mod4-h", "focus left"))

	code, _ := gw.KeycodeForName("h")
	const lockBit = 1 << 1 // xproto.ModMaskLock
	cmd, ok := m.LookupKey(code, xproto.ModMask4|lockBit)
	assert.True(t, ok)
	assert.Equal(t, "focus left", cmd)
}

func TestRebindingSameComboReplacesCommandAndRegrabs(t *testing.T) {
	gw := newFakeGW()
	m := New(gw)
	require.NoError(t, m.Bind("Mod4-h", "focus left"))
	require.NoError(t, m.Bind("Mod4-h", "move left"))

	code, _ := gw.KeycodeForName("h")
	cmd, ok := m.LookupKey(code, xproto.ModMask4)
	assert.True(t, ok)
	assert.Equal(t, "move left", cmd)
	assert.Len(t, gw.grabbedKeys, 1)
}

func TestUnknownComboLookupMissesSilently(t *testing.T) {
	gw := newFakeGW()
	m := New(gw)
	_, ok := m.LookupKey(99, 0)
	assert.False(t, ok)
}

func TestButtonComboRoutesToButtonTable(t *testing.T) {
	gw := newFakeGW()
	m := New(gw)
	require.NoError(t, m.Bind("Mod1-Button1", "move-window"))

	cmd, ok := m.LookupButton(xproto.ButtonIndex1, xproto.ModMask1)
	assert.True(t, ok)
	assert.Equal(t, "move-window", cmd)

	_, ok = m.LookupKey(1, xproto.ModMask1)
	assert.False(t, ok)
}

func TestResetUngrabsAndClearsBothTables(t *testing.T) {
	gw := newFakeGW()
	m := New(gw)
	require.NoError(t, m.Bind("Mod4-Return", "spawn xterm"))
	require.NoError(t, m.Bind("Mod1-Button1", "move-window"))

	m.Reset()

	assert.Empty(t, gw.grabbedKeys)
	assert.Empty(t, gw.grabbedBtns)
	_, ok := m.LookupKey(36, xproto.ModMask4)
	assert.False(t, ok)
	_, ok = m.LookupButton(xproto.ButtonIndex1, xproto.ModMask1)
	assert.False(t, ok)
}

func TestBindRejectsComboWithNoModifier(t *testing.T) {
	gw := newFakeGW()
	m := New(gw)
	err := m.Bind("Return", "spawn xterm")
	assert.Error(t, err)
}
