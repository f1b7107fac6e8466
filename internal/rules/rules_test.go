package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

func TestMatchOnClassOnly(t *testing.T) {
	m := New()
	m.Add(Rule{Class: "Firefox", Workspace: intPtr(2), Monitor: intPtr(1)})

	got, ok := m.Match("Firefox", "Mozilla Firefox")
	require.True(t, ok)
	assert.Equal(t, 2, *got.Workspace)
	assert.Equal(t, 1, *got.Monitor)
}

func TestTitleNarrowsMatch(t *testing.T) {
	m := New()
	m.Add(Rule{Class: "Xterm", Title: "scratch", Float: boolPtr(true)})

	_, ok := m.Match("Xterm", "regular shell")
	assert.False(t, ok)

	got, ok := m.Match("Xterm", "scratch")
	require.True(t, ok)
	assert.True(t, *got.Float)
}

func TestFirstMatchWins(t *testing.T) {
	m := New()
	m.Add(Rule{Class: "Xterm", Workspace: intPtr(1)})
	m.Add(Rule{Class: "Xterm", Workspace: intPtr(2)})

	got, ok := m.Match("Xterm", "")
	require.True(t, ok)
	assert.Equal(t, 1, *got.Workspace)
}

func TestEmptyClassOrTitleNeverMatches(t *testing.T) {
	m := New()
	m.Add(Rule{Class: "Xterm"})
	m.Add(Rule{Class: "Xterm", Title: "special"})

	_, ok := m.Match("", "")
	assert.False(t, ok)

	_, ok = m.Match("Xterm", "")
	assert.True(t, ok) // matches the first rule, which has no Title filter

	m2 := New()
	m2.Add(Rule{Class: "Xterm", Title: "special"})
	_, ok = m2.Match("Xterm", "")
	assert.False(t, ok)
}

func TestResetClearsRules(t *testing.T) {
	m := New()
	m.Add(Rule{Class: "Xterm"})
	require.Equal(t, 1, m.Len())

	m.Reset()
	assert.Equal(t, 0, m.Len())
	_, ok := m.Match("Xterm", "")
	assert.False(t, ok)
}

func TestNoRuleInstalledNeverMatches(t *testing.T) {
	m := New()
	_, ok := m.Match("Anything", "anything")
	assert.False(t, ok)
}
