package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibrid/mywm/internal/wm"
)

type fakeDispatcher struct {
	lines []string
	fail  map[string]bool
}

func (d *fakeDispatcher) Dispatch(line string) (bool, string) {
	d.lines = append(d.lines, line)
	if d.fail[line] {
		return false, "bad-args"
	}
	return true, ""
}

type fakeEngine struct{ resets int }

func (e *fakeEngine) ResetConfig() error { e.resets++; return nil }

type fakeInput struct{ resets int }

func (i *fakeInput) Reset() { i.resets++ }

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
}

func TestRunOnceFeedsEachStdoutLineToDispatcher(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "config.sh")
	writeScript(t, script, "echo 'set-gap 10'\necho 'set-border inner 3'\n")

	d := &fakeDispatcher{}
	p := New(script, d, &fakeEngine{}, &fakeInput{}, nil)
	require.NoError(t, p.RunOnce())

	assert.Equal(t, []string{"set-gap 10", "set-border inner 3"}, d.lines)
}

func TestRunOnceReturnsScriptExitError(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "config.sh")
	writeScript(t, script, "echo 'set-gap 10'\nexit 3\n")

	d := &fakeDispatcher{}
	p := New(script, d, &fakeEngine{}, &fakeInput{}, nil)
	err := p.RunOnce()
	require.Error(t, err)
	assert.Contains(t, d.lines, "set-gap 10")
}

func TestRunOnceSkipsBlankLinesAndLogsRejections(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "config.sh")
	writeScript(t, script, "echo ''\necho 'bogus'\necho 'set-gap 5'\n")

	d := &fakeDispatcher{fail: map[string]bool{"bogus": true}}
	p := New(script, d, &fakeEngine{}, &fakeInput{}, nil)
	require.NoError(t, p.RunOnce())

	assert.Equal(t, []string{"bogus", "set-gap 5"}, d.lines)
}

func TestReloadResetsBeforeReplaying(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "config.sh")
	writeScript(t, script, "echo 'set-gap 10'\n")

	d := &fakeDispatcher{}
	e := &fakeEngine{}
	in := &fakeInput{}
	p := New(script, d, e, in, nil)

	require.NoError(t, p.Reload())
	assert.Equal(t, 1, e.resets)
	assert.Equal(t, 1, in.resets)
	assert.Equal(t, []string{"set-gap 10"}, d.lines)
}

func TestWatchEnqueuesReloadConfigOnScriptWrite(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "config.sh")
	writeScript(t, script, "echo 'set-gap 10'\n")

	d := &fakeDispatcher{}
	p := New(script, d, &fakeEngine{}, &fakeInput{}, nil)
	commands := make(chan wm.CommandRequest, 4)
	require.NoError(t, p.Watch(commands))
	defer p.Close()

	time.Sleep(20 * time.Millisecond) // let the watch goroutine register
	writeScript(t, script, "echo 'set-gap 20'\n")

	select {
	case req := <-commands:
		assert.Equal(t, "reload-config", req.Line)
		assert.Nil(t, req.Reply)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reload-config command after script write")
	}
}
