// Package config is the live configuration pipeline of spec.md §4.8: a
// configuration source is an executable that writes protocol lines to
// standard output. RunOnce replays them once at startup; Watch re-runs the
// replay, after a reset, whenever the source changes on disk.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/hibrid/mywm/internal/wm"
)

// Dispatcher runs one protocol line against the engine. internal/command's
// Dispatcher satisfies this.
type Dispatcher interface {
	Dispatch(line string) (ok bool, reason string)
}

// EngineResetter clears rule list and appearance to defaults, the state-
// engine half of the reset-before-replay policy.
type EngineResetter interface {
	ResetConfig() error
}

// BindingResetter ungrabs and clears the key/button binding tables, the
// input-manager half of the reset-before-replay policy.
type BindingResetter interface {
	Reset()
}

// Pipeline owns the configured script path and drives it through Dispatcher.
type Pipeline struct {
	scriptPath string
	dispatch   Dispatcher
	engine     EngineResetter
	input      BindingResetter
	log        *slog.Logger

	watcher *fsnotify.Watcher
}

// New constructs a Pipeline. log may be nil, in which case slog.Default()
// is used.
func New(scriptPath string, dispatch Dispatcher, engine EngineResetter, input BindingResetter, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{scriptPath: scriptPath, dispatch: dispatch, engine: engine, input: input, log: log}
}

// RunOnce executes the configuration script and feeds its stdout to the
// dispatcher line by line, bypassing the socket per spec.md §4.8. A line
// the dispatcher rejects is logged and skipped; the remaining lines still
// run, per spec.md §7(f)'s "partial commands that did succeed are
// retained."
func (p *Pipeline) RunOnce() error {
	cmd := exec.Command(p.scriptPath)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("config: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("config: start %s: %w", p.scriptPath, err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if ok, reason := p.dispatch.Dispatch(line); !ok {
			p.log.Warn("config line rejected", "line", line, "reason", reason)
		}
	}

	return cmd.Wait()
}

// Reload implements internal/command's Reloader: reset mutable
// configuration, then replay the script from scratch. Runtime state
// (windows, focus, workspace membership) is untouched, per spec.md §4.8.
func (p *Pipeline) Reload() error {
	if err := p.engine.ResetConfig(); err != nil {
		return fmt.Errorf("config: reset: %w", err)
	}
	p.input.Reset()
	return p.RunOnce()
}

// Watch installs an fsnotify watch on the script's containing directory
// (not the file itself, so editors that replace the file via rename-and-
// move still trigger a reload) and pushes a `reload-config` line onto
// commands for every write/create touching the script path. The actual
// reset+replay runs on the reactor goroutine that drains commands, keeping
// state mutation single-threaded per spec.md §5.
func (p *Pipeline) Watch(commands chan<- wm.CommandRequest) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: new watcher: %w", err)
	}
	dir := filepath.Dir(p.scriptPath)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("config: watch %s: %w", dir, err)
	}
	p.watcher = w

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != p.scriptPath {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				commands <- wm.CommandRequest{Line: "reload-config", Reply: nil}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				p.log.Error("config watch error", "error", err)
			}
		}
	}()
	return nil
}

// Close stops the filesystem watcher, if one was started.
func (p *Pipeline) Close() error {
	if p.watcher == nil {
		return nil
	}
	return p.watcher.Close()
}
