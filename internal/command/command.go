// Package command is the single dispatcher spec.md §2's data-flow diagram
// names without giving it a section of its own (SPEC_FULL.md §4.10): it
// parses one protocol line into a verb and shell-quoted arguments and
// invokes the matching internal/wm engine method, returning OK/ERR exactly
// per spec.md §6's grammar and §7's error kinds. internal/ipc, internal/input,
// and internal/config all funnel through the same Dispatch method, the
// generalization of spec.md §2 and §5's "same entry" requirement.
package command

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/hibrid/mywm/internal/input"
	"github.com/hibrid/mywm/internal/rules"
	"github.com/hibrid/mywm/internal/wm"
)

// Reloader is implemented by internal/config: resets bindings, rules, and
// appearance to defaults and re-runs the configuration source, per
// spec.md §4.8's reload-config path.
type Reloader interface {
	Reload() error
}

// Dispatcher is the wm.DispatchFunc implementation shared by every command
// source.
type Dispatcher struct {
	engine *wm.Engine
	input  *input.Manager
	reload Reloader
	parser *shellwords.Parser
}

// New constructs a Dispatcher. reload may be nil before the configuration
// pipeline is wired up (reload-config then fails with "not-ready").
func New(engine *wm.Engine, in *input.Manager, reload Reloader) *Dispatcher {
	return &Dispatcher{engine: engine, input: in, reload: reload, parser: shellwords.NewParser()}
}

// SetReloader wires the configuration pipeline in after construction, since
// internal/config's Pipeline itself takes a Dispatcher to replay lines
// through — the two can't be constructed in either order without a setter.
func (d *Dispatcher) SetReloader(r Reloader) {
	d.reload = r
}

// Dispatch implements wm.DispatchFunc.
func (d *Dispatcher) Dispatch(line string) (bool, string) {
	args, err := d.parser.Parse(line)
	if err != nil || len(args) == 0 {
		return false, "unknown"
	}
	verb, rest := args[0], args[1:]

	switch verb {
	case "set-workspaces":
		return d.setWorkspaces(rest)
	case "bind":
		return d.bind(rest)
	case "rule":
		return d.rule(rest)
	case "scratch":
		return d.scratch(rest)
	case "set-gap":
		return d.setGap(rest)
	case "set-border":
		return d.setBorder(rest)
	case "set-color":
		return d.setColor(rest)
	case "bar":
		return d.bar(rest)
	case "spawn":
		return d.spawn(rest)
	case "focus":
		return d.direction(rest, d.engine.Focus)
	case "move":
		return d.direction(rest, d.engine.Move)
	case "resize":
		return d.resize(rest)
	case "float":
		return d.toggleVerb(rest, func() error { return d.engine.FloatToggle() })
	case "close":
		return okOrErr(d.engine.Close())
	case "view":
		return d.workspaceArg(rest, d.engine.View)
	case "send":
		return d.workspaceArg(rest, d.engine.Send)
	case "move-ws":
		return d.moveWs(rest)
	case "togglebar":
		return okOrErr(d.engine.BarToggle())
	case "fullscreen":
		return d.toggleVerb(rest, func() error { return d.engine.FullscreenToggle() })
	case "reload-config":
		return d.reloadConfig()
	case "quit":
		return okOrErr(d.engine.Quit())
	default:
		return false, "unknown"
	}
}

func okOrErr(err error) (bool, string) {
	if err != nil {
		return false, err.Error()
	}
	return true, ""
}

func (d *Dispatcher) setWorkspaces(args []string) (bool, string) {
	if len(args) == 0 {
		return false, "bad-args"
	}
	tokens := make(map[int]string, len(args))
	for _, a := range args {
		idx, label, ok := strings.Cut(a, ":")
		if !ok {
			return false, "bad-args"
		}
		n, err := strconv.Atoi(idx)
		if err != nil {
			return false, "bad-args"
		}
		tokens[n] = label
	}
	return okOrErr(d.engine.SetWorkspaces(tokens))
}

func (d *Dispatcher) bind(args []string) (bool, string) {
	if len(args) < 2 {
		return false, "bad-args"
	}
	return okOrErr(d.input.Bind(args[0], strings.Join(args[1:], " ")))
}

func (d *Dispatcher) rule(args []string) (bool, string) {
	kv, err := parseKeyValues(args)
	if err != nil {
		return false, "bad-args"
	}
	class, ok := kv["class"]
	if !ok || class == "" {
		return false, "bad-args"
	}
	r := rules.Rule{Class: class, Title: kv["title"], Area: kv["area"]}
	if v, ok := kv["workspace"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return false, "bad-args"
		}
		r.Workspace = &n
	}
	if v, ok := kv["monitor"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return false, "bad-args"
		}
		r.Monitor = &n
	}
	if v, ok := kv["float"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, "bad-args"
		}
		r.Float = &b
	}
	d.engine.Rules().Add(r)
	return true, ""
}

// scratch handles both `scratch toggle <name>` and registration via
// `scratch <name>:<spawn-command>` (spec.md §6) — the name:command pair is
// one shell-quoted argument, same as spawn's <cmd>, so a multi-word spawn
// command needs quoting at the call site.
func (d *Dispatcher) scratch(args []string) (bool, string) {
	if len(args) == 2 && args[0] == "toggle" {
		spawnCmd, launching, err := d.engine.ScratchToggle(args[1])
		if err != nil {
			return false, err.Error()
		}
		if launching {
			return d.spawn([]string{spawnCmd})
		}
		return true, ""
	}
	if len(args) == 1 {
		name, spawnCmd, ok := strings.Cut(args[0], ":")
		if !ok || name == "" || spawnCmd == "" {
			return false, "bad-args"
		}
		d.engine.RegisterScratch(name, spawnCmd)
		return true, ""
	}
	return false, "bad-args"
}

func (d *Dispatcher) setGap(args []string) (bool, string) {
	if len(args) != 1 {
		return false, "bad-args"
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return false, "bad-args"
	}
	return okOrErr(d.engine.SetGap(n))
}

func (d *Dispatcher) setBorder(args []string) (bool, string) {
	if len(args) != 2 {
		return false, "bad-args"
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return false, "bad-args"
	}
	return okOrErr(d.engine.SetBorderWidth(args[0], n))
}

func (d *Dispatcher) setColor(args []string) (bool, string) {
	if len(args) != 2 {
		return false, "bad-args"
	}
	rgb, err := parseHexColor(args[1])
	if err != nil {
		return false, "bad-args"
	}
	return okOrErr(d.engine.SetBorderColor(args[0], rgb))
}

func (d *Dispatcher) bar(args []string) (bool, string) {
	if len(args) != 2 || args[0] != "show-occupied-only" {
		return false, "bad-args"
	}
	b, err := strconv.ParseBool(args[1])
	if err != nil {
		return false, "bad-args"
	}
	d.engine.SetBarShowOccupiedOnly(b)
	return true, ""
}

func (d *Dispatcher) spawn(args []string) (bool, string) {
	if len(args) == 0 {
		return false, "bad-args"
	}
	cmdLine := args[0]
	hintArgs := args[1:]
	if len(hintArgs) > 0 {
		kv, err := parseKeyValues(hintArgs)
		if err != nil {
			return false, "bad-args"
		}
		// Class/title hints would be meaningless here: spawn hints are
		// consumed unconditionally by the next adoption rather than matched,
		// per spec.md §6's "apply placement hints" (see internal/wm/adopt.go).
		hint := rules.Rule{Area: kv["area"]}
		if v, ok := kv["workspace"]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				hint.Workspace = &n
			}
		}
		if v, ok := kv["monitor"]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				hint.Monitor = &n
			}
		}
		if v, ok := kv["float"]; ok {
			if b, err := strconv.ParseBool(v); err == nil {
				hint.Float = &b
			}
		}
		d.engine.QueueSpawnHint(hint)
	}

	argv, err := shellwords.Parse(cmdLine)
	if err != nil || len(argv) == 0 {
		return false, "bad-args"
	}
	// Grounded on moukhtar22-doWM's exec.Command(...).Start() key-handler
	// calls: fire-and-forget, no tracking. Children outlive the manager
	// per spec.md §5.
	if err := exec.Command(argv[0], argv[1:]...).Start(); err != nil {
		return false, fmt.Sprintf("spawn: %v", err)
	}
	return true, ""
}

func (d *Dispatcher) direction(args []string, fn func(wm.Direction) error) (bool, string) {
	if len(args) != 1 {
		return false, "bad-args"
	}
	dir, err := wm.ParseDirection(args[0])
	if err != nil {
		return false, "bad-args"
	}
	return okOrErr(fn(dir))
}

func (d *Dispatcher) resize(args []string) (bool, string) {
	if len(args) != 2 {
		return false, "bad-args"
	}
	dx, err := parseSignedAxis(args[0], 'x')
	if err != nil {
		return false, "bad-args"
	}
	dy, err := parseSignedAxis(args[1], 'y')
	if err != nil {
		return false, "bad-args"
	}
	return okOrErr(d.engine.Resize(dx, dy))
}

func (d *Dispatcher) toggleVerb(args []string, fn func() error) (bool, string) {
	if len(args) != 1 || args[0] != "toggle" {
		return false, "bad-args"
	}
	return okOrErr(fn())
}

func (d *Dispatcher) workspaceArg(args []string, fn func(int) error) (bool, string) {
	if len(args) != 2 || args[0] != "ws" {
		return false, "bad-args"
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return false, "bad-args"
	}
	return okOrErr(fn(n))
}

func (d *Dispatcher) moveWs(args []string) (bool, string) {
	if len(args) != 3 || args[1] != "monitor" {
		return false, "bad-args"
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return false, "bad-args"
	}
	m, err := strconv.Atoi(args[2])
	if err != nil {
		return false, "bad-args"
	}
	return okOrErr(d.engine.MoveWorkspace(n, m))
}

// reloadConfig implements the interactive reload path of spec.md §7(f):
// a configuration source that exits non-zero replies ERR config <exit-code>.
func (d *Dispatcher) reloadConfig() (bool, string) {
	if d.reload == nil {
		return false, "not-ready"
	}
	if err := d.reload.Reload(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, fmt.Sprintf("config %d", exitErr.ExitCode())
		}
		return false, fmt.Sprintf("config %v", err)
	}
	return true, ""
}

// parseKeyValues splits a run of "key=value" tokens, per the `rule` and
// `spawn` verbs' argument grammar (spec.md §6).
func parseKeyValues(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("malformed key=value pair %q", a)
		}
		out[k] = v
	}
	return out, nil
}

// parseHexColor parses "#rrggbb" into a 24-bit RGB value.
func parseHexColor(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("malformed color %q", s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed color %q: %w", s, err)
	}
	return uint32(n), nil
}

// parseSignedAxis parses a resize argument like "+20x" or "-5y", requiring
// the trailing letter to match axis.
func parseSignedAxis(tok string, axis byte) (int, error) {
	if len(tok) < 2 || tok[len(tok)-1] != axis {
		return 0, fmt.Errorf("malformed resize argument %q", tok)
	}
	return strconv.Atoi(tok[:len(tok)-1])
}
