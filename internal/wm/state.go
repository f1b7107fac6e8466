package wm

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/hibrid/mywm/internal/frame"
	"github.com/hibrid/mywm/internal/geom"
	"github.com/hibrid/mywm/internal/layout"
	"github.com/hibrid/mywm/internal/rules"
)

// Window is one managed client, per spec.md §3.
type Window struct {
	ID    xproto.Window
	Frame *frame.Frame

	Class string
	Title string

	Workspace  int
	Floating   bool
	Scratch    bool
	Fullscreen bool

	TiledGeom geom.Rect
	FloatGeom geom.Rect // remembered across float toggles; zero value means unset

	Mapped bool

	// reinsertAfter remembers the BSP leaf that was first when this window
	// went floating, so FloatToggle's reverse direction reinserts next to
	// the same neighbor rather than always at the tree's current first leaf.
	reinsertAfter xproto.Window
}

// Workspace is an integer-indexed container for a tiled BSP tree and a
// floating set, per spec.md §3.
type Workspace struct {
	Index   int
	Label   string
	Monitor int
	Visible bool

	Tree     *layout.Tree
	Floating map[xproto.Window]bool
}

// Monitor is a physical output and the ordered workspace indices assigned
// to it, per spec.md §3.
type Monitor struct {
	ID         int
	Rect       geom.Rect
	Workspaces []int
}

// Scratchpad is a named, remembered client excluded from tiling and
// workspace occupancy, per spec.md §4.5.
type Scratchpad struct {
	Name        string
	SpawnCmd    string
	Window      xproto.Window // 0 until spawned
	Visible     bool
}

// Appearance bundles the mutable border/gap defaults the configuration
// pipeline resets on reload.
type Appearance struct {
	Gap   int
	Frame frame.Appearance
}

// DefaultAppearance matches spec.md §4.8's reload reset target: zero gap,
// modest borders, a visible but unstyled pair of bands.
func DefaultAppearance() Appearance {
	return Appearance{
		Gap: 0,
		Frame: frame.Appearance{
			InnerWidth: 1,
			OuterWidth: 2,
			InnerColor: 0x202020,
			OuterColor: 0x101010,
		},
	}
}

// Engine is the authoritative owner of the window/workspace/monitor maps
// and the single place all state mutation happens, per spec.md §4.5 and
// §9's "the reactor owns the single source of truth."
type Engine struct {
	gw        Gateway
	publisher Publisher
	rules     *rules.Matcher

	windows     map[xproto.Window]*Window
	workspaces  map[int]*Workspace
	monitors    map[int]*Monitor
	scratchpads map[string]*Scratchpad

	focused xproto.Window // 0 = none

	appearance Appearance

	barVisible          bool
	barShowOccupiedOnly bool

	// pendingScratch names the scratchpad awaiting its spawned window's
	// first map-request; set by ScratchToggle, consumed by HandleMapRequest.
	pendingScratch string

	// spawnHints queues one placement override per pending `spawn` command
	// (spec.md §6), FIFO. The next unclaimed adoption (one not already
	// claimed by a pending scratchpad) pops the head hint unconditionally —
	// spawn's caller has no way to learn the new window's class ahead of
	// time, so correlation is by spawn order rather than by rule matching.
	spawnHints []rules.Rule

	running bool
}

// focusedMonitorRect returns the rectangle of the monitor hosting the
// focused window's workspace, or monitor 0 if nothing is focused.
func (e *Engine) focusedMonitorRect() geom.Rect {
	if w, ok := e.windows[e.focused]; ok {
		if ws, ok := e.workspaces[w.Workspace]; ok {
			if mon, ok := e.monitors[ws.Monitor]; ok {
				return mon.Rect
			}
		}
	}
	if mon, ok := e.monitors[0]; ok {
		return mon.Rect
	}
	return geom.Rect{}
}

// New constructs an engine with no workspaces or monitors configured; call
// SetWorkspaces and DiscoverMonitors before adopting windows.
func New(gw Gateway, pub Publisher) *Engine {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &Engine{
		gw:          gw,
		publisher:   pub,
		rules:       rules.New(),
		windows:     make(map[xproto.Window]*Window),
		workspaces:  make(map[int]*Workspace),
		monitors:    make(map[int]*Monitor),
		scratchpads: make(map[string]*Scratchpad),
		appearance:  DefaultAppearance(),
		barVisible:  true,
	}
}

// Rules exposes the rule matcher so the command dispatcher can install
// rules directly.
func (e *Engine) Rules() *rules.Matcher { return e.rules }

// QueueSpawnHint records a one-shot placement override for the next window
// to be adopted, per the `spawn` command's key=value hints (spec.md §6).
func (e *Engine) QueueSpawnHint(hint rules.Rule) {
	e.spawnHints = append(e.spawnHints, hint)
}

// Appearance returns a copy of the current appearance defaults.
func (e *Engine) Appearance() Appearance { return e.appearance }

// Focused returns the currently focused window id, or 0 if none.
func (e *Engine) Focused() xproto.Window { return e.focused }

// Window looks up a managed window by id.
func (e *Engine) Window(id xproto.Window) (*Window, bool) {
	w, ok := e.windows[id]
	return w, ok
}

// Workspace looks up a workspace by index.
func (e *Engine) Workspace(n int) (*Workspace, bool) {
	ws, ok := e.workspaces[n]
	return ws, ok
}

// SetWorkspaces replaces the workspace set, per the `set-workspaces`
// command. Existing windows whose workspace no longer exists are left in
// place (spec.md is silent here; this is conservative — no window is ever
// silently destroyed by a configuration command).
func (e *Engine) SetWorkspaces(tokens map[int]string) error {
	if len(tokens) == 0 {
		return fmt.Errorf("set-workspaces: at least one workspace required")
	}
	indices := make([]int, 0, len(tokens))
	for idx := range tokens {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	e.workspaces = make(map[int]*Workspace, len(tokens))
	for _, idx := range indices {
		e.workspaces[idx] = &Workspace{
			Index:    idx,
			Label:    tokens[idx],
			Tree:     layout.New(),
			Floating: make(map[xproto.Window]bool),
		}
	}

	// Assign workspaces round-robin across existing monitors, first
	// workspace per monitor visible, matching DiscoverMonitors' ordering
	// when it runs afterward.
	if len(e.monitors) > 0 {
		e.assignWorkspacesToMonitors(indices)
	}
	return nil
}

func (e *Engine) assignWorkspacesToMonitors(indices []int) {
	monIDs := make([]int, 0, len(e.monitors))
	for id := range e.monitors {
		monIDs = append(monIDs, id)
	}
	sort.Ints(monIDs)
	if len(monIDs) == 0 {
		return
	}

	for _, m := range e.monitors {
		m.Workspaces = nil
	}
	for i, idx := range indices {
		monID := monIDs[i%len(monIDs)]
		mon := e.monitors[monID]
		mon.Workspaces = append(mon.Workspaces, idx)
		ws := e.workspaces[idx]
		ws.Monitor = monID
		ws.Visible = len(mon.Workspaces) == 1
	}
}

// DiscoverMonitors queries the display gateway for the physical monitor
// layout and (re)builds the monitor map, preserving workspace assignments
// where monitor count is unchanged.
func (e *Engine) DiscoverMonitors() error {
	rects, err := e.gw.Monitors()
	if err != nil {
		return fmt.Errorf("discover monitors: %w", err)
	}
	e.monitors = make(map[int]*Monitor, len(rects))
	for i, r := range rects {
		e.monitors[i] = &Monitor{ID: i, Rect: r}
	}

	indices := make([]int, 0, len(e.workspaces))
	for idx := range e.workspaces {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	e.assignWorkspacesToMonitors(indices)
	return nil
}

// UsableRect returns a monitor's rectangle minus reserved struts and the
// outer gap, the layout engine's input domain per spec.md §4.3.
func (e *Engine) UsableRect(monitorID int) geom.Rect {
	mon, ok := e.monitors[monitorID]
	if !ok {
		return geom.Rect{}
	}
	s := e.gw.Struts()
	r := geom.Rect{
		X:      mon.Rect.X + s.Left,
		Y:      mon.Rect.Y + s.Top,
		Width:  mon.Rect.Width - s.Left - s.Right,
		Height: mon.Rect.Height - s.Top - s.Bottom,
	}
	return r.Inset(e.appearance.Gap / 2)
}

// visibleWorkspace returns the currently visible workspace on a monitor, if
// any.
func (e *Engine) visibleWorkspace(monitorID int) (*Workspace, bool) {
	mon, ok := e.monitors[monitorID]
	if !ok {
		return nil, false
	}
	for _, idx := range mon.Workspaces {
		if ws := e.workspaces[idx]; ws.Visible {
			return ws, true
		}
	}
	return nil, false
}

// occupied returns the sorted indices of workspaces with at least one
// window (tiled or floating, excluding scratchpads, which are never
// counted toward occupancy per spec.md §4.5).
func (e *Engine) occupied() []int {
	var out []int
	for idx, ws := range e.workspaces {
		if ws.Tree.Len() > 0 || len(ws.Floating) > 0 {
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

func (e *Engine) activeWorkspaceIndex() int {
	for idx, ws := range e.workspaces {
		if ws.Visible {
			return idx
		}
	}
	return 0
}

func (e *Engine) emitWorkspace() {
	e.publisher.PublishWorkspace(e.activeWorkspaceIndex(), e.occupied())
}

// setFocus updates the focused window, sets X input focus, and emits a
// focus event on any change regardless of cause (Open Question (c)).
func (e *Engine) setFocus(id xproto.Window) error {
	if id == e.focused {
		return nil
	}
	e.focused = id
	if id == 0 {
		return nil
	}
	if err := e.gw.SetInputFocus(id); err != nil {
		return fmt.Errorf("set input focus: %w", err)
	}
	title := ""
	if w, ok := e.windows[id]; ok {
		title = w.Title
	}
	e.publisher.PublishFocus(id, title)
	return nil
}
