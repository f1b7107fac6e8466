package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Direction is one of the four cardinal directions the spec's `focus` and
// `move` commands take.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// ParseDirection maps the protocol token to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// Focus moves focus to the focused window's directional neighbor on the
// same workspace, per spec.md §4.5's Focus movement paragraph. A no-op
// (returns nil, no event) if there is no neighbor in that direction.
func (e *Engine) Focus(dir Direction) error {
	if e.focused == 0 {
		return nil
	}
	cur, ok := e.windows[e.focused]
	if !ok {
		return nil
	}
	neighbor, found := e.directionalNeighbor(cur, dir)
	if !found {
		return nil
	}
	return e.setFocus(neighbor.ID)
}

// directionalNeighbor picks the window on from's workspace whose frame
// center lies strictly in direction dir from from's center and minimizes
// Manhattan distance, breaking ties by the smallest perpendicular offset —
// spec.md §9 Open Question (d).
func (e *Engine) directionalNeighbor(from *Window, dir Direction) (*Window, bool) {
	fx, fy := frameCenter(from)

	var best *Window
	bestDist := 0
	bestPerp := 0

	for id, w := range e.windows {
		if id == from.ID || w.Workspace != from.Workspace || w.Scratch {
			continue
		}
		wx, wy := frameCenter(w)

		var inDirection bool
		var perp int
		switch dir {
		case DirLeft:
			inDirection = wx < fx
			perp = abs(wy - fy)
		case DirRight:
			inDirection = wx > fx
			perp = abs(wy - fy)
		case DirUp:
			inDirection = wy < fy
			perp = abs(wx - fx)
		case DirDown:
			inDirection = wy > fy
			perp = abs(wx - fx)
		}
		if !inDirection {
			continue
		}

		dist := abs(wx-fx) + abs(wy-fy)
		if best == nil || dist < bestDist || (dist == bestDist && perp < bestPerp) {
			best, bestDist, bestPerp = w, dist, perp
		}
	}

	return best, best != nil
}

func frameCenter(w *Window) (x, y int) {
	if w.Frame == nil {
		return 0, 0
	}
	return w.Frame.Geom.Center()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// windowByID is a small convenience that translates a raw X window id into
// a managed window.
func (e *Engine) windowByID(win xproto.Window) (*Window, bool) {
	w, ok := e.windows[win]
	return w, ok
}
