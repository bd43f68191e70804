// Package ui maps host input to board operations.
package ui

import (
	"math"

	"lifeboard/internal/render"
)

// Rect is the on-screen bounding box of the drawing surface in display
// coordinates.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Mapper converts pointer positions to board cells.
type Mapper struct {
	Layout render.Layout
}

// CellAt maps a pointer at (pageX, pageY) over a surface displayed at rect
// to a (row, col) pair. Results are clamped to the board so rounding at the
// edges never produces an out-of-range cell.
func (m Mapper) CellAt(pageX, pageY float64, rect Rect) (row, col int) {
	logicalW, logicalH := m.Layout.Pixels()
	scaleX, scaleY := 1.0, 1.0
	if rect.Width > 0 {
		scaleX = float64(logicalW) / rect.Width
	}
	if rect.Height > 0 {
		scaleY = float64(logicalH) / rect.Height
	}
	x := (pageX - rect.Left) * scaleX
	y := (pageY - rect.Top) * scaleY

	pitch := float64(m.Layout.Pitch())
	row = clamp(int(math.Floor(y/pitch)), m.Layout.H-1)
	col = clamp(int(math.Floor(x/pitch)), m.Layout.W-1)
	return row, col
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// Action is the board operation a click performs.
type Action int

const (
	ActionToggle Action = iota
	ActionGlider
	ActionPulsar
)

func (a Action) String() string {
	switch a {
	case ActionGlider:
		return "glider"
	case ActionPulsar:
		return "pulsar"
	default:
		return "toggle"
	}
}

// Modifiers tracks which modifier keys are held.
type Modifiers struct {
	Control bool
	Shift   bool
}

// Down records a key press. It reports whether the key was a modifier.
func (m *Modifiers) Down(k Key) bool { return m.set(k, true) }

// Up records a key release. It reports whether the key was a modifier.
func (m *Modifiers) Up(k Key) bool { return m.set(k, false) }

func (m *Modifiers) set(k Key, held bool) bool {
	switch k {
	case KeyControl:
		m.Control = held
	case KeyShift:
		m.Shift = held
	default:
		return false
	}
	return true
}

// Action selects the click operation. Control wins over shift.
func (m Modifiers) Action() Action {
	switch {
	case m.Control:
		return ActionGlider
	case m.Shift:
		return ActionPulsar
	default:
		return ActionToggle
	}
}
