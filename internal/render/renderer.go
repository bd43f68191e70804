package render

import (
	"fmt"
	"image"

	"lifeboard/internal/core"
)

// Policy selects how cell fills are ordered.
type Policy int

const (
	// TwoPass fills all live cells, then all dead cells, switching fill
	// style only twice per repaint.
	TwoPass Policy = iota
	// SinglePass sets the fill style for every cell in scan order.
	SinglePass
)

func (p Policy) String() string {
	switch p {
	case TwoPass:
		return "two-pass"
	case SinglePass:
		return "single-pass"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a config string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "two-pass":
		return TwoPass, nil
	case "single-pass":
		return SinglePass, nil
	default:
		return TwoPass, fmt.Errorf("render: unknown policy %q", s)
	}
}

// Layout maps board cells to surface pixels. Every cell is CellSize pixels
// square with a one pixel grid line on each side.
type Layout struct {
	CellSize int
	W, H     int
}

// Pitch returns the distance between the origins of adjacent cells.
func (l Layout) Pitch() int { return l.CellSize + 1 }

// Pixels returns the surface size needed for the board.
func (l Layout) Pixels() (int, int) {
	return l.Pitch()*l.W + 1, l.Pitch()*l.H + 1
}

// CellRect returns the interior rectangle of the cell at (row, col).
func (l Layout) CellRect(row, col int) image.Rectangle {
	x := col*l.Pitch() + 1
	y := row*l.Pitch() + 1
	return image.Rect(x, y, x+l.CellSize, y+l.CellSize)
}

// Renderer paints packed cell buffers onto a Surface.
type Renderer struct {
	layout  Layout
	palette Palette
	policy  Policy
	snap    *core.Snapshot
}

// New constructs a Renderer for the provided layout.
func New(layout Layout, palette Palette, policy Policy) *Renderer {
	return &Renderer{
		layout:  layout,
		palette: palette,
		policy:  policy,
		snap:    core.NewSnapshot(core.Size{W: layout.W, H: layout.H}),
	}
}

// Layout returns the renderer's cell geometry.
func (r *Renderer) Layout() Layout { return r.layout }

// Policy returns the active drawing policy.
func (r *Renderer) Policy() Policy { return r.policy }

// SetPolicy switches the drawing policy for subsequent repaints.
func (r *Renderer) SetPolicy(p Policy) { r.policy = p }

// NewSurface allocates an ImageSurface sized for the layout.
func (r *Renderer) NewSurface() *ImageSurface {
	w, h := r.layout.Pixels()
	return NewImageSurface(w, h)
}

// Snapshot returns the state decoded by the last DrawCells call.
func (r *Renderer) Snapshot() *core.Snapshot { return r.snap }

// DrawGrid strokes every vertical and horizontal cell boundary.
func (r *Renderer) DrawGrid(s Surface) {
	w, h := r.layout.Pixels()
	pitch := r.layout.Pitch()
	s.SetFillColor(r.palette.Grid)
	for i := 0; i <= r.layout.W; i++ {
		s.FillRect(i*pitch, 0, 1, h)
	}
	for j := 0; j <= r.layout.H; j++ {
		s.FillRect(0, j*pitch, w, 1)
	}
}

// DrawCells decodes buf and fills every cell interior.
func (r *Renderer) DrawCells(s Surface, buf []byte) error {
	if err := r.snap.Decode(buf); err != nil {
		return err
	}
	switch r.policy {
	case SinglePass:
		r.drawSinglePass(s)
	default:
		r.drawPass(s, true)
		r.drawPass(s, false)
	}
	return nil
}

func (r *Renderer) drawPass(s Surface, alive bool) {
	fill := r.palette.Dead
	if alive {
		fill = r.palette.Alive
	}
	s.SetFillColor(fill)
	size := r.layout.CellSize
	for row := 0; row < r.layout.H; row++ {
		for col := 0; col < r.layout.W; col++ {
			if r.snap.At(row, col) != alive {
				continue
			}
			rect := r.layout.CellRect(row, col)
			s.FillRect(rect.Min.X, rect.Min.Y, size, size)
		}
	}
}

func (r *Renderer) drawSinglePass(s Surface) {
	size := r.layout.CellSize
	for row := 0; row < r.layout.H; row++ {
		for col := 0; col < r.layout.W; col++ {
			if r.snap.At(row, col) {
				s.SetFillColor(r.palette.Alive)
			} else {
				s.SetFillColor(r.palette.Dead)
			}
			rect := r.layout.CellRect(row, col)
			s.FillRect(rect.Min.X, rect.Min.Y, size, size)
		}
	}
}

// Repaint redraws the cells and, when showGrid is set, the grid lines over them.
func (r *Renderer) Repaint(s Surface, buf []byte, showGrid bool) error {
	if err := r.DrawCells(s, buf); err != nil {
		return err
	}
	if showGrid {
		r.DrawGrid(s)
	}
	return nil
}

// HideGrid clears the whole surface and redraws only the cells.
func (r *Renderer) HideGrid(s Surface, buf []byte) error {
	s.Clear()
	return r.DrawCells(s, buf)
}
