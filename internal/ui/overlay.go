//go:build ebiten

package ui

import (
	"image/color"

	"lifeboard/internal/fps"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	overlayWidth   = 220
	overlayHeight  = 48
	overlayMargin  = 6
	overlayCeiling = 60
)

// Overlay draws the frame rate summary and history over the board while
// the FPS display is enabled.
type Overlay struct {
	controls Controls
}

// NewOverlay constructs an overlay reading from controls.
func NewOverlay(controls Controls) *Overlay {
	return &Overlay{controls: controls}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || !o.controls.PanelState().ShowFPS {
		return
	}
	st, samples := o.controls.FrameStats()
	x := float32(overlayMargin)
	y := float32(overlayMargin)
	vector.DrawFilledRect(screen, x, y, overlayWidth, overlayHeight+20, color.RGBA{A: 180}, false)
	text.Draw(screen, fps.Summary(st), basicfont.Face7x13, overlayMargin+4, overlayMargin+14, color.RGBA{R: 230, G: 230, B: 240, A: 255})

	pts := sparkline(samples, overlayWidth-8, overlayHeight-4, overlayCeiling)
	lineColor := color.RGBA{R: 90, G: 200, B: 120, A: 255}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(screen, x+4+a[0], y+20+a[1], x+4+b[0], y+20+b[1], 1, lineColor, false)
	}
}
