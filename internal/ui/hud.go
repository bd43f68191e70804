//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor        = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders the controls panel to the right of the board.
type HUD struct {
	controls Controls
	title    string
	width    int
	layout   panelLayout
	panel    *ebiten.Image

	panelOffsetX int
}

// NewHUD constructs a HUD for the provided controls and panel width.
func NewHUD(controls Controls, title string, width int) *HUD {
	if width < 0 {
		width = 0
	}
	if title == "" {
		title = "Controls"
	}
	return &HUD{controls: controls, title: title, width: width, layout: newPanelLayout(width)}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update handles clicks on the panel.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.panelOffsetX = panelOffsetX
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	if cmd := h.layout.hit(mx-h.panelOffsetX, my, h.controls.PanelState()); cmd != CommandNone {
		h.controls.Exec(cmd)
	}
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBackground)
	h.drawControls(h.controls.PanelState())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControls(st PanelState) {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)

	labelY := h.layout.rateTop + labelBaseline
	text.Draw(h.panel, "Rate", face, panelPadding, labelY, labelColor)
	value := fmt.Sprintf("%d/s", st.Rate)
	valueX := h.layout.minus.Min.X - buttonGap - text.BoundString(face, value).Dx()
	text.Draw(h.panel, value, face, valueX, labelY, labelColor)
	h.drawButton(h.layout.minus, "-", true)
	h.drawButton(h.layout.plus, "+", true)

	for _, b := range h.layout.buttons {
		h.drawButton(b.rect, buttonLabel(b, st), enabled(b.cmd, st))
	}

	y := h.layout.statusTop + labelBaseline
	state := "paused"
	if st.Running {
		state = "running"
	}
	for _, line := range []string{
		state,
		fmt.Sprintf("gen %d", st.Generation),
		fmt.Sprintf("alive %d", st.Population),
	} {
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		y += 18
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
