//go:build ebiten

package app

import (
	"context"
	"log/slog"
	"time"

	"lifeboard/internal/loop"
	"lifeboard/internal/render"
	"lifeboard/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type keyBinding struct {
	key ebiten.Key
	ui  ui.Key
}

var keyBindings = []keyBinding{
	{ebiten.KeySpace, ui.KeySpace},
	{ebiten.KeyArrowRight, ui.KeyArrowRight},
	{ebiten.KeyC, ui.KeyC},
	{ebiten.KeyS, ui.KeyS},
	{ebiten.KeyR, ui.KeyR},
	{ebiten.KeyG, ui.KeyG},
	{ebiten.KeyF, ui.KeyF},
	{ebiten.KeyX, ui.KeyX},
	{ebiten.KeyEqual, ui.KeyPlus},
	{ebiten.KeyKPAdd, ui.KeyPlus},
	{ebiten.KeyMinus, ui.KeyMinus},
	{ebiten.KeyKPSubtract, ui.KeyMinus},
}

// Game adapts a board session to the ebiten.Game interface. Each Update is
// one display refresh for the frame pump.
type Game struct {
	ctx     context.Context
	session *Session
	ctrl    *Controller
	pump    *loop.Pump
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale int
	start time.Time
	dirty bool
}

// New constructs a Game for the provided configuration.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (*Game, error) {
	g := &Game{ctx: ctx, pump: loop.NewPump(), scale: cfg.Scale, start: time.Now(), dirty: true}
	if g.scale <= 0 {
		g.scale = 1
	}
	session, err := NewSession(ctx, cfg, g.pump, logger, func() { g.dirty = true })
	if err != nil {
		return nil, err
	}
	g.session = session
	g.ctrl = session.Controller
	w, h := session.Renderer.Layout().Pixels()
	g.painter = render.NewGridPainter(w, h)
	g.hud = ui.NewHUD(g.ctrl, session.Controller.Engine().Name()+" controls", ui.PanelWidth)
	g.overlay = ui.NewOverlay(g.ctrl)
	return g, nil
}

// Close releases the session.
func (g *Game) Close() error { return g.session.Close() }

// WindowSize returns the initial window size in screen pixels.
func (g *Game) WindowSize() (int, int) {
	w, h := g.boardSize()
	return w + g.hud.Width(), h
}

func (g *Game) boardSize() (int, int) {
	w, h := g.painter.Size()
	return w * g.scale, h * g.scale
}

// Update handles input and advances the frame pump.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	// Modifiers are polled first so a letter pressed in the same frame
	// sees them; either side of the keyboard holds the modifier.
	g.ctrl.SyncModifiers(
		ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight),
		ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight),
	)
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.ctrl.KeyDown(g.ctx, b.ui)
		}
	}

	bw, bh := g.boardSize()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if x < bw && y < bh {
			g.ctrl.Click(float64(x), float64(y), ui.Rect{Width: float64(bw), Height: float64(bh)})
		}
	}
	g.hud.Update(bw)

	g.pump.Advance(time.Since(g.start))
	return nil
}

// Draw renders the board, the controls panel and the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.painter.Upload(g.session.Surface)
		g.dirty = false
	}
	g.painter.Blit(screen, 0, 0, g.scale)
	bw, bh := g.boardSize()
	g.hud.Draw(screen, bw, bh)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
