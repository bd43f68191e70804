// Package term hosts a board in a terminal using tcell. Each cell is drawn
// two columns wide so the board keeps a square aspect.
package term

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"lifeboard/internal/app"
	"lifeboard/internal/core"
	"lifeboard/internal/fps"
	"lifeboard/internal/loop"
	"lifeboard/internal/ui"
)

// RefreshInterval is how often the ticker posts a refresh event.
const RefreshInterval = time.Second / 60

type quitSignal struct{}

// Host drives one board session from the terminal event loop. All
// controller calls happen on the goroutine running Run.
type Host struct {
	screen  tcell.Screen
	session *app.Session
	ctrl    *app.Controller
	pump    *loop.Pump
	snap    *core.Snapshot
	log     *slog.Logger

	alive  tcell.Style
	dead   tcell.Style
	status tcell.Style

	buttons tcell.ButtonMask
	now     func() time.Duration
}

// New builds a session from cfg and binds it to an initialised screen.
func New(ctx context.Context, screen tcell.Screen, cfg *app.Config, logger *slog.Logger) (*Host, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pump := loop.NewPump()
	session, err := app.NewSession(ctx, cfg, pump, logger, nil)
	if err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	return &Host{
		screen:  screen,
		session: session,
		ctrl:    session.Controller,
		pump:    pump,
		snap:    core.NewSnapshot(session.Controller.Engine().Size()),
		log:     logger.With("component", "term"),
		alive:   tcell.StyleDefault.Background(rgb(palette.Alive)),
		dead:    tcell.StyleDefault.Background(rgb(palette.Dead)),
		status:  tcell.StyleDefault.Foreground(tcell.ColorSilver),
		now:     func() time.Duration { return time.Since(start) },
	}, nil
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Close releases the session store.
func (h *Host) Close() error { return h.session.Close() }

// Run processes terminal events until the user quits or ctx is cancelled.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse()
	h.screen.HideCursor()
	h.draw()

	tickCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	defer wg.Wait()
	defer cancel()
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-tickCtx.Done():
				if ctx.Err() != nil {
					_ = h.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
				}
				return
			case <-ticker.C:
				if err := h.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
					h.log.Debug("refresh dropped", "err", err)
				}
			}
		}
	}()

	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if h.handle(ctx, ev) {
			h.log.Info("terminal host stopped", "generation", h.ctrl.Generation())
			return nil
		}
	}
}

// handle applies one event and redraws. It reports true when the host
// should exit.
func (h *Host) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitSignal); ok {
			return true
		}
		h.pump.Advance(h.now())
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return true
		}
		h.key(ctx, ev)
	case *tcell.EventMouse:
		h.mouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
	}
	h.draw()
	return false
}

func (h *Host) key(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRight:
		h.ctrl.KeyDown(ctx, ui.KeyArrowRight)
	case tcell.KeyRune:
		if k := ui.KeyForRune(ev.Rune()); k != ui.KeyUnknown {
			h.ctrl.KeyDown(ctx, k)
		}
	}
}

// mouse acts on the press edge of the primary button only.
func (h *Host) mouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0
	h.buttons = buttons
	if !pressed {
		return
	}
	x, y := ev.Position()
	size := h.ctrl.Engine().Size()
	row, col := y, x/2
	if row < 0 || row >= size.H || col < 0 || col >= size.W {
		return
	}
	mods := ui.Modifiers{
		Control: ev.Modifiers()&tcell.ModCtrl != 0,
		Shift:   ev.Modifiers()&tcell.ModShift != 0,
	}
	h.ctrl.Apply(row, col, mods.Action())
}

func (h *Host) draw() {
	if err := h.snap.Decode(h.ctrl.Engine().RawBuffer()); err != nil {
		h.log.Error("decode board", "err", err)
		return
	}
	h.screen.Clear()
	for row := 0; row < h.snap.H; row++ {
		for col := 0; col < h.snap.W; col++ {
			style := h.dead
			if h.snap.At(row, col) {
				style = h.alive
			}
			h.screen.SetContent(col*2, row, ' ', nil, style)
			h.screen.SetContent(col*2+1, row, ' ', nil, style)
		}
	}
	y := h.snap.H
	h.drawText(0, y, h.statusLine())
	if h.ctrl.ShowFPS() {
		st, samples := h.ctrl.FrameStats()
		for i, line := range strings.Split(fps.Graph(samples, st, 40, 6), "\n") {
			h.drawText(0, y+1+i, line)
		}
	}
	h.screen.Show()
}

func (h *Host) statusLine() string {
	st := h.ctrl.Status()
	state := "paused"
	if st.Running {
		state = "running"
	}
	return fmt.Sprintf("%s  rate %d/s  gen %d  alive %d  |  %s", state, st.Rate, st.Generation, st.Population, fps.Summary(st.FPS))
}

func (h *Host) drawText(x, y int, s string) {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, h.status)
		x++
	}
}
