// Package app wires an engine, the renderer and the persistence adapter into
// a single controller that every host drives.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lifeboard/internal/core"
	"lifeboard/internal/fps"
	"lifeboard/internal/loop"
	"lifeboard/internal/persist"
	"lifeboard/internal/render"
	"lifeboard/internal/ui"
)

// Tick rate bounds in ticks per second.
const (
	MinRate     = 1
	MaxRate     = 60
	DefaultRate = 30
)

// ErrNoSave is returned by Load when the save slot is empty.
var ErrNoSave = errors.New("app: no saved state")

// Options configures a Controller.
type Options struct {
	Rate        int
	AutoStart   bool
	ShowGrid    bool
	ShowFPS     bool
	SeedPattern bool
	Logger      *slog.Logger
	// OnRepaint runs after every change to the surface.
	OnRepaint func()
}

// Status is a point-in-time view of the controller.
type Status struct {
	Engine     string    `json:"engine"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Running    bool      `json:"running"`
	Rate       int       `json:"rate"`
	Generation int       `json:"generation"`
	Population int       `json:"population"`
	ShowGrid   bool      `json:"show_grid"`
	ShowFPS    bool      `json:"show_fps"`
	CanLoad    bool      `json:"can_load"`
	FPS        fps.Stats `json:"fps"`
}

// Controller owns the run state of one board. It is not safe for concurrent
// use; hosts call it from the goroutine that advances the frame pump.
type Controller struct {
	engine   core.Engine
	renderer *render.Renderer
	surface  render.Surface
	saves    *persist.Adapter
	log      *slog.Logger

	task     *loop.Task
	throttle *core.Throttle
	tracker  *fps.Tracker
	mapper   ui.Mapper
	mods     ui.Modifiers

	rate       int
	generation int
	showGrid   bool
	showFPS    bool
	canLoad    bool
	onRepaint  func()
}

// NewController paints the initial board and returns a paused controller,
// or a running one when opts.AutoStart is set. A nil saves uses an
// in-memory slot.
func NewController(ctx context.Context, eng core.Engine, rend *render.Renderer, surface render.Surface, req loop.Requester, saves *persist.Adapter, opts Options) *Controller {
	if saves == nil {
		saves = persist.NewAdapter(persist.NewMemoryStore(), persist.DefaultKey)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rate := clampRate(opts.Rate)
	c := &Controller{
		engine:    eng,
		renderer:  rend,
		surface:   surface,
		saves:     saves,
		log:       logger.With("engine", eng.Name()),
		throttle:  core.NewThrottle(rate),
		tracker:   fps.NewTracker(),
		mapper:    ui.Mapper{Layout: rend.Layout()},
		rate:      rate,
		showGrid:  opts.ShowGrid,
		showFPS:   opts.ShowFPS,
		onRepaint: opts.OnRepaint,
	}
	c.task = loop.NewTask(req, c.frame)

	ok, err := saves.Available(ctx)
	if err != nil {
		c.log.Warn("save slot unavailable", "key", saves.Key(), "err", err)
	}
	c.canLoad = ok

	if opts.SeedPattern {
		seedPattern(eng)
	}
	c.Repaint()
	if opts.AutoStart {
		c.Play()
	}
	return c
}

// seedPattern stamps a glider at (5,5) and a pulsar at (40,40) where they
// fit without wrapping.
func seedPattern(eng core.Engine) {
	size := eng.Size()
	if size.W >= 7 && size.H >= 7 {
		eng.StampGlider(5, 5)
	}
	if size.W >= 48 && size.H >= 48 {
		eng.StampPulsar(40, 40)
	}
}

func clampRate(rate int) int {
	switch {
	case rate <= 0:
		return DefaultRate
	case rate > MaxRate:
		return MaxRate
	}
	return rate
}

func (c *Controller) frame(now time.Duration) {
	c.tracker.Record(now)
	if !c.throttle.Due(now) {
		return
	}
	c.engine.Tick()
	c.generation++
	c.Repaint()
}

// Engine returns the driven engine.
func (c *Controller) Engine() core.Engine { return c.engine }

// Layout returns the board layout in pixels.
func (c *Controller) Layout() render.Layout { return c.renderer.Layout() }

// Running reports whether the tick loop is scheduled.
func (c *Controller) Running() bool { return c.task.Active() }

// Play starts the tick loop. The first display callback only sets the
// throttle baseline.
func (c *Controller) Play() {
	if c.Running() {
		return
	}
	c.throttle.Reset()
	c.tracker.Restart()
	c.task.Start()
	c.log.Debug("play", "rate", c.rate)
}

// Pause cancels the pending display callback.
func (c *Controller) Pause() {
	if !c.Running() {
		return
	}
	c.task.Cancel()
	c.log.Debug("pause", "generation", c.generation)
}

// TogglePlay switches between running and paused.
func (c *Controller) TogglePlay() {
	if c.Running() {
		c.Pause()
		return
	}
	c.Play()
}

// Step pauses and advances exactly one generation.
func (c *Controller) Step() {
	c.Pause()
	c.engine.Tick()
	c.generation++
	c.Repaint()
}

// Clear pauses and kills every cell.
func (c *Controller) Clear() {
	c.Pause()
	c.engine.Clear()
	c.generation = 0
	c.Repaint()
}

// Randomize pauses and refills the board.
func (c *Controller) Randomize() {
	c.Pause()
	c.engine.Randomize()
	c.generation = 0
	c.Repaint()
}

// ToggleGrid shows or hides the grid lines without touching run state.
func (c *Controller) ToggleGrid() {
	c.showGrid = !c.showGrid
	if c.showGrid {
		c.renderer.DrawGrid(c.surface)
		c.repainted()
		return
	}
	if err := c.renderer.HideGrid(c.surface, c.engine.RawBuffer()); err != nil {
		c.log.Error("hide grid", "err", err)
	}
	c.repainted()
}

// ToggleFPS shows or hides the frame rate overlay.
func (c *Controller) ToggleFPS() { c.showFPS = !c.showFPS }

// ShowFPS reports whether the frame rate overlay is visible.
func (c *Controller) ShowFPS() bool { return c.showFPS }

// SetRate clamps rate to [MinRate, MaxRate] and applies it immediately.
func (c *Controller) SetRate(rate int) int {
	if rate < MinRate {
		rate = MinRate
	}
	if rate > MaxRate {
		rate = MaxRate
	}
	c.rate = rate
	c.throttle.SetRate(rate)
	return rate
}

// Rate returns the tick rate in ticks per second.
func (c *Controller) Rate() int { return c.rate }

// Generation returns the number of ticks since the last clear or randomize.
func (c *Controller) Generation() int { return c.generation }

// CanLoad reports whether a saved state exists.
func (c *Controller) CanLoad() bool { return c.canLoad }

// Click applies the action selected by the held modifiers to the cell under
// the pointer at (pageX, pageY) over a surface displayed at rect.
func (c *Controller) Click(pageX, pageY float64, rect ui.Rect) (ui.Action, int, int) {
	row, col := c.CellAt(pageX, pageY, rect)
	action := c.mods.Action()
	c.Apply(row, col, action)
	return action, row, col
}

// CellAt maps a pointer position to a board cell.
func (c *Controller) CellAt(pageX, pageY float64, rect ui.Rect) (int, int) {
	return c.mapper.CellAt(pageX, pageY, rect)
}

// Apply performs action at (row, col) and repaints. Run state is unchanged.
func (c *Controller) Apply(row, col int, action ui.Action) {
	switch action {
	case ui.ActionGlider:
		c.engine.StampGlider(row, col)
	case ui.ActionPulsar:
		c.engine.StampPulsar(row, col)
	default:
		c.engine.ToggleCell(row, col)
	}
	c.Repaint()
}

// KeyDown records modifier state or runs the bound command. It reports
// whether the host should suppress its default handling of the key.
func (c *Controller) KeyDown(ctx context.Context, k ui.Key) bool {
	if c.mods.Down(k) {
		return false
	}
	cmd, suppress := ui.Binding(k, c.mods)
	_ = c.Do(ctx, cmd)
	return suppress
}

// KeyUp releases a held modifier.
func (c *Controller) KeyUp(k ui.Key) { c.mods.Up(k) }

// SyncModifiers sets the modifier state from hosts that poll key levels
// rather than report edges per key.
func (c *Controller) SyncModifiers(control, shift bool) {
	c.mods.Control = control
	c.mods.Shift = shift
}

// Modifiers returns the held modifier state.
func (c *Controller) Modifiers() ui.Modifiers { return c.mods }

// Do runs a bound command.
func (c *Controller) Do(ctx context.Context, cmd ui.Command) error {
	switch cmd {
	case ui.CommandTogglePlay:
		c.TogglePlay()
	case ui.CommandStep:
		c.Step()
	case ui.CommandClear:
		c.Clear()
	case ui.CommandRandomize:
		c.Randomize()
	case ui.CommandToggleGrid:
		c.ToggleGrid()
	case ui.CommandToggleFPS:
		c.ToggleFPS()
	case ui.CommandFaster:
		c.SetRate(c.rate + 1)
	case ui.CommandSlower:
		c.SetRate(c.rate - 1)
	case ui.CommandSave:
		return c.Save(ctx)
	case ui.CommandLoad:
		return c.Load(ctx)
	}
	return nil
}

// Exec runs cmd with a background context.
func (c *Controller) Exec(cmd ui.Command) { _ = c.Do(context.Background(), cmd) }

// Save pauses and writes the packed buffer to the save slot.
func (c *Controller) Save(ctx context.Context) error {
	c.Pause()
	if err := c.saves.Save(ctx, c.engine.RawBuffer()); err != nil {
		c.log.Error("save failed", "key", c.saves.Key(), "err", err)
		return err
	}
	c.canLoad = true
	c.log.Info("saved", "key", c.saves.Key(), "bytes", len(c.engine.RawBuffer()))
	return nil
}

// Load pauses and overwrites the board with the saved buffer. An empty slot
// returns ErrNoSave and leaves the run state alone. A malformed or mismatched
// save leaves the board unchanged.
func (c *Controller) Load(ctx context.Context) error {
	ok, err := c.saves.Available(ctx)
	if err != nil {
		c.log.Warn("save slot unavailable", "key", c.saves.Key(), "err", err)
		return err
	}
	if !ok {
		c.canLoad = false
		return ErrNoSave
	}
	c.Pause()
	ok, err = c.saves.Load(ctx, c.engine.RawBuffer())
	if err != nil {
		c.log.Warn("load rejected", "key", c.saves.Key(), "err", err)
		return err
	}
	if !ok {
		c.canLoad = false
		return ErrNoSave
	}
	c.Repaint()
	c.log.Info("loaded", "key", c.saves.Key())
	return nil
}

// Repaint redraws every cell, and the grid when it is shown.
func (c *Controller) Repaint() {
	if err := c.renderer.Repaint(c.surface, c.engine.RawBuffer(), c.showGrid); err != nil {
		c.log.Error("repaint", "err", err)
	}
	c.repainted()
}

func (c *Controller) repainted() {
	if c.onRepaint != nil {
		c.onRepaint()
	}
}

// Stats returns the frame rate window.
func (c *Controller) Stats() fps.Stats { return c.tracker.Stats() }

// FrameStats returns the frame rate summary and samples, oldest first.
func (c *Controller) FrameStats() (fps.Stats, []float64) {
	return c.tracker.Stats(), c.tracker.Samples()
}

// PanelState reports the state shown by the controls panel.
func (c *Controller) PanelState() ui.PanelState {
	return ui.PanelState{
		Running:    c.Running(),
		Rate:       c.rate,
		Generation: c.generation,
		Population: c.renderer.Snapshot().Population(),
		ShowGrid:   c.showGrid,
		ShowFPS:    c.showFPS,
		CanLoad:    c.canLoad,
	}
}

// Status returns a snapshot of the controller for hosts.
func (c *Controller) Status() Status {
	size := c.engine.Size()
	return Status{
		Engine:     c.engine.Name(),
		Width:      size.W,
		Height:     size.H,
		Running:    c.Running(),
		Rate:       c.rate,
		Generation: c.generation,
		Population: c.renderer.Snapshot().Population(),
		ShowGrid:   c.showGrid,
		ShowFPS:    c.showFPS,
		CanLoad:    c.canLoad,
		FPS:        c.tracker.Stats(),
	}
}
