package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"lifeboard/internal/loop"
	"lifeboard/internal/persist"
	"lifeboard/internal/render"
	"lifeboard/internal/sims/life"
	"lifeboard/internal/ui"
)

type fixture struct {
	ctrl   *Controller
	pump   *loop.Pump
	store  *persist.MemoryStore
	engine *life.Life
	paints int
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		pump:   loop.NewPump(),
		store:  persist.NewMemoryStore(),
		engine: life.New(64, 64),
	}
	rend := render.New(render.Layout{CellSize: 8, W: 64, H: 64}, render.DefaultPalette(), render.TwoPass)
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	opts.OnRepaint = func() { f.paints++ }
	f.ctrl = NewController(context.Background(), f.engine, rend, rend.NewSurface(), f.pump, persist.NewAdapter(f.store, persist.DefaultKey), opts)
	return f
}

func population(buf []byte) int {
	n := 0
	for _, b := range buf {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}
	return n
}

func TestStartsPaused(t *testing.T) {
	f := newFixture(t, Options{})
	if f.ctrl.Running() {
		t.Fatalf("expected paused controller")
	}
	if f.pump.Pending() != 0 {
		t.Fatalf("paused controller has %d pending callbacks", f.pump.Pending())
	}
	if f.ctrl.Rate() != DefaultRate {
		t.Fatalf("rate = %d, want %d", f.ctrl.Rate(), DefaultRate)
	}
	if f.paints != 1 {
		t.Fatalf("expected one initial paint, got %d", f.paints)
	}
}

func TestAutoStart(t *testing.T) {
	f := newFixture(t, Options{AutoStart: true})
	if !f.ctrl.Running() || f.pump.Pending() != 1 {
		t.Fatalf("running=%v pending=%d", f.ctrl.Running(), f.pump.Pending())
	}
}

func TestThrottleSkipsEarlyFrames(t *testing.T) {
	f := newFixture(t, Options{Rate: 30})
	f.ctrl.Play()

	f.pump.Advance(0)
	f.pump.Advance(10 * time.Millisecond)
	if got := f.ctrl.Generation(); got != 0 {
		t.Fatalf("ticked after 10ms: generation %d", got)
	}
	f.pump.Advance(40 * time.Millisecond)
	if got := f.ctrl.Generation(); got != 1 {
		t.Fatalf("expected one tick after 40ms, generation %d", got)
	}
	if !f.ctrl.Running() || f.pump.Pending() != 1 {
		t.Fatalf("loop stopped rescheduling")
	}
}

func TestPauseThenResume(t *testing.T) {
	f := newFixture(t, Options{Rate: 30})
	f.ctrl.Play()
	f.pump.Advance(0)
	f.pump.Advance(40 * time.Millisecond)

	f.ctrl.Pause()
	if f.pump.Pending() != 0 {
		t.Fatalf("pause left %d callbacks pending", f.pump.Pending())
	}
	f.pump.Advance(time.Second)
	if f.ctrl.Generation() != 1 {
		t.Fatalf("ticked while paused")
	}

	f.ctrl.Play()
	f.ctrl.Play()
	if f.pump.Pending() != 1 {
		t.Fatalf("double play scheduled %d callbacks", f.pump.Pending())
	}
	f.pump.Advance(2 * time.Second)
	if f.ctrl.Generation() != 1 {
		t.Fatalf("first frame after resume ticked")
	}
	f.pump.Advance(2*time.Second + 40*time.Millisecond)
	if f.ctrl.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", f.ctrl.Generation())
	}
}

func TestEditsForcePause(t *testing.T) {
	ops := map[string]func(*Controller){
		"step":      (*Controller).Step,
		"clear":     (*Controller).Clear,
		"randomize": (*Controller).Randomize,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, Options{AutoStart: true})
			op(f.ctrl)
			if f.ctrl.Running() || f.pump.Pending() != 0 {
				t.Fatalf("%s left the loop running", name)
			}
		})
	}
}

func TestStepAdvancesOneGeneration(t *testing.T) {
	f := newFixture(t, Options{})
	f.ctrl.Clear()
	f.engine.ToggleCell(10, 9)
	f.engine.ToggleCell(10, 10)
	f.engine.ToggleCell(10, 11)
	f.ctrl.Step()
	buf := f.engine.RawBuffer()
	if population(buf) != 3 || f.ctrl.Generation() != 1 {
		t.Fatalf("population %d generation %d", population(buf), f.ctrl.Generation())
	}
	if st := f.ctrl.Status(); st.Population != 3 {
		t.Fatalf("status population = %d", st.Population)
	}
}

func TestSaveClearLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	if f.ctrl.CanLoad() {
		t.Fatalf("load enabled before any save")
	}
	if err := f.ctrl.Load(ctx); !errors.Is(err, ErrNoSave) {
		t.Fatalf("load without save: %v", err)
	}

	f.ctrl.Randomize()
	want := bytes.Clone(f.engine.RawBuffer())
	if len(want) != 512 {
		t.Fatalf("buffer is %d bytes, want 512", len(want))
	}
	if err := f.ctrl.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !f.ctrl.CanLoad() {
		t.Fatalf("load not enabled after save")
	}

	f.ctrl.Clear()
	if population(f.engine.RawBuffer()) != 0 {
		t.Fatalf("clear left live cells")
	}
	if err := f.ctrl.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(f.engine.RawBuffer(), want) {
		t.Fatalf("loaded board differs from saved board")
	}
}

func TestLoadLengthMismatchKeepsBoard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{SeedPattern: true})
	if err := f.store.Set(ctx, persist.DefaultKey, "[1,2,3]"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	before := bytes.Clone(f.engine.RawBuffer())
	err := f.ctrl.Load(ctx)
	if !errors.Is(err, persist.ErrLengthMismatch) {
		t.Fatalf("expected length mismatch, got %v", err)
	}
	if !bytes.Equal(f.engine.RawBuffer(), before) {
		t.Fatalf("rejected load changed the board")
	}
}

func TestClickModifierPrecedence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	rect := ui.Rect{Width: 577, Height: 577}

	f.ctrl.Clear()
	f.ctrl.KeyDown(ctx, ui.KeyShift)
	f.ctrl.KeyDown(ctx, ui.KeyControl)
	action, row, col := f.ctrl.Click(95, 95, rect)
	if action != ui.ActionGlider || row != 10 || col != 10 {
		t.Fatalf("click = %v at (%d,%d)", action, row, col)
	}
	if got := population(f.engine.RawBuffer()); got != 5 {
		t.Fatalf("glider stamped %d cells", got)
	}

	f.ctrl.Clear()
	f.ctrl.KeyUp(ui.KeyControl)
	if action, _, _ := f.ctrl.Click(95, 95, rect); action != ui.ActionPulsar {
		t.Fatalf("shift click = %v", action)
	}

	f.ctrl.Clear()
	f.ctrl.KeyUp(ui.KeyShift)
	f.ctrl.Click(95, 95, rect)
	if got := population(f.engine.RawBuffer()); got != 1 {
		t.Fatalf("plain click left %d cells", got)
	}
	f.ctrl.Click(95, 95, rect)
	if got := population(f.engine.RawBuffer()); got != 0 {
		t.Fatalf("second click left %d cells", got)
	}
}

func TestClickKeepsRunState(t *testing.T) {
	f := newFixture(t, Options{AutoStart: true})
	f.ctrl.Click(4, 4, ui.Rect{Width: 577, Height: 577})
	if !f.ctrl.Running() {
		t.Fatalf("click paused the loop")
	}
}

func TestKeyBindings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{ShowGrid: true})
	if !f.ctrl.KeyDown(ctx, ui.KeySpace) {
		t.Fatalf("space should suppress the default action")
	}
	if !f.ctrl.Running() {
		t.Fatalf("space did not start the loop")
	}
	if f.ctrl.KeyDown(ctx, ui.KeyArrowRight) {
		t.Fatalf("arrow right should not be suppressed")
	}
	if f.ctrl.Running() || f.ctrl.Generation() != 1 {
		t.Fatalf("arrow right should pause and step once")
	}
	f.ctrl.KeyDown(ctx, ui.KeyPlus)
	if f.ctrl.Rate() != DefaultRate+1 {
		t.Fatalf("plus did not raise the rate")
	}
	f.ctrl.KeyDown(ctx, ui.KeyG)
	if f.ctrl.Status().ShowGrid {
		t.Fatalf("g did not hide the grid")
	}
}

func TestSetRateClamps(t *testing.T) {
	f := newFixture(t, Options{})
	if got := f.ctrl.SetRate(0); got != MinRate {
		t.Fatalf("SetRate(0) = %d", got)
	}
	if got := f.ctrl.SetRate(500); got != MaxRate {
		t.Fatalf("SetRate(500) = %d", got)
	}
	if f.ctrl.throttle.Interval() != time.Second/MaxRate {
		t.Fatalf("throttle interval = %v", f.ctrl.throttle.Interval())
	}
}

func TestFrameRateRecordedWhileRunning(t *testing.T) {
	f := newFixture(t, Options{})
	f.ctrl.Play()
	for i := 0; i < 5; i++ {
		f.pump.Advance(time.Duration(i) * 20 * time.Millisecond)
	}
	st, samples := f.ctrl.FrameStats()
	if st.Count != 4 || len(samples) != 4 {
		t.Fatalf("stats %+v samples %d", st, len(samples))
	}
	if st.Latest != 50 {
		t.Fatalf("latest fps = %v, want 50", st.Latest)
	}
}

func TestSeedPattern(t *testing.T) {
	f := newFixture(t, Options{SeedPattern: true})
	if got := population(f.engine.RawBuffer()); got != 61 {
		t.Fatalf("glider and pulsar should give 61 cells, got %d", got)
	}

	small := life.New(16, 16)
	small.Clear()
	seedPattern(small)
	if got := population(small.RawBuffer()); got != 5 {
		t.Fatalf("small board should only get the glider, got %d", got)
	}
}

func TestLoadEmptySlotKeepsRunning(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{AutoStart: true})
	f.ctrl.KeyDown(ctx, ui.KeyR)
	if !f.ctrl.Running() || f.pump.Pending() != 1 {
		t.Fatalf("load key with an empty slot changed run state: running=%v pending=%d", f.ctrl.Running(), f.pump.Pending())
	}
	if err := f.ctrl.Load(ctx); !errors.Is(err, ErrNoSave) {
		t.Fatalf("expected ErrNoSave, got %v", err)
	}
	if !f.ctrl.Running() {
		t.Fatalf("Load with an empty slot paused the board")
	}
}

func TestLoadAfterSavePauses(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Options{})
	if err := f.ctrl.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	f.ctrl.Play()
	if err := f.ctrl.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.ctrl.Running() {
		t.Fatalf("load should pause")
	}
}

func TestSyncModifiersFollowsLevels(t *testing.T) {
	f := newFixture(t, Options{})
	rect := ui.Rect{Width: 577, Height: 577}

	// Left control released while right control is still held.
	f.ctrl.SyncModifiers(true, false)
	f.ctrl.SyncModifiers(true, false)
	if action, _, _ := f.ctrl.Click(95, 95, rect); action != ui.ActionGlider {
		t.Fatalf("control still held, click = %v", action)
	}
	f.ctrl.SyncModifiers(false, true)
	if action, _, _ := f.ctrl.Click(95, 95, rect); action != ui.ActionPulsar {
		t.Fatalf("shift held, click = %v", action)
	}
	f.ctrl.SyncModifiers(false, false)
	if action, _, _ := f.ctrl.Click(95, 95, rect); action != ui.ActionToggle {
		t.Fatalf("no modifiers, click = %v", action)
	}
}
