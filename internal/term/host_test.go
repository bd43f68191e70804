package term

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"lifeboard/internal/app"
	_ "lifeboard/internal/sims/life"
)

func newHost(t *testing.T) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(120, 40)
	t.Cleanup(screen.Fini)

	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 16, 16
	cfg.SeedPattern = false
	h, err := New(context.Background(), screen, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	h.draw()
	return h, screen
}

func background(s tcell.SimulationScreen, x, y int) tcell.Color {
	_, _, style, _ := s.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestClickTogglesTwoColumnCell(t *testing.T) {
	h, screen := newHost(t)
	alive := tcell.NewRGBColor(255, 255, 255)
	if background(screen, 4, 3) == alive {
		t.Fatalf("cell alive before click")
	}
	h.handle(context.Background(), tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone))
	if background(screen, 4, 3) != alive || background(screen, 5, 3) != alive {
		t.Fatalf("both columns of cell (3,2) should be alive")
	}
	if h.ctrl.Status().Population != 1 {
		t.Fatalf("population = %d", h.ctrl.Status().Population)
	}

	// Holding the button does not repeat the click.
	h.handle(context.Background(), tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone))
	if h.ctrl.Status().Population != 1 {
		t.Fatalf("drag repeated the toggle")
	}
}

func TestModifierClickStampsGlider(t *testing.T) {
	h, _ := newHost(t)
	h.handle(context.Background(), tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModCtrl|tcell.ModShift))
	if got := h.ctrl.Status().Population; got != 5 {
		t.Fatalf("ctrl+shift click population = %d, want 5", got)
	}
}

func TestClickOutsideBoardIgnored(t *testing.T) {
	h, _ := newHost(t)
	h.handle(context.Background(), tcell.NewEventMouse(100, 30, tcell.Button1, tcell.ModNone))
	if got := h.ctrl.Status().Population; got != 0 {
		t.Fatalf("population = %d", got)
	}
}

func TestRefreshTicksWhileRunning(t *testing.T) {
	h, _ := newHost(t)
	var now time.Duration
	h.now = func() time.Duration { return now }
	ctx := context.Background()

	h.handle(ctx, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !h.ctrl.Running() {
		t.Fatalf("space did not start the loop")
	}
	h.handle(ctx, tcell.NewEventInterrupt(nil))
	now = 40 * time.Millisecond
	h.handle(ctx, tcell.NewEventInterrupt(nil))
	if h.ctrl.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", h.ctrl.Generation())
	}

	h.handle(ctx, tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if h.ctrl.Running() || h.ctrl.Generation() != 2 {
		t.Fatalf("arrow right should pause and step")
	}
}

func TestQuit(t *testing.T) {
	h, _ := newHost(t)
	ctx := context.Background()
	if !h.handle(ctx, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatalf("q should quit")
	}
	if !h.handle(ctx, tcell.NewEventInterrupt(quitSignal{})) {
		t.Fatalf("quit signal should quit")
	}
	if h.handle(ctx, tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone)) {
		t.Fatalf("c should not quit")
	}
}

func TestStatusLine(t *testing.T) {
	h, screen := newHost(t)
	r, _, _, _ := screen.GetContent(0, 16)
	if r != 'p' {
		t.Fatalf("status line should start with paused, got %q", r)
	}
	if h.statusLine()[:6] != "paused" {
		t.Fatalf("status = %q", h.statusLine())
	}
}

func runHost(t *testing.T, h *Host, ctx context.Context) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()
	return done
}

func waitRun(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return")
	}
}

func TestRunStopsTickerOnQuitKey(t *testing.T) {
	h, screen := newHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := runHost(t, h, ctx)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	// Run only returns after the refresh goroutine has exited, while the
	// parent context is still live.
	waitRun(t, done)
	if ctx.Err() != nil {
		t.Fatalf("parent context cancelled early")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h, _ := newHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := runHost(t, h, ctx)
	cancel()
	waitRun(t, done)
}
