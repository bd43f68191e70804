package elementary

import (
	"testing"

	"lifeboard/internal/core"
)

func TestRule90Scrolls(t *testing.T) {
	e := New(7, 3, 90)
	e.StampGlider(0, 3)
	e.Tick()

	buf := e.RawBuffer()
	for x := 0; x < 7; x++ {
		want := x == 2 || x == 4
		if got := core.Alive(buf, x); got != want {
			t.Fatalf("row 0 col %d alive=%v, expected %v", x, got, want)
		}
		want = x == 3
		if got := core.Alive(buf, 7+x); got != want {
			t.Fatalf("row 1 col %d alive=%v, expected %v", x, got, want)
		}
	}
}

func TestToggleAndClear(t *testing.T) {
	e := New(4, 4, 110)
	e.ToggleCell(2, 1)
	if !core.Alive(e.RawBuffer(), 9) {
		t.Fatal("ToggleCell did not set (2,1)")
	}
	e.Clear()
	if core.Alive(e.RawBuffer(), 9) {
		t.Fatal("Clear left (2,1) alive")
	}
}
