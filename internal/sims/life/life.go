package life

import (
	"strconv"

	"lifeboard/internal/core"
)

// Config holds parameters for the Life engine.
type Config struct {
	Width   int
	Height  int
	Seed    int64
	Density float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 64, Seed: 42, Density: 0.5}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	return c
}

var gliderOffsets = [][2]int{
	{-1, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1},
}

var pulsarOffsets = [][2]int{
	{-7, 3}, {-7, -3}, {-6, -3}, {-6, 3},
	{-5, -3}, {-5, -2}, {-5, 2}, {-5, 3},
	{-3, -7}, {-3, -6}, {-3, -5}, {-3, -2}, {-3, -1}, {-3, 1}, {-3, 2}, {-3, 5}, {-3, 6}, {-3, 7},
	{-2, -5}, {-2, -3}, {-2, -1}, {-2, 1}, {-2, 3}, {-2, 5},
	{-1, -3}, {-1, -2}, {-1, 2}, {-1, 3},
	{1, -3}, {1, -2}, {1, 2}, {1, 3},
	{2, -5}, {2, -3}, {2, -1}, {2, 1}, {2, 3}, {2, 5},
	{3, -7}, {3, -6}, {3, -5}, {3, -2}, {3, -1}, {3, 1}, {3, 2}, {3, 5}, {3, 6}, {3, 7},
	{5, -3}, {5, -2}, {5, 2}, {5, 3},
	{6, -3}, {6, 3},
	{7, -3}, {7, 3},
}

// Life implements Conway's Game of Life on a packed bit buffer with toroidal
// wrapping.
type Life struct {
	w, h    int
	density float64
	rng     *core.RNG
	cur     []byte
	nxt     []byte
}

// New returns a Life engine with the provided dimensions.
func New(w, h int) *Life {
	c := DefaultConfig()
	c.Width, c.Height = w, h
	return NewWithConfig(c)
}

// NewWithConfig returns a Life engine configured from the provided options.
func NewWithConfig(c Config) *Life {
	if c.Width <= 0 {
		c.Width = 1
	}
	if c.Height <= 0 {
		c.Height = 1
	}
	n := core.BufferLen(c.Width, c.Height)
	return &Life{
		w:       c.Width,
		h:       c.Height,
		density: c.Density,
		rng:     core.NewRNG(c.Seed),
		cur:     make([]byte, n),
		nxt:     make([]byte, n),
	}
}

// Name returns the engine identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.w, H: l.h} }

// RawBuffer exposes the current packed generation.
func (l *Life) RawBuffer() []byte { return l.cur }

// Clear kills every cell.
func (l *Life) Clear() { clear(l.cur) }

// Randomize sets each cell alive with the configured density.
func (l *Life) Randomize() {
	l.rng.FillBits(l.cur, l.w*l.h, l.density)
}

// ToggleCell flips the cell at (row, col).
func (l *Life) ToggleCell(row, col int) {
	row, col = core.Wrap(l.Size(), row, col)
	core.FlipBit(l.cur, core.Index(l.w, row, col))
}

// StampGlider sets a glider around (row, col), wrapping at the edges.
func (l *Life) StampGlider(row, col int) { l.stamp(row, col, gliderOffsets) }

// StampPulsar sets a pulsar centred on (row, col), wrapping at the edges.
func (l *Life) StampPulsar(row, col int) { l.stamp(row, col, pulsarOffsets) }

func (l *Life) stamp(row, col int, offsets [][2]int) {
	size := l.Size()
	for _, off := range offsets {
		r, c := core.Wrap(size, row+off[0], col+off[1])
		core.SetBit(l.cur, core.Index(l.w, r, c), true)
	}
}

// Tick advances the simulation by one generation.
func (l *Life) Tick() {
	w, h := l.w, l.h
	clear(l.nxt)
	for row := 0; row < h; row++ {
		north := (row - 1 + h) % h
		south := (row + 1) % h
		for col := 0; col < w; col++ {
			west := (col - 1 + w) % w
			east := (col + 1) % w
			neighbors := l.bit(north, west) + l.bit(north, col) + l.bit(north, east) +
				l.bit(row, west) + l.bit(row, east) +
				l.bit(south, west) + l.bit(south, col) + l.bit(south, east)
			alive := l.bit(row, col) == 1
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				core.SetBit(l.nxt, row*w+col, true)
			}
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
}

func (l *Life) bit(row, col int) int {
	n := row*l.w + col
	return int(l.cur[n>>3]>>(uint(n)&7)) & 1
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Engine {
		return NewWithConfig(FromMap(cfg))
	})
}
