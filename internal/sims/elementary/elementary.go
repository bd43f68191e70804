package elementary

import (
	"strconv"

	"lifeboard/internal/core"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Width   int
	Height  int
	Rule    uint8
	Seed    int64
	Density float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 64, Rule: 110, Seed: 42, Density: 0.5}
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
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
			c.Rule = uint8(parsed)
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

// Elementary implements a one-dimensional Wolfram code. Row 0 holds the
// current generation and older generations scroll downwards.
type Elementary struct {
	w, h    int
	rule    uint8
	density float64
	rng     *core.RNG
	cells   []byte
	row     []byte
}

// New creates an automaton with the given dimensions and rule.
func New(w, h int, rule uint8) *Elementary {
	c := DefaultConfig()
	c.Width, c.Height, c.Rule = w, h, rule
	return NewWithConfig(c)
}

// NewWithConfig creates an automaton from the provided options.
func NewWithConfig(c Config) *Elementary {
	if c.Width <= 0 {
		c.Width = 1
	}
	if c.Height <= 0 {
		c.Height = 1
	}
	return &Elementary{
		w:       c.Width,
		h:       c.Height,
		rule:    c.Rule,
		density: c.Density,
		rng:     core.NewRNG(c.Seed),
		cells:   make([]byte, core.BufferLen(c.Width, c.Height)),
		row:     make([]byte, c.Width),
	}
}

// Name returns the engine identifier.
func (e *Elementary) Name() string { return "elementary" }

// Size returns the grid dimensions.
func (e *Elementary) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// RawBuffer exposes the packed history.
func (e *Elementary) RawBuffer() []byte { return e.cells }

// Clear kills every cell.
func (e *Elementary) Clear() { clear(e.cells) }

// Randomize fills the whole history with the configured density.
func (e *Elementary) Randomize() {
	e.rng.FillBits(e.cells, e.w*e.h, e.density)
}

// ToggleCell flips the cell at (row, col).
func (e *Elementary) ToggleCell(row, col int) {
	row, col = core.Wrap(e.Size(), row, col)
	core.FlipBit(e.cells, core.Index(e.w, row, col))
}

// StampGlider seeds a single live cell in the current generation at col.
func (e *Elementary) StampGlider(row, col int) {
	_, col = core.Wrap(e.Size(), row, col)
	core.SetBit(e.cells, col, true)
}

// StampPulsar seeds three evenly spaced cells in the current generation.
func (e *Elementary) StampPulsar(row, col int) {
	for _, off := range []int{-4, 0, 4} {
		_, c := core.Wrap(e.Size(), row, col+off)
		core.SetBit(e.cells, c, true)
	}
}

// Tick computes the next generation and scrolls history downwards.
func (e *Elementary) Tick() {
	w := e.w
	for x := 0; x < w; x++ {
		e.row[x] = 0
		if core.Alive(e.cells, x) {
			e.row[x] = 1
		}
	}
	for n := w*e.h - 1; n >= w; n-- {
		core.SetBit(e.cells, n, core.Alive(e.cells, n-w))
	}
	for x := 0; x < w; x++ {
		left := e.row[(x-1+w)%w]
		center := e.row[x]
		right := e.row[(x+1)%w]
		idx := (left << 2) | (center << 1) | right
		core.SetBit(e.cells, x, (e.rule>>idx)&1 == 1)
	}
}

func init() {
	core.Register("elementary", func(cfg map[string]string) core.Engine {
		return NewWithConfig(FromMap(cfg))
	})
}
