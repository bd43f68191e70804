package core

import "sort"

// Size describes the dimensions of a board: W columns by H rows.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells on the board.
func (s Size) Cells() int { return s.W * s.H }

// Engine is the contract the render/control loop requires from a cellular
// automaton. Implementations own their packed cell buffer; callers must not
// retain the slice returned by RawBuffer across calls.
type Engine interface {
	Name() string
	Size() Size
	Tick()
	Clear()
	Randomize()
	ToggleCell(row, col int)
	StampGlider(row, col int)
	StampPulsar(row, col int)
	// RawBuffer returns a live view of the packed cell buffer. The slice
	// may be relocated by any other method call.
	RawBuffer() []byte
}

// Factory constructs an Engine using an optional configuration map.
type Factory func(cfg map[string]string) Engine

var engines = map[string]Factory{}

// Register adds an engine factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	engines[name] = f
}

// Engines exposes the registry of available engine factories.
func Engines() map[string]Factory {
	return engines
}

// EngineNames lists registered engines in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
