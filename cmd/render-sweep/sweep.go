package main

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"lifeboard/internal/core"
	"lifeboard/internal/render"
)

type scenario struct {
	engine   string
	size     int
	cellSize int
	density  float64
	policy   render.Policy
}

func (s scenario) String() string {
	return fmt.Sprintf("%s %dx%d cell=%d density=%.2f %s", s.engine, s.size, s.size, s.cellSize, s.density, s.policy)
}

type scenarioResult struct {
	scenario scenario
	frames   int
	elapsed  time.Duration
	switches int
	checksum uint64
}

// perFrame is the mean repaint cost.
func (r scenarioResult) perFrame() time.Duration {
	if r.frames == 0 {
		return 0
	}
	return r.elapsed / time.Duration(r.frames)
}

func buildScenarios(engines []string, sizes, cells []int, densities []float64) []scenario {
	var out []scenario
	for _, eng := range engines {
		for _, size := range sizes {
			for _, cell := range cells {
				for _, density := range densities {
					for _, policy := range []render.Policy{render.TwoPass, render.SinglePass} {
						out = append(out, scenario{engine: eng, size: size, cellSize: cell, density: density, policy: policy})
					}
				}
			}
		}
	}
	return out
}

// runScenario ticks a seeded board for frames generations, repainting with
// the grid after every tick. The checksum covers every frame's pixels.
func runScenario(s scenario, frames int, seed int64) (scenarioResult, error) {
	factory, ok := core.Engines()[s.engine]
	if !ok {
		return scenarioResult{}, fmt.Errorf("unknown engine %q", s.engine)
	}
	eng := factory(map[string]string{
		"w":       fmt.Sprint(s.size),
		"h":       fmt.Sprint(s.size),
		"seed":    fmt.Sprint(seed),
		"density": fmt.Sprint(s.density),
	})
	eng.Randomize()
	rend := render.New(render.Layout{CellSize: s.cellSize, W: s.size, H: s.size}, render.DefaultPalette(), s.policy)
	surface := rend.NewSurface()

	sum := fnv.New64a()
	start := time.Now()
	for i := 0; i < frames; i++ {
		eng.Tick()
		if err := rend.Repaint(surface, eng.RawBuffer(), true); err != nil {
			return scenarioResult{}, err
		}
		_, _ = sum.Write(surface.Pix())
	}
	return scenarioResult{
		scenario: s,
		frames:   frames,
		elapsed:  time.Since(start),
		switches: surface.FillSwitches(),
		checksum: sum.Sum64(),
	}, nil
}

// sweep runs every scenario on a bounded worker pool and returns the results
// fastest first.
func sweep(ctx context.Context, scenarios []scenario, frames, workers int, seed int64) ([]scenarioResult, error) {
	results := make([]scenarioResult, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, s := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runScenario(s, frames, seed)
			if err != nil {
				return fmt.Errorf("%s: %w", s, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].perFrame() < results[j].perFrame() })
	return results, nil
}

// mismatches lists scenarios whose policies produced different pixels.
func mismatches(results []scenarioResult) []scenario {
	type key struct {
		engine   string
		size     int
		cellSize int
		density  float64
	}
	sums := map[key]map[render.Policy]uint64{}
	for _, r := range results {
		k := key{r.scenario.engine, r.scenario.size, r.scenario.cellSize, r.scenario.density}
		if sums[k] == nil {
			sums[k] = map[render.Policy]uint64{}
		}
		sums[k][r.scenario.policy] = r.checksum
	}
	var out []scenario
	for k, byPolicy := range sums {
		two, okTwo := byPolicy[render.TwoPass]
		single, okSingle := byPolicy[render.SinglePass]
		if okTwo && okSingle && two != single {
			out = append(out, scenario{engine: k.engine, size: k.size, cellSize: k.cellSize, density: k.density})
		}
	}
	return out
}
