// Command render-sweep times both cell drawing policies across board sizes
// and densities and checks that they produce identical pixels.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"lifeboard/internal/app"
	"lifeboard/internal/core"
	_ "lifeboard/internal/sims/elementary"
	_ "lifeboard/internal/sims/life"
)

func main() {
	frames := flag.Int("frames", 120, "generations to render per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1337, "randomize seed")
	engines := flag.String("engines", strings.Join(core.EngineNames(), ","), "comma separated engines")
	sizes := flag.String("sizes", "32,64,128", "comma separated board sizes")
	cells := flag.String("cells", "4,8", "comma separated cell sizes")
	densities := flag.String("densities", "0.1,0.5,0.9", "comma separated randomize densities")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger := app.NewLogger(os.Stderr, *logLevel, "text")
	sizeList, err := parseInts(*sizes)
	if err != nil {
		logger.Error("bad -sizes", "err", err)
		os.Exit(2)
	}
	cellList, err := parseInts(*cells)
	if err != nil {
		logger.Error("bad -cells", "err", err)
		os.Exit(2)
	}
	densityList, err := parseFloats(*densities)
	if err != nil {
		logger.Error("bad -densities", "err", err)
		os.Exit(2)
	}

	scenarios := buildScenarios(strings.Split(*engines, ","), sizeList, cellList, densityList)
	fmt.Printf("Sweeping %d scenarios (%d workers, %d frames)\n", len(scenarios), *workers, *frames)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, err := sweep(ctx, scenarios, *frames, *workers, *seed)
	if err != nil {
		logger.Error("sweep failed", "err", err)
		os.Exit(1)
	}

	fmt.Printf("\nFastest 5:\n")
	for i := 0; i < len(results) && i < 5; i++ {
		r := results[i]
		fmt.Printf("%2d) %-9s/frame switches=%-6d %s\n", i+1, r.perFrame(), r.switches, r.scenario)
	}
	fmt.Printf("\nAll results:\n")
	for _, r := range results {
		fmt.Printf("%-9s/frame switches=%-6d %s\n", r.perFrame(), r.switches, r.scenario)
	}

	if bad := mismatches(results); len(bad) > 0 {
		for _, s := range bad {
			logger.Error("policies disagree", "scenario", s.String())
		}
		os.Exit(1)
	}
	logger.Info("policies agree on every scenario", "scenarios", len(scenarios))
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("invalid value %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || v < 0 || v > 1 {
			return nil, fmt.Errorf("invalid density %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}
