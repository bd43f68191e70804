//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"lifeboard/internal/app"
	_ "lifeboard/internal/sims/elementary"
	_ "lifeboard/internal/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := app.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := app.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	game, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("start failed", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	w, h := game.WindowSize()
	ebiten.SetWindowTitle("lifeboard: " + cfg.Engine)
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("window closed with error", "err", err)
		os.Exit(1)
	}
}
