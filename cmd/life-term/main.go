// Command life-term runs a board in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"lifeboard/internal/app"
	_ "lifeboard/internal/sims/elementary"
	_ "lifeboard/internal/sims/life"
	"lifeboard/internal/term"
)

func main() {
	cfg, err := app.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *app.Config) error {
	// The screen owns stdout and stderr, so logs go to a file or nowhere.
	logOut, err := os.OpenFile("life-term.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer logOut.Close()
	logger := app.NewLogger(logOut, cfg.LogLevel, cfg.LogFormat)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host, err := term.New(ctx, screen, cfg, logger)
	if err != nil {
		return err
	}
	defer host.Close()
	return host.Run(ctx)
}
