package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lifeboard/internal/core"
	"lifeboard/internal/loop"
	"lifeboard/internal/persist"
	"lifeboard/internal/render"
)

// ErrUnknownEngine is returned when the configured engine is not registered.
var ErrUnknownEngine = errors.New("app: unknown engine")

// Session bundles a controller with the surface and store it owns.
type Session struct {
	Controller *Controller
	Renderer   *render.Renderer
	Surface    *render.ImageSurface

	closeStore func() error
}

// NewSession builds the engine, renderer and save store described by cfg
// and returns a controller scheduling frames on req.
func NewSession(ctx context.Context, cfg *Config, req loop.Requester, logger *slog.Logger, onRepaint func()) (*Session, error) {
	factory, ok := core.Engines()[cfg.Engine]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownEngine, cfg.Engine, strings.Join(core.EngineNames(), ", "))
	}
	policy, err := render.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	store, closeStore, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	eng := factory(cfg.EngineConfig())
	size := eng.Size()
	rend := render.New(render.Layout{CellSize: cfg.CellSize, W: size.W, H: size.H}, palette, policy)
	surface := rend.NewSurface()
	ctrl := NewController(ctx, eng, rend, surface, req, persist.NewAdapter(store, cfg.StoreKey), Options{
		Rate:        cfg.Rate,
		AutoStart:   cfg.AutoStart,
		ShowGrid:    cfg.ShowGrid,
		ShowFPS:     cfg.ShowFPS,
		SeedPattern: cfg.SeedPattern,
		Logger:      logger,
		OnRepaint:   onRepaint,
	})
	if logger != nil {
		w, h := rend.Layout().Pixels()
		logger.Info("session ready", "engine", eng.Name(), "cells", fmt.Sprintf("%dx%d", size.W, size.H),
			"pixels", fmt.Sprintf("%dx%d", w, h), "policy", policy, "store", cfg.Store)
	}
	return &Session{Controller: ctrl, Renderer: rend, Surface: surface, closeStore: closeStore}, nil
}

// Close releases the save store.
func (s *Session) Close() error {
	if s.closeStore == nil {
		return nil
	}
	return s.closeStore()
}

// OpenStore opens "memory" or "sqlite:<path>" save stores.
func OpenStore(dsn string) (persist.Store, func() error, error) {
	switch {
	case dsn == "" || dsn == "memory":
		return persist.NewMemoryStore(), func() error { return nil }, nil
	case strings.HasPrefix(dsn, "sqlite:"):
		st, err := persist.OpenSQLite(strings.TrimPrefix(dsn, "sqlite:"))
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", dsn)
}
