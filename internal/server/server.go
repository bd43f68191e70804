// Package server exposes a board over HTTP. Every request runs its
// controller work on the single goroutine that advances the frame pump.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lifeboard/internal/app"
	"lifeboard/internal/fps"
	"lifeboard/internal/loop"
	"lifeboard/internal/persist"
	"lifeboard/internal/ui"
)

// RefreshInterval is the simulated display refresh period.
const RefreshInterval = time.Second / 60

// ErrStopped is returned when the loop goroutine has exited.
var ErrStopped = errors.New("server: loop stopped")

// Server drives one board session.
type Server struct {
	session *app.Session
	ctrl    *app.Controller
	pump    *loop.Pump
	log     *slog.Logger

	cmds    chan func(context.Context)
	done    chan struct{}
	refresh time.Duration
}

// New builds a session from cfg. The loop does not run until Run is called.
func New(ctx context.Context, cfg *app.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pump := loop.NewPump()
	session, err := app.NewSession(ctx, cfg, pump, logger, nil)
	if err != nil {
		return nil, err
	}
	return &Server{
		session: session,
		ctrl:    session.Controller,
		pump:    pump,
		log:     logger.With("component", "server"),
		cmds:    make(chan func(context.Context)),
		done:    make(chan struct{}),
		refresh: RefreshInterval,
	}, nil
}

// Close releases the session store.
func (s *Server) Close() error { return s.session.Close() }

// Run advances the pump every refresh interval and executes submitted work
// until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer close(s.done)
	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			s.pump.Advance(now.Sub(start))
		case fn := <-s.cmds:
			fn(ctx)
		}
	}
}

// do runs fn on the loop goroutine and waits for it to return.
func (s *Server) do(ctx context.Context, fn func(context.Context)) error {
	finished := make(chan struct{})
	wrapped := func(context.Context) {
		defer close(finished)
		fn(ctx)
	}
	select {
	case s.cmds <- wrapped:
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/board.png", s.handleBoard)
	r.Get("/state", s.handleState)
	r.Get("/fps", s.handleFPS)

	r.Post("/play", s.command(func(c *app.Controller) { c.Play() }))
	r.Post("/pause", s.command(func(c *app.Controller) { c.Pause() }))
	r.Post("/toggle", s.command(func(c *app.Controller) { c.TogglePlay() }))
	r.Post("/step", s.command(func(c *app.Controller) { c.Step() }))
	r.Post("/clear", s.command(func(c *app.Controller) { c.Clear() }))
	r.Post("/random", s.command(func(c *app.Controller) { c.Randomize() }))
	r.Post("/grid", s.command(func(c *app.Controller) { c.ToggleGrid() }))
	r.Post("/save", s.handleSave)
	r.Post("/load", s.handleLoad)
	r.Post("/rate", s.handleRate)
	r.Post("/click", s.handleClick)
	return r
}

func (s *Server) command(fn func(*app.Controller)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var st app.Status
		err := s.do(r.Context(), func(context.Context) {
			fn(s.ctrl)
			st = s.ctrl.Status()
		})
		if err != nil {
			s.fail(w, r, http.StatusServiceUnavailable, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.command(func(*app.Controller) {})(w, r)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	var img *image.RGBA
	err := s.do(r.Context(), func(context.Context) {
		src := s.session.Surface.Image()
		img = &image.RGBA{
			Pix:    bytes.Clone(src.Pix),
			Stride: src.Stride,
			Rect:   src.Rect,
		}
	})
	if err != nil {
		s.fail(w, r, http.StatusServiceUnavailable, err)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleFPS(w http.ResponseWriter, r *http.Request) {
	var st fps.Stats
	var samples []float64
	err := s.do(r.Context(), func(context.Context) {
		st, samples = s.ctrl.FrameStats()
	})
	if err != nil {
		s.fail(w, r, http.StatusServiceUnavailable, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(fps.Graph(samples, st, 60, 10) + "\n"))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.persistOp(w, r, (*app.Controller).Save)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	s.persistOp(w, r, (*app.Controller).Load)
}

func (s *Server) persistOp(w http.ResponseWriter, r *http.Request, op func(*app.Controller, context.Context) error) {
	var opErr error
	var st app.Status
	err := s.do(r.Context(), func(ctx context.Context) {
		opErr = op(s.ctrl, ctx)
		st = s.ctrl.Status()
	})
	switch {
	case err != nil:
		s.fail(w, r, http.StatusServiceUnavailable, err)
	case errors.Is(opErr, app.ErrNoSave):
		s.fail(w, r, http.StatusNotFound, opErr)
	case errors.Is(opErr, persist.ErrFormat):
		s.fail(w, r, http.StatusUnprocessableEntity, opErr)
	case opErr != nil:
		s.fail(w, r, http.StatusInternalServerError, opErr)
	default:
		writeJSON(w, http.StatusOK, st)
	}
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	rate, err := strconv.Atoi(r.URL.Query().Get("value"))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, errors.New("value must be an integer"))
		return
	}
	s.command(func(c *app.Controller) { c.SetRate(rate) })(w, r)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		s.fail(w, r, http.StatusBadRequest, errors.New("x and y must be numbers"))
		return
	}
	mods := ui.Modifiers{Control: queryBool(q.Get("ctrl")), Shift: queryBool(q.Get("shift"))}
	s.command(func(c *app.Controller) {
		pw, ph := c.Layout().Pixels()
		row, col := c.CellAt(x, y, ui.Rect{Width: float64(pw), Height: float64(ph)})
		c.Apply(row, col, mods.Action())
	})(w, r)
}

func queryBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := middleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "status", status, "request_id", id, "err", err)
	} else {
		s.log.Debug("request rejected", "path", r.URL.Path, "status", status, "request_id", id, "err", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error(), RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
