package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lifeboard/internal/loop"
	_ "lifeboard/internal/sims/elementary"
	_ "lifeboard/internal/sims/life"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestDefaultsValidate(t *testing.T) {
	if err := NewConfig().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse(newFlagSet(), []string{"-width", "32", "-rate", "12", "-policy", "single-pass", "-autostart"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 64 || cfg.Rate != 12 || cfg.Policy != "single-pass" || !cfg.AutoStart {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	body := "engine: elementary\nwidth: 100\nheight: 40\nrate: 5\ncolors:\n  alive: \"#00ff00\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Parse(newFlagSet(), []string{"-config", path, "-rate", "20"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Engine != "elementary" || cfg.Width != 100 || cfg.Height != 40 {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.Rate != 20 {
		t.Fatalf("flag did not override file rate: %d", cfg.Rate)
	}
	if cfg.Colors.Alive != "#00ff00" || cfg.Colors.Dead != "#1f1f1f" {
		t.Fatalf("colors %+v", cfg.Colors)
	}
	if cfg.CellSize != 8 || cfg.StoreKey != "saveState" {
		t.Fatalf("defaults not kept under file: %+v", cfg)
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [1, 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.Width = 0
	cfg.Policy = "diagonal"
	cfg.Store = "redis:6379"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{"board size", "diagonal", "redis"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", "json")
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if rec["msg"] != "shown" || rec["level"] != "WARN" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestNewSessionUnknownEngine(t *testing.T) {
	cfg := NewConfig()
	cfg.Engine = "langton"
	_, err := NewSession(context.Background(), cfg, loop.NewPump(), nil, nil)
	if !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine, got %v", err)
	}
}

func TestSessionSQLiteSaveSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := NewConfig()
	cfg.Store = "sqlite:" + filepath.Join(t.TempDir(), "saves.db")

	first, err := NewSession(ctx, cfg, loop.NewPump(), logger, nil)
	if err != nil {
		t.Fatalf("first session: %v", err)
	}
	if first.Controller.CanLoad() {
		t.Fatalf("fresh store reports a save")
	}
	if err := first.Controller.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := bytes.Clone(first.Controller.Engine().RawBuffer())
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	cfg.SeedPattern = false
	second, err := NewSession(ctx, cfg, loop.NewPump(), logger, nil)
	if err != nil {
		t.Fatalf("second session: %v", err)
	}
	defer second.Close()
	if !second.Controller.CanLoad() {
		t.Fatalf("save not visible after restart")
	}
	if err := second.Controller.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(second.Controller.Engine().RawBuffer(), want) {
		t.Fatalf("restored board differs")
	}
}
