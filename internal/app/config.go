package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"lifeboard/internal/render"
)

// Config represents the settings shared by every host.
type Config struct {
	Engine   string  `yaml:"engine"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CellSize int     `yaml:"cell_size"`
	Scale    int     `yaml:"scale"`
	Rate     int     `yaml:"rate"`
	Seed     int64   `yaml:"seed"`
	Density  float64 `yaml:"density"`
	Policy   string  `yaml:"policy"`

	AutoStart   bool `yaml:"auto_start"`
	ShowGrid    bool `yaml:"show_grid"`
	ShowFPS     bool `yaml:"show_fps"`
	SeedPattern bool `yaml:"seed_pattern"`

	Store    string `yaml:"store"`
	StoreKey string `yaml:"store_key"`
	Listen   string `yaml:"listen"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Colors ColorConfig `yaml:"colors"`

	File string `yaml:"-"`
}

// ColorConfig holds hex colors for the board palette.
type ColorConfig struct {
	Alive string `yaml:"alive"`
	Dead  string `yaml:"dead"`
	Grid  string `yaml:"grid"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Engine:      "life",
		Width:       64,
		Height:      64,
		CellSize:    8,
		Scale:       1,
		Rate:        DefaultRate,
		Seed:        42,
		Density:     0.5,
		Policy:      render.TwoPass.String(),
		ShowGrid:    true,
		SeedPattern: true,
		Store:       "memory",
		StoreKey:    "saveState",
		Listen:      "127.0.0.1:8080",
		LogLevel:    "info",
		LogFormat:   "text",
		Colors:      ColorConfig{Alive: "#ffffff", Dead: "#1f1f1f", Grid: "#5c5c5c"},
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "YAML config file; flags override its values")
	fs.StringVar(&c.Engine, "engine", c.Engine, "simulation engine to drive")
	fs.IntVar(&c.Width, "width", c.Width, "board width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "board height in cells")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "cell size in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window scale multiplier")
	fs.IntVar(&c.Rate, "rate", c.Rate, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for randomize")
	fs.Float64Var(&c.Density, "density", c.Density, "live cell probability for randomize")
	fs.StringVar(&c.Policy, "policy", c.Policy, "cell drawing policy: two-pass or single-pass")
	fs.BoolVar(&c.AutoStart, "autostart", c.AutoStart, "start running instead of paused")
	fs.BoolVar(&c.ShowGrid, "grid", c.ShowGrid, "draw grid lines")
	fs.BoolVar(&c.ShowFPS, "fps", c.ShowFPS, "show frame rate statistics")
	fs.BoolVar(&c.SeedPattern, "pattern", c.SeedPattern, "stamp a glider and a pulsar on start")
	fs.StringVar(&c.Store, "store", c.Store, "save slot store: memory or sqlite:<path>")
	fs.StringVar(&c.StoreKey, "store-key", c.StoreKey, "save slot key")
	fs.StringVar(&c.Listen, "listen", c.Listen, "HTTP listen address")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json")
}

// Parse binds fs, parses args and, when -config names a file, loads it with
// the explicitly set flags applied on top.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := NewConfig()
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.File == "" {
		return cfg, cfg.Validate()
	}

	fileCfg, err := LoadFile(cfg.File)
	if err != nil {
		return nil, err
	}
	overlay := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
	fileCfg.Bind(overlay)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if err := overlay.Set(f.Name, f.Value.String()); err != nil && setErr == nil {
			setErr = err
		}
	})
	if setErr != nil {
		return nil, setErr
	}
	return fileCfg, fileCfg.Validate()
}

// LoadFile reads a YAML configuration file over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.File = path
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := NewConfig()
	if c.Engine == "" {
		c.Engine = def.Engine
	}
	if c.Scale <= 0 {
		c.Scale = def.Scale
	}
	if c.Rate <= 0 {
		c.Rate = def.Rate
	}
	if c.Policy == "" {
		c.Policy = def.Policy
	}
	if c.Store == "" {
		c.Store = def.Store
	}
	if c.StoreKey == "" {
		c.StoreKey = def.StoreKey
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = def.LogFormat
	}
	if c.Colors.Alive == "" {
		c.Colors.Alive = def.Colors.Alive
	}
	if c.Colors.Dead == "" {
		c.Colors.Dead = def.Colors.Dead
	}
	if c.Colors.Grid == "" {
		c.Colors.Grid = def.Colors.Grid
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("board size %dx%d must be positive", c.Width, c.Height))
	}
	if c.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell size %d must be positive", c.CellSize))
	}
	if c.Density < 0 || c.Density > 1 {
		errs = append(errs, fmt.Errorf("density %g outside [0,1]", c.Density))
	}
	if _, err := render.ParsePolicy(c.Policy); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}
	if c.Store != "memory" && !strings.HasPrefix(c.Store, "sqlite:") {
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	return errors.Join(errs...)
}

// Palette parses the configured colors.
func (c *Config) Palette() (render.Palette, error) {
	var pal render.Palette
	var err error
	if pal.Alive, err = render.ParseHexColor(c.Colors.Alive); err != nil {
		return pal, err
	}
	if pal.Dead, err = render.ParseHexColor(c.Colors.Dead); err != nil {
		return pal, err
	}
	if pal.Grid, err = render.ParseHexColor(c.Colors.Grid); err != nil {
		return pal, err
	}
	return pal, nil
}

// EngineConfig converts the board settings to an engine factory map.
func (c *Config) EngineConfig() map[string]string {
	return map[string]string{
		"w":       fmt.Sprint(c.Width),
		"h":       fmt.Sprint(c.Height),
		"seed":    fmt.Sprint(c.Seed),
		"density": fmt.Sprint(c.Density),
	}
}
