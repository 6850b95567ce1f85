package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"magfield/internal/field"
	"magfield/internal/palette"
)

// Config represents the command-line parameters shared by the viewers.
type Config struct {
	ConfigPath string
	Scale      int
	TPS        int
	Profile    string
	Palette    string
	Workers    int
	LogLevel   string
	HUDWidth   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		ConfigPath: "assets/config.json",
		Scale:      2,
		TPS:        60,
		Profile:    field.ProfileBasic,
		Palette:    palette.Classic,
		LogLevel:   "info",
		HUDWidth:   240,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "scenario JSON file")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Profile, "profile", c.Profile, "synthesis profile ("+strings.Join(field.ProfileNames(), ", ")+")")
	fs.StringVar(&c.Palette, "palette", c.Palette, "colour table ("+strings.Join(palette.Names(), ", ")+")")
	fs.IntVar(&c.Workers, "workers", c.Workers, "synthesis workers, 0 uses all CPUs")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels, 0 hides it")
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Logger returns a text logger writing to w at the configured level. An
// unparsable level falls back to info.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := c.Level()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
