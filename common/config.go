package common

import (
	"os"
	"strings"
	"time"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	Title         = "HierarchicalScenes"
	DefaultWidth  = 500
	DefaultHeight = 500
	DefaultTPS    = 60
)

// Config holds the runtime settings. Every field can be overridden from the
// environment; command line flags take precedence over both.
type Config struct {
	Scene       string  `config:"HIER_SCENE"`
	Width       int     `config:"HIER_WIDTH"`
	Height      int     `config:"HIER_HEIGHT"`
	TPS         int     `config:"HIER_TPS"`
	LogLevel    string  `config:"HIER_LOG_LEVEL"`
	Watch       bool    `config:"HIER_WATCH"`
	GridSlices  int     `config:"HIER_GRID_SLICES"`
	GridSpacing float32 `config:"HIER_GRID_SPACING"`
}

func DefaultConfig() Config {
	return Config{
		Scene:       "scene.yaml",
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		TPS:         DefaultTPS,
		LogLevel:    "info",
		GridSlices:  10,
		GridSpacing: 1,
	}
}

// LoadConfig starts from DefaultConfig and applies any HIER_* environment
// variables.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "config: read environment")
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return eris.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	case c.TPS <= 0:
		return eris.Errorf("config: tps %d must be positive", c.TPS)
	case c.GridSlices < 0:
		return eris.Errorf("config: grid slices %d must not be negative", c.GridSlices)
	case c.GridSpacing <= 0:
		return eris.Errorf("config: grid spacing %v must be positive", c.GridSpacing)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return eris.Wrapf(err, "config: log level %q", c.LogLevel)
	}
	return nil
}

// NewLogger returns a console logger on stderr at the configured level.
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
