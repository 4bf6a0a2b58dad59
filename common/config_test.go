package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HIER_SCENE", "other.yaml")
	t.Setenv("HIER_WIDTH", "800")
	t.Setenv("HIER_TPS", "30")
	t.Setenv("HIER_WATCH", "true")
	t.Setenv("HIER_GRID_SPACING", "0.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", cfg.Scene)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, DefaultHeight, cfg.Height)
	assert.Equal(t, 30, cfg.TPS)
	assert.True(t, cfg.Watch)
	assert.Equal(t, float32(0.5), cfg.GridSpacing)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative tps", func(c *Config) { c.TPS = -1 }},
		{"negative slices", func(c *Config) { c.GridSlices = -2 }},
		{"zero spacing", func(c *Config) { c.GridSpacing = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}
