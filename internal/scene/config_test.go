package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/motion"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/steering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	configFile = "../../config/scene.json"
	schemaFile = "../../config/scene.schema.json"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_ShippedFileMatchesDefaults(t *testing.T) {
	cfg, err := LoadConfig(configFile, schemaFile)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `{"bufferRadius": 4, "insidePolicy": "reject"}`)
	cfg, err := LoadConfig(path, schemaFile)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.BufferRadius)
	assert.Equal(t, "reject", cfg.InsidePolicy)
	assert.Equal(t, DefaultConfig().Obstacles, cfg.Obstacles)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative buffer", `{"bufferRadius": -1}`},
		{"unknown policy", `{"insidePolicy": "teleport"}`},
		{"unknown field", `{"gravity": 9.81}`},
		{"empty obstacle", `{"obstacles": [{"x": 0, "y": 0, "width": 0, "height": 10}]}`},
		{"zero mass", `{"missile": {"mass": 0}}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body), schemaFile)
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig("does-not-exist.json", schemaFile)
	assert.Error(t, err)
	_, err = LoadConfig(configFile, "does-not-exist.schema.json")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"world", func(c *Config) { c.WorldWidth = 0 }, ErrInvalidConfig},
		{"buffer", func(c *Config) { c.BufferRadius = -3 }, ErrInvalidConfig},
		{"policy", func(c *Config) { c.InsidePolicy = "bounce" }, ErrInvalidConfig},
		{"easing", func(c *Config) { c.MoveEasing = "wobble" }, motion.ErrUnknownEasing},
		{"segment", func(c *Config) { c.MoveSegmentSeconds = 0 }, ErrInvalidConfig},
		{"step", func(c *Config) { c.MaxStep = -1 }, ErrInvalidConfig},
		{"missile", func(c *Config) { c.Missile.Mass = 0 }, steering.ErrInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.target)
		})
	}
}

func TestConfig_MoveSegment(t *testing.T) {
	assert.Equal(t, motion.DefaultSegmentDuration, DefaultConfig().MoveSegment())
}
