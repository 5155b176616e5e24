package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/dotfield/internal/integrators"
	"github.com/san-kum/dotfield/internal/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Physics.ResetOnRelease)
	assert.True(t, cfg.Physics.Collisions)
	assert.True(t, cfg.Physics.GateOnPress)
	assert.Equal(t, pointer.Linear, cfg.Mapping())

	p := cfg.Params()
	assert.Equal(t, integrators.Displacement, p.Mode)
	assert.Equal(t, DefaultMaxVelocity, p.MaxVelocity)
	assert.Equal(t, DefaultPadding, p.Padding)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero radius", func(c *Config) { c.Physics.Radius = 0 }},
		{"negative spacing", func(c *Config) { c.Physics.Spacing = -1 }},
		{"full padding", func(c *Config) { c.Physics.Padding = 1 }},
		{"padding past half", func(c *Config) { c.Physics.Padding = 0.8 }},
		{"padding at half", func(c *Config) { c.Physics.Padding = 0.5 }},
		{"friction out of range", func(c *Config) { c.Physics.Friction = Range{Min: 0, Max: 0.5} }},
		{"restitution inverted", func(c *Config) { c.Physics.Restitution = Range{Min: 0.6, Max: 0.4} }},
		{"bad force mode", func(c *Config) { c.Physics.ForceMode = "magnet" }},
		{"bad mapping", func(c *Config) { c.Physics.PointerMapping = "quadratic" }},
		{"bad palette", func(c *Config) { c.Palette.Mode = "plaid" }},
		{"zero fps", func(c *Config) { c.View.FPS = 0 }},
		{"bad log format", func(c *Config) { c.Logger.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dotfield.yaml")
	cfg := GetPreset("classic")
	require.NotNil(t, cfg)
	cfg.Physics.Seed = 99

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  radius: 4\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Physics.Radius)
	assert.Equal(t, DefaultSpacing, cfg.Physics.Spacing)
	assert.True(t, cfg.Physics.Collisions)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DOTFIELD_PHYSICS_SEED", "1234")
	t.Setenv("DOTFIELD_PHYSICS_COLLISIONS", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.Physics.Seed)
	assert.False(t, cfg.Physics.Collisions)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  spacing: 0\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			require.NotNil(t, cfg)
			assert.NoError(t, cfg.Validate())
		})
	}

	classic := GetPreset("classic")
	assert.Equal(t, string(integrators.Uniform), classic.Physics.ForceMode)
	assert.False(t, classic.Physics.ResetOnRelease)

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestGetPresetIsFresh(t *testing.T) {
	a := GetPreset("calm")
	a.Physics.Radius = 1
	b := GetPreset("calm")
	assert.Equal(t, DefaultRadius, b.Physics.Radius)
}

func TestListPresetsSorted(t *testing.T) {
	assert.Equal(t, []string{"billiards", "calm", "classic", "snapback"}, ListPresets())
}
