package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultHeight, cfg.Height)
	assert.Equal(t, "cpml", cfg.Boundary)
	assert.Equal(t, "empty", cfg.Scenario)
	assert.Equal(t, DefaultFrequency, cfg.Source.Frequency)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 300
	cfg.Scenario = "double-slit"
	cfg.Source.Type = "plane"
	cfg.Source.Frequency = 0.08
	cfg.Probe.Size = 512

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenario: lens\nsteps: 42\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lens", cfg.Scenario)
	assert.Equal(t, 42, cfg.Steps)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, "cpml", cfg.Boundary)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: [not a number\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestPresetsAreComplete(t *testing.T) {
	require.NotEmpty(t, ListPresets())
	for name, cfg := range Presets {
		assert.Positive(t, cfg.Width, name)
		assert.Positive(t, cfg.Height, name)
		assert.Positive(t, cfg.Steps, name)
		assert.NotEmpty(t, cfg.Scenario, name)
		assert.Positive(t, cfg.Probe.Size, name)
	}
	assert.Nil(t, GetPreset("no-such-preset"))
	assert.NotNil(t, GetPreset("double-slit"))
}
