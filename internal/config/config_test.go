package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()

	p, err := cfg.Parameters()
	require.NoError(t, err)

	assert.Equal(t, 1.0, p.Omega)
	assert.Equal(t, 0.05, p.Dt)
	assert.Equal(t, 10.0, p.MaxTime)

	f, err := cfg.FieldModel()
	require.NoError(t, err)
	assert.Equal(t, "cosine", f.Name())
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Omega = 3.5
	cfg.Field = "dipole"
	cfg.Turns = 12

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3.5, loaded.Omega)
	assert.Equal(t, "dipole", loaded.Field)
	assert.Equal(t, 12.0, loaded.Turns)
}

func TestParamOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params = map[string]any{
		"omega": 4.0,
		"b0":    "0.8", // weakly typed on purpose
	}

	p, err := cfg.Parameters()
	require.NoError(t, err)

	assert.Equal(t, 4.0, p.Omega)
	assert.Equal(t, 0.8, p.PeakField)
	assert.Equal(t, 1.0, p.CoilWidth)
}

func TestParamOverridesRejectUnknownKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params = map[string]any{"voltage": 1.0}

	_, err := cfg.Parameters()
	assert.Error(t, err)
}

func TestInvalidParameters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = -1

	_, err := cfg.Parameters()
	assert.Error(t, err)
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	require.NotEmpty(t, names)
	assert.Contains(t, names, "classroom")

	for _, name := range names {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)

		_, err := cfg.Parameters()
		assert.NoError(t, err, name)

		_, err = cfg.FieldModel()
		assert.NoError(t, err, name)
	}

	assert.Nil(t, GetPreset("missing"))
}
