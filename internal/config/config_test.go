package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 0.01, cfg.Visibility.Threshold)
	assert.Equal(t, 100*time.Millisecond, cfg.Visibility.Delay.Duration)
	assert.Equal(t, 256, cfg.Navigation.MaxDepth)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.Visibility.Delay = Duration{250 * time.Millisecond}
	cfg.Visibility.TestVisibility = true
	cfg.Eligibility.Selector = "a, .tile"
	cfg.Keys.Down = []string{"down", "s"}
	require.NoError(t, cs.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "250ms")

	loaded, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[visibility]
delay = "40ms"

[debug]
highlight_onscreen = true
`), 0644))

	cfg, err := NewConfigServiceAt(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, cfg.Visibility.Delay.Duration)
	assert.True(t, cfg.Debug.HighlightOnscreen)
	assert.Equal(t, 0.01, cfg.Visibility.Threshold)
	assert.Equal(t, []string{"enter"}, cfg.Keys.Activate)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cs := NewConfigServiceAt(filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = cs.LoadFromPath(cs.Path())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFromPath_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]string{
		"bad toml":       "[visibility\n",
		"bad duration":   "[visibility]\ndelay = \"soon\"\n",
		"bad threshold":  "[visibility]\nthreshold = 2.0\n",
		"bad depth":      "[navigation]\nmax_depth = 0\n",
		"duplicate keys": "[keys]\nup = [\"k\"]\ndown = [\"k\"]\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := NewConfigServiceAt(path).LoadFromPath(path)
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestValidate_ReportsDuplicateBinding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keys.Dump = []string{"enter"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "enter" is bound to both activate and dump`)
}
