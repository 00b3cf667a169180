package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, CONFIG_FILE_NAME)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
color = "never"
search_paths = ["lib", "/opt/nx"]

[trace]
enabled = true
functions = ["Main.*", "Math.sq"]

[watch]
debounce = "1s"
exclude = ["*.tmp"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, []string{"lib", "/opt/nx"}, cfg.SearchPaths)
	assert.True(t, cfg.Trace.Enabled)
	assert.Equal(t, []string{"Main.*", "Math.sq"}, cfg.Trace.Functions)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, []string{"*.tmp"}, cfg.Watch.Exclude)
	assert.Equal(t, path, cfg.Source)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `search_paths = ["lib"]`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, DEFAULT_DEBOUNCE, cfg.Watch.Debounce)
	assert.False(t, cfg.Trace.Enabled)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"syntax", `color = `, CONFIG_FILE_NAME},
		{"unknown key", `colour = "never"`, `unknown setting "colour"`},
		{"bad color", `color = "rainbow"`, `invalid color "rainbow"`},
		{"bad debounce", "[watch]\ndebounce = \"soon\"", CONFIG_FILE_NAME},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), test.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.message)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve(t *testing.T) {
	configHome := t.TempDir()
	workDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Chdir(workDir)

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Source)
	assert.Equal(t, "auto", cfg.Color)

	userPath := writeConfig(t, filepath.Join(configHome, APP_NAME), `color = "always"`)
	cfg, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, userPath, cfg.Source)
	assert.Equal(t, "always", cfg.Color)

	writeConfig(t, workDir, `color = "never"`)
	cfg, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, CONFIG_FILE_NAME, cfg.Source)
	assert.Equal(t, "never", cfg.Color)

	explicit := writeConfig(t, t.TempDir(), `search_paths = ["x"]`)
	cfg, err = Resolve(explicit)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, cfg.SearchPaths)

	_, err = Resolve(filepath.Join(workDir, "absent.toml"))
	assert.Error(t, err)
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := ConfigDir(APP_NAME)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", APP_NAME), dir)
}
