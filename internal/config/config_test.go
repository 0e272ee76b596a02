package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "stroke_data.csv", c.DataPath)
	assert.Equal(t, ".", c.OutputDir)
	assert.Equal(t, "csv", c.ExportFormat)
	assert.True(t, c.ExportEnabled)
	assert.Equal(t, "text", c.RenderFormat)
	assert.False(t, c.Diagnostics)
	assert.Equal(t, "Age", c.DefaultFeature)
	assert.Equal(t, 4, c.Parallelism)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte("data_path: from-file.csv\nparallelism: 8\n"), 0o644))
	t.Setenv("STROKESTAT_PARALLELISM", "2")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-file.csv", c.DataPath)
	assert.Equal(t, 2, c.Parallelism)
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	require.NoError(t, err)
	c.ExportFormat = "xlsx"
	c.OutputDir = "results"
	require.NoError(t, Save(c, ""))
	assert.FileExists(t, filepath.Join(home, DirName, "config.yaml"))

	back, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", back.ExportFormat)
	assert.Equal(t, "results", back.OutputDir)
}

func TestLoadMissingExplicitFileFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Age", c.DefaultFeature)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte("export_format: parquet\n"), 0o644))
	_, err := Load(p)
	assert.ErrorContains(t, err, "export_format")

	require.NoError(t, os.WriteFile(p, []byte("parallelism: 0\n"), 0o644))
	_, err = Load(p)
	assert.ErrorContains(t, err, "parallelism")
}
