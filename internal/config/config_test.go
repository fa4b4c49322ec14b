package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. It mirrors t.Chdir, which needs
// a newer Go toolchain than this build uses.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no config file present

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2023, cfg.Census.Year)
	assert.Equal(t, "https://api.census.gov/data", cfg.Census.BaseURL)
	assert.Equal(t, "36", cfg.Study.StateFIPS)
	assert.Equal(t, []string{"001", "083", "093"}, cfg.Study.CountyFIPS)
	assert.Equal(t, []string{"Albany", "Rensselaer", "Schenectady"}, cfg.Study.CountyNames)
	assert.Equal(t, "out", cfg.Render.OutputDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Census.APIKey)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := `
census:
  year: 2021
study:
  county_names:
    - Albany
render:
  output_dir: artifacts
`
	require.NoError(t, os.WriteFile("config.yaml", []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2021, cfg.Census.Year)
	assert.Equal(t, []string{"Albany"}, cfg.Study.CountyNames)
	assert.Equal(t, "artifacts", cfg.Render.OutputDir)
	// Untouched keys keep their defaults.
	assert.Equal(t, "36", cfg.Study.StateFIPS)
}

func TestLoad_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EJATLAS_CENSUS_API_KEY", "secret")
	t.Setenv("EJATLAS_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Census.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(Log{Level: "shouting", Format: "json"})
	require.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	require.NoError(t, InitLogger(Log{Level: "debug", Format: "console"}))
}
