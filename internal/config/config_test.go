package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Testing = true
	os.Exit(m.Run())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Silent)
	assert.True(t, cfg.AbortOnError)
	assert.Equal(t, []string{"kst"}, cfg.SourceExtensions)
	assert.False(t, cfg.Trace.Passes)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kestrel.yaml")
	content := `
silent: true
trace:
  passes: true
output:
  listing: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Silent)
	assert.True(t, cfg.Trace.Passes)
	assert.True(t, cfg.Output.Listing)
	// untouched fields keep their defaults
	assert.True(t, cfg.AbortOnError)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMissingDefaultFileIsFine(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(wd) }()
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.Silent)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KESTREL_SILENT", "true")
	t.Setenv("KESTREL_TRACE_PASSES", "true")

	wd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(wd) }()
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Silent)
	assert.True(t, cfg.Trace.Passes)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, SaveConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().SourceExtensions, cfg.SourceExtensions)
}

func TestValidDumpStage(t *testing.T) {
	for _, s := range []string{StageParse, StageIdentify, StageDesugar, StageLift} {
		assert.True(t, ValidDumpStage(s))
	}
	assert.False(t, ValidDumpStage("emit"))
	assert.False(t, ValidDumpStage(""))
}
