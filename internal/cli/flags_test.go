package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathcheck/internal/config"
)

func TestFlags_ToConfigFlags(t *testing.T) {
	f := Flags{
		Processors:  3,
		TestPath:    "suites",
		NameFilter:  "*arith*",
		CaseFilter:  "add",
		FailFast:    true,
		NoBuiltin:   true,
		Seed:        7,
		MetricsFile: "m.prom",
	}

	cf := f.ToConfigFlags()
	assert.Equal(t, 3, cf.Processors)
	assert.Equal(t, "suites", cf.TestPath)
	assert.Equal(t, "*arith*", cf.NameFilter)
	assert.Equal(t, "add", cf.CaseFilter)
	assert.True(t, cf.FailFast)
	assert.True(t, cf.NoBuiltin)
	assert.Equal(t, uint64(7), cf.Seed)
	assert.Equal(t, "m.prom", cf.MetricsFile)
}

func TestFlags_Apply_Precedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte(
		"processors: 2\nseed: 11\nlog:\n  level: info\n"), 0644))
	t.Setenv("MATHCHECK_SEED", "12")

	cfg := config.New()
	f := Flags{ProjectPath: dir, Processors: 4, LogFormat: "json"}
	require.NoError(t, f.Apply(cfg))

	assert.Equal(t, dir, cfg.ProjectPath)
	assert.Equal(t, 4, cfg.Processors, "flag overrides file")
	assert.Equal(t, uint64(12), cfg.Seed, "env overrides file")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 4, cfg.Flags.Processors)
}

func TestFlags_Apply_MissingRequiredConfig(t *testing.T) {
	cfg := config.New()
	f := Flags{ProjectPath: t.TempDir(), ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}
	assert.Error(t, f.Apply(cfg))
}
