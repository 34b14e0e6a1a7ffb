package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGridDefaults_NoFile(t *testing.T) {
	t.Setenv("GRID_WORKING_DAYS", "")
	t.Setenv("GRID_PERIODS_PER_DAY", "")
	t.Setenv("GRID_CONCURRENCY", "")

	g, err := LoadGridDefaults("")
	require.NoError(t, err)
	assert.Equal(t, DefaultGrid(), g)
}

func TestLoadGridDefaults_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("working_days: 5\nperiods_per_day: 7\nspans:\n  LAB: 3\n"), 0o644))

	t.Setenv("GRID_WORKING_DAYS", "")
	t.Setenv("GRID_PERIODS_PER_DAY", "9")

	g, err := LoadGridDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, 5, g.WorkingDays)
	assert.Equal(t, 9, g.PeriodsPerDay)
	assert.Equal(t, 3, g.Spans["LAB"])
}

func TestLoadGridDefaults_Invalid(t *testing.T) {
	t.Setenv("GRID_WORKING_DAYS", "12")
	_, err := LoadGridDefaults("")
	assert.Error(t, err)

	t.Setenv("GRID_WORKING_DAYS", "")
	_, err = LoadGridDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 4, GetEnvInt("SOME_INT", 4))
	t.Setenv("SOME_INT", " 11 ")
	assert.Equal(t, 11, GetEnvInt("SOME_INT", 4))
}
