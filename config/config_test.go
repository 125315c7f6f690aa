package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rnandomoreno/cleaning-process-macos/rules"
)

// point the package at a throwaway directory for the duration of a test
func useTempConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	oldDir, oldPath := configDir, configPath
	configDir = dir
	configPath = filepath.Join(dir, "config.json")
	t.Cleanup(func() {
		configDir, configPath = oldDir, oldPath
	})
}

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	useTempConfig(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.RefreshIntervalSeconds)
	assert.ElementsMatch(t, rules.DefaultNames, cfg.EssentialNames)
	assert.ElementsMatch(t, rules.DefaultPids, cfg.EssentialPids)

	_, err = os.Stat(configPath)
	assert.NoError(t, err, "defaults should be written back to disk")
}

func TestLoadRoundTrip(t *testing.T) {
	useTempConfig(t)

	want := &Config{
		EssentialNames:         []string{"Finder"},
		EssentialPids:          []int32{0, 1, 99},
		RefreshIntervalSeconds: 7,
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRecoversFromBrokenFile(t *testing.T) {
	useTempConfig(t)

	require.NoError(t, os.WriteFile(configPath, []byte("{not json"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RefreshIntervalSeconds)
}

func TestLoadClampsInterval(t *testing.T) {
	useTempConfig(t)

	require.NoError(t, Save(&Config{RefreshIntervalSeconds: 0}))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RefreshIntervalSeconds)
}

func TestEssentialitySetFromConfig(t *testing.T) {
	cfg := &Config{
		EssentialNames: []string{"Finder"},
		EssentialPids:  []int32{1},
	}

	set := cfg.EssentialitySet()
	assert.True(t, set.ContainsName("Finder"))
	assert.False(t, set.ContainsName("finder"))
	assert.True(t, set.ContainsPid(1))
	assert.False(t, set.ContainsPid(2))
}
