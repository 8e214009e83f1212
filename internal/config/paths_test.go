package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	paths, err := GetPaths()
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(paths.ExecutableDir))
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "logs"), paths.LogsDir)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	paths := &Paths{
		ExecutableDir: dir,
		LogsDir:       filepath.Join(dir, "logs"),
	}

	require.NoError(t, paths.EnsureDirectories())

	info, err := os.Stat(paths.LogsDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Running again against existing directories is fine.
	require.NoError(t, paths.EnsureDirectories())
}

func TestGetLogPath(t *testing.T) {
	paths := &Paths{LogsDir: filepath.Join("app", "logs")}
	assert.Equal(t, filepath.Join("app", "logs", "run.log"), paths.GetLogPath("run.log"))
}

func TestResolvePaths(t *testing.T) {
	paths := &Paths{
		ExecutableDir: "/opt/ledatools",
		LogsDir:       "/opt/ledatools/logs",
	}

	t.Run("relative path anchored under logs dir", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.FilePath = "ledatools.log"
		cfg.ResolvePaths(paths)
		assert.Equal(t, filepath.Join("/opt/ledatools/logs", "ledatools.log"), cfg.Logging.FilePath)
	})

	t.Run("absolute path untouched", func(t *testing.T) {
		cfg := Default()
		abs := filepath.Join(t.TempDir(), "custom.log")
		cfg.Logging.FilePath = abs
		cfg.ResolvePaths(paths)
		assert.Equal(t, abs, cfg.Logging.FilePath)
	})
}
