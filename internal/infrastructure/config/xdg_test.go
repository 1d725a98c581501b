package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetXDGDirs(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_STATE_HOME", "/state")
	t.Setenv("XDG_DATA_HOME", "/data")

	dirs, err := GetXDGDirs()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", appName), dirs.ConfigHome)
	assert.Equal(t, filepath.Join("/state", appName), dirs.StateHome)

	logDir, err := GetLogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/state", appName, "logs"), logDir)

	file, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", appName, configFileName), file)

	manDir, err := GetManDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "man", "man1"), manDir)
}

func TestGetXDGDirs_DevMode(t *testing.T) {
	t.Setenv("ENV", "dev")

	dirs, err := GetXDGDirs()
	require.NoError(t, err)
	assert.Equal(t, dirs.ConfigHome, dirs.StateHome)
	assert.Equal(t, filepath.Join(".dev", appName), filepath.Join(filepath.Base(filepath.Dir(dirs.ConfigHome)), filepath.Base(dirs.ConfigHome)))
}
