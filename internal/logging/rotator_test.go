package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listBackups(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "lruconsole.log.") {
			names = append(names, e.Name())
		}
	}
	return names
}

func newTestRotator(t *testing.T, cfg RotatorConfig) *LogRotator {
	t.Helper()
	r, err := NewLogRotator(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	return r
}

func TestLogRotator_RotatesPastMaxSize(t *testing.T) {
	dir := t.TempDir()
	r := newTestRotator(t, RotatorConfig{Dir: dir, MaxSizeMB: 1, MaxBackups: 5})

	chunk := []byte(strings.Repeat("x", 600*1024))
	_, err := r.Write(chunk)
	require.NoError(t, err)
	assert.Empty(t, listBackups(t, dir))

	_, err = r.Write(chunk)
	require.NoError(t, err)
	assert.Len(t, listBackups(t, dir), 1)

	info, err := os.Stat(r.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), info.Size())
}

func TestLogRotator_KeepsMaxBackups(t *testing.T) {
	dir := t.TempDir()
	r := newTestRotator(t, RotatorConfig{Dir: dir, MaxSizeMB: 1, MaxBackups: 2})

	chunk := []byte(strings.Repeat("y", 700*1024))
	for range 5 {
		_, err := r.Write(chunk)
		require.NoError(t, err)
	}

	assert.Len(t, listBackups(t, dir), 2)
}

func TestLogRotator_Compress(t *testing.T) {
	dir := t.TempDir()
	r := newTestRotator(t, RotatorConfig{Dir: dir, MaxSizeMB: 1, MaxBackups: 3, Compress: true})

	chunk := []byte(strings.Repeat("z", 700*1024))
	for range 2 {
		_, err := r.Write(chunk)
		require.NoError(t, err)
	}

	backups := listBackups(t, dir)
	require.Len(t, backups, 1)
	assert.Equal(t, ".gz", filepath.Ext(backups[0]))
}

func TestLogRotator_WriteAfterClose(t *testing.T) {
	dir := t.TempDir()
	r := newTestRotator(t, RotatorConfig{Dir: dir, MaxSizeMB: 1})

	require.NoError(t, r.Close())
	_, err := r.Write([]byte("reopened\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	assert.Equal(t, "reopened\n", string(data))
}
