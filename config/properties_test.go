package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `jcdp:
  level: WARN
  timestamp:
    enabled: true
  ERROR:
    foreground: WHITE
    background: RED
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewPropertiesReadsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jcdp.yaml", baseYAML)

	p, err := NewProperties(Options{BasePath: dir, FileName: "jcdp", FileType: "yaml"})
	require.NoError(t, err)

	tests := []struct {
		key      string
		expected string
	}{
		{"jcdp.level", "WARN"},
		{"jcdp.timestamp.enabled", "true"},
		{"jcdp.ERROR.foreground", "WHITE"},
		{"jcdp.error.background", "RED"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := p.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, ok := p.Get("jcdp.file.path")
	assert.False(t, ok)
	assert.Equal(t, []string{filepath.Join(dir, "jcdp.yaml")}, p.Files())
}

func TestNewPropertiesMergesLocalFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jcdp.yaml", baseYAML)
	writeFile(t, dir, "jcdp.local.yaml", "jcdp:\n  level: TRACE\n")

	p, err := NewProperties(Options{BasePath: dir, FileName: "jcdp", FileType: "yaml"})
	require.NoError(t, err)

	level, _ := p.Get("jcdp.level")
	assert.Equal(t, "TRACE", level)
	fg, _ := p.Get("jcdp.ERROR.foreground")
	assert.Equal(t, "WHITE", fg)
	assert.Len(t, p.Files(), 2)
}

func TestNewPropertiesWithoutFile(t *testing.T) {
	p, err := NewProperties(Options{BasePath: t.TempDir(), FileName: "missing", FileType: "yaml"})
	require.NoError(t, err)
	assert.Empty(t, p.Files())

	_, ok := p.Get("jcdp.level")
	assert.False(t, ok)
}

func TestNewPropertiesInvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jcdp.yaml", "jcdp: [unclosed\n")

	_, err := NewProperties(Options{BasePath: dir, FileName: "jcdp", FileType: "yaml"})
	require.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jcdp.yaml", baseYAML)
	t.Setenv("JCDP_LEVEL", "DEBUG")
	t.Setenv("JCDP_FILE_ENABLED", "true")

	p, err := NewProperties(Options{BasePath: dir, FileName: "jcdp", FileType: "yaml"})
	require.NoError(t, err)

	level, _ := p.Get("jcdp.level")
	assert.Equal(t, "DEBUG", level)
	enabled, ok := p.Get("jcdp.file.enabled")
	require.True(t, ok)
	assert.Equal(t, "true", enabled)
}

func TestEnvironmentPrefix(t *testing.T) {
	t.Setenv("APP_JCDP_WARN_FOREGROUND", "YELLOW")

	p, err := NewProperties(Options{BasePath: t.TempDir(), EnvPrefix: "APP"})
	require.NoError(t, err)

	fg, ok := p.Get("jcdp.WARN.foreground")
	require.True(t, ok)
	assert.Equal(t, "YELLOW", fg)
}

func TestSetWinsOverEverything(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jcdp.yaml", baseYAML)
	t.Setenv("JCDP_LEVEL", "DEBUG")

	p, err := NewProperties(Options{BasePath: dir, FileName: "jcdp", FileType: "yaml"})
	require.NoError(t, err)

	p.Set("jcdp.level", "ERROR")
	level, _ := p.Get("jcdp.level")
	assert.Equal(t, "ERROR", level)
}

func TestKeysAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jcdp.yaml", baseYAML)

	p, err := NewProperties(Options{BasePath: dir, FileName: "jcdp", FileType: "yaml"})
	require.NoError(t, err)
	p.Set("other.key", "x")

	assert.Equal(t, []string{
		"jcdp.error.background",
		"jcdp.error.foreground",
		"jcdp.level",
		"jcdp.timestamp.enabled",
	}, p.Keys("jcdp."))

	snapshot := p.Snapshot("JCDP.")
	assert.Equal(t, "WARN", snapshot["jcdp.level"])
	assert.NotContains(t, snapshot, "other.key")
}

func TestWatchReloadsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jcdp.yaml", baseYAML)

	var changes atomic.Int32
	p, err := NewProperties(Options{
		BasePath:  dir,
		FileName:  "jcdp",
		FileType:  "yaml",
		WatchAble: true,
		OnChange:  func(fsnotify.Event) { changes.Add(1) },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	p.Set("jcdp.file.path", "/tmp/override.log")

	require.NoError(t, os.WriteFile(path, []byte("jcdp:\n  level: ERROR\n"), 0644))

	require.Eventually(t, func() bool {
		level, _ := p.Get("jcdp.level")
		return level == "ERROR" && changes.Load() > 0
	}, 5*time.Second, 20*time.Millisecond)

	path2, _ := p.Get("jcdp.file.path")
	assert.Equal(t, "/tmp/override.log", path2)
	_, ok := p.Get("jcdp.timestamp.enabled")
	assert.False(t, ok)
}

func TestReloadKeepsPreviousValuesOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jcdp.yaml", baseYAML)

	p, err := NewProperties(Options{BasePath: dir, FileName: "jcdp", FileType: "yaml"})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("jcdp: [unclosed\n"), 0644))
	require.Error(t, p.Reload())

	level, _ := p.Get("jcdp.level")
	assert.Equal(t, "WARN", level)
}

func TestUnset(t *testing.T) {
	p, err := NewProperties(Options{BasePath: t.TempDir()})
	require.NoError(t, err)

	p.Set("JCDP.Level", "TRACE")
	level, ok := p.Get("jcdp.level")
	require.True(t, ok)
	assert.Equal(t, "TRACE", level)

	p.Unset("jcdp.level")
	_, ok = p.Get("jcdp.level")
	assert.False(t, ok)
	assert.NoError(t, p.Close())
}
