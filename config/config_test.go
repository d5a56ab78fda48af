package config

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, "Liberation Sans", c.Render.DefaultFontFamily)
	assert.Equal(t, 12.0, c.Render.DefaultFontSize)
	assert.Equal(t, 64, c.Render.ImageCacheSize)
	assert.Equal(t, int32(math.MaxInt32), c.Handles.Max)
	assert.Positive(t, c.Fonts.LoadParallelism)
	assert.NoError(t, c.Validate())
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
log:
  level: DEBUG
  format: console
fonts:
  cacheDir: /tmp/fonts
  loadParallelism: 3
render:
  defaultFontFamily: Go
  defaultFontSize: 16
handles:
  max: 100
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "console", c.Log.Format)
	assert.Equal(t, "/tmp/fonts", c.Fonts.CacheDir)
	assert.Equal(t, 3, c.Fonts.LoadParallelism)
	assert.Equal(t, "Go", c.Render.DefaultFontFamily)
	assert.Equal(t, 16.0, c.Render.DefaultFontSize)
	assert.Equal(t, 64, c.Render.ImageCacheSize)
	assert.Equal(t, int32(100), c.Handles.Max)

	lvl, err := c.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("log: [unclosed"))
	assert.Error(t, err)

	_, err = Parse([]byte("log:\n  level: loud\n"))
	assert.ErrorContains(t, err, "log level")

	_, err = Parse([]byte("log:\n  format: xml\n"))
	assert.ErrorContains(t, err, "log format")
}

func TestFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "native.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  defaultFontSize: 20\n"), 0o644))

	c, err := FromEnv(envMap(map[string]string{
		EnvConfigFile:   path,
		EnvLogLevel:     "Info",
		EnvFontCacheDir: "/var/cache/fonts",
	}))
	require.NoError(t, err)
	assert.Equal(t, 20.0, c.Render.DefaultFontSize)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "/var/cache/fonts", c.Fonts.CacheDir)
}

func TestFromEnvEmpty(t *testing.T) {
	c, err := FromEnv(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestFromEnvErrors(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{EnvConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}))
	assert.Error(t, err)

	_, err = FromEnv(envMap(map[string]string{EnvLogLevel: "chatty"}))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Default()
	c.Fonts.CacheDir = "/x"
	data, err := c.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestImageCacheSizeDefault(t *testing.T) {
	for _, doc := range []string{"render:\n  imageCacheSize: 0\n", "render:\n  imageCacheSize: -5\n"} {
		c, err := Parse([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, DefaultImageCache, c.Render.ImageCacheSize, doc)
	}
}
