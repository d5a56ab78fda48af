// Package config loads the settings of the native layer from an optional
// YAML file and environment overrides.
package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvConfigFile   = "PRINCESS_NATIVE_CONFIG"
	EnvLogLevel     = "PRINCESS_NATIVE_LOG_LEVEL"
	EnvFontCacheDir = "PRINCESS_NATIVE_FONT_CACHE_DIR"
)

// Defaults applied by normalize.
const (
	DefaultLogLevel      = "warn"
	DefaultFontFamily    = "Liberation Sans"
	DefaultFontSize      = 12
	DefaultImageCache    = 64
	DefaultLanguage      = "en"
	DefaultMaxHandle     = math.MaxInt32
	defaultLogFormatJSON = "json"
)

// Config is the complete configuration of the native layer.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Fonts   FontsConfig   `yaml:"fonts"`
	Render  RenderConfig  `yaml:"render"`
	Handles HandlesConfig `yaml:"handles"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is json or console.
	Format string `yaml:"format,omitempty"`
}

type FontsConfig struct {
	// CacheDir holds the system font index. Empty selects the platform
	// default.
	CacheDir        string `yaml:"cacheDir,omitempty"`
	LoadParallelism int    `yaml:"loadParallelism,omitempty"`
}

type RenderConfig struct {
	DefaultFontFamily string  `yaml:"defaultFontFamily"`
	DefaultFontSize   float64 `yaml:"defaultFontSize"`
	// ImageCacheSize is the number of decoded images kept. Values below 1
	// select the default.
	ImageCacheSize int    `yaml:"imageCacheSize"`
	Language       string `yaml:"language,omitempty"`
}

type HandlesConfig struct {
	Max int32 `yaml:"max,omitempty"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	var c Config
	c.normalize()
	return c
}

func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormatJSON
	}
	if c.Fonts.LoadParallelism <= 0 {
		c.Fonts.LoadParallelism = runtime.GOMAXPROCS(0)
	}
	if c.Render.DefaultFontFamily == "" {
		c.Render.DefaultFontFamily = DefaultFontFamily
	}
	if c.Render.DefaultFontSize <= 0 {
		c.Render.DefaultFontSize = DefaultFontSize
	}
	if c.Render.ImageCacheSize <= 0 {
		c.Render.ImageCacheSize = DefaultImageCache
	}
	if c.Render.Language == "" {
		c.Render.Language = DefaultLanguage
	}
	if c.Handles.Max <= 0 {
		c.Handles.Max = DefaultMaxHandle
	}
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log format %q: want json or console", c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", l.Level, err)
	}
	return lvl, nil
}

// Parse decodes a YAML document and fills in defaults.
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FromEnv builds the configuration from the file named by
// PRINCESS_NATIVE_CONFIG, if any, then applies the other environment
// overrides. lookup is usually os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	if path, ok := lookup(EnvConfigFile); ok && path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvFontCacheDir); ok && v != "" {
		c.Fonts.CacheDir = v
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(&c)
}
