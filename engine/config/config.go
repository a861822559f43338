// Package config loads the launcher's YAML configuration. Every field is optional;
// Normalize fills whatever the file leaves out with the engine defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-lite/common"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Normalize.
const (
	DefaultTitle            = "oxy-lite"
	DefaultWidth            = 800
	DefaultHeight           = 800
	DefaultPresentMode      = "vsync"
	DefaultTranslationSpeed = 0.05
	DefaultRotationSpeed    = 1.0
	DefaultOverlayScale     = 1
	DefaultLogLevel         = "info"
)

// Config is the root of the configuration file.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Camera   CameraConfig   `yaml:"camera"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Log      LogConfig      `yaml:"log"`
	Profiler ProfilerConfig `yaml:"profiler"`
}

// WindowConfig sets the title and the initial window size in screen points.
type WindowConfig struct {
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// RendererConfig selects how the surface presents and which adapter is requested.
type RendererConfig struct {
	// PresentMode is "vsync" or "uncapped".
	PresentMode          string `yaml:"present_mode,omitempty"`
	ForceFallbackAdapter bool   `yaml:"force_fallback_adapter,omitempty"`
}

// CameraConfig holds the per-tick camera speeds.
type CameraConfig struct {
	TranslationSpeed float32 `yaml:"translation_speed,omitempty"`
	RotationSpeed    float32 `yaml:"rotation_speed,omitempty"`
	// Renormalize is a pointer so an explicit false survives Normalize.
	Renormalize *bool `yaml:"renormalize,omitempty"`
}

// OverlayConfig controls the stats panel. A nil Enabled means enabled.
type OverlayConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	Scale   int   `yaml:"scale,omitempty"`
}

// LogConfig sets the engine and native wgpu log levels.
type LogConfig struct {
	// Level is the slog level name: debug, info, warn or error.
	Level string `yaml:"level,omitempty"`
	// WGPULevel is passed to the native wgpu logger; empty reads WGPU_LOG_LEVEL.
	WGPULevel string `yaml:"wgpu_level,omitempty"`
}

// ProfilerConfig turns on the periodic runtime stats log.
type ProfilerConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// Default returns a normalized configuration with every default applied.
func Default() Config {
	var c Config
	c.Normalize()
	return c
}

// Normalize replaces zero fields with their defaults.
func (c *Config) Normalize() {
	c.Window.Title = common.Coalesce(c.Window.Title, DefaultTitle)
	c.Window.Width = common.Coalesce(max(c.Window.Width, 0), DefaultWidth)
	c.Window.Height = common.Coalesce(max(c.Window.Height, 0), DefaultHeight)
	c.Renderer.PresentMode = common.Coalesce(c.Renderer.PresentMode, DefaultPresentMode)
	c.Camera.TranslationSpeed = common.Coalesce(c.Camera.TranslationSpeed, DefaultTranslationSpeed)
	c.Camera.RotationSpeed = common.Coalesce(c.Camera.RotationSpeed, DefaultRotationSpeed)
	if c.Camera.Renormalize == nil {
		c.Camera.Renormalize = boolPtr(true)
	}
	if c.Overlay.Enabled == nil {
		c.Overlay.Enabled = boolPtr(true)
	}
	c.Overlay.Scale = common.Coalesce(max(c.Overlay.Scale, 0), DefaultOverlayScale)
	c.Log.Level = common.Coalesce(c.Log.Level, DefaultLogLevel)
}

// Parse decodes YAML from r and normalizes the result. Empty input yields Default.
// Unknown keys are rejected so typos surface at startup.
//
// Parameters:
//   - r: the YAML document
//
// Returns:
//   - Config: the normalized configuration
//   - error: an error if the document is malformed
func Parse(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	c.Normalize()
	return c, nil
}

// Load reads the configuration file at path. An empty path returns Default.
//
// Parameters:
//   - path: the YAML file path, or "" for defaults
//
// Returns:
//   - Config: the normalized configuration
//   - error: an error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Write encodes c as YAML to w.
func Write(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// SlogLevel parses Level as a slog level name.
//
// Returns:
//   - slog.Level: the level
//   - error: an error if the name is not debug, info, warn or error
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

func boolPtr(v bool) *bool {
	return &v
}
