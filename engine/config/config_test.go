package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Window.Width != 800 || c.Window.Height != 800 {
		t.Errorf("window = %dx%d, want 800x800", c.Window.Width, c.Window.Height)
	}
	if c.Camera.TranslationSpeed != 0.05 || c.Camera.RotationSpeed != 1 {
		t.Errorf("camera speeds = %v, %v", c.Camera.TranslationSpeed, c.Camera.RotationSpeed)
	}
	if !*c.Camera.Renormalize {
		t.Error("renormalize should default to true")
	}
	if !*c.Overlay.Enabled {
		t.Error("overlay should default to enabled")
	}
	if c.Renderer.PresentMode != "vsync" || c.Log.Level != "info" {
		t.Errorf("present mode %q, log level %q", c.Renderer.PresentMode, c.Log.Level)
	}
}

func TestParseKeepsExplicitValues(t *testing.T) {
	doc := `
window:
  title: demo
  width: 1280
renderer:
  present_mode: uncapped
camera:
  translation_speed: 0.2
  renormalize: false
overlay:
  enabled: false
  scale: 2
log:
  level: debug
  wgpu_level: warn
profiler:
  enabled: true
`
	c, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Window.Title != "demo" || c.Window.Width != 1280 || c.Window.Height != DefaultHeight {
		t.Errorf("window = %+v", c.Window)
	}
	if c.Renderer.PresentMode != "uncapped" {
		t.Errorf("present mode = %q", c.Renderer.PresentMode)
	}
	if c.Camera.TranslationSpeed != 0.2 || c.Camera.RotationSpeed != DefaultRotationSpeed {
		t.Errorf("camera = %+v", c.Camera)
	}
	if *c.Camera.Renormalize {
		t.Error("explicit renormalize: false was overwritten")
	}
	if *c.Overlay.Enabled || c.Overlay.Scale != 2 {
		t.Errorf("overlay enabled=%v scale=%d", *c.Overlay.Enabled, c.Overlay.Scale)
	}
	if c.Log.Level != "debug" || c.Log.WGPULevel != "warn" || !c.Profiler.Enabled {
		t.Errorf("log = %+v, profiler = %+v", c.Log, c.Profiler)
	}
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Window.Width != DefaultWidth {
		t.Errorf("width = %d", c.Window.Width)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse(strings.NewReader("windw:\n  width: 3\n")); err == nil {
		t.Error("expected an error for an unknown key")
	}
}

func TestNormalizeNegativeSizes(t *testing.T) {
	c := Config{Window: WindowConfig{Width: -5, Height: -1}, Overlay: OverlayConfig{Scale: -2}}
	c.Normalize()
	if c.Window.Width != DefaultWidth || c.Window.Height != DefaultHeight || c.Overlay.Scale != DefaultOverlayScale {
		t.Errorf("got %+v %+v", c.Window, c.Overlay)
	}
}

func TestLoad(t *testing.T) {
	if c, err := Load(""); err != nil || c.Window.Title != DefaultTitle {
		t.Errorf("Load(\"\") = %+v, %v", c.Window, err)
	}

	path := filepath.Join(t.TempDir(), "oxy.yaml")
	if err := os.WriteFile(path, []byte("window:\n  title: file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Window.Title != "file" {
		t.Errorf("title = %q", c.Window.Title)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestWriteThenParse(t *testing.T) {
	var buf bytes.Buffer
	want := Default()
	want.Window.Title = "written"
	if err := Write(&buf, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Window != want.Window || got.Camera.TranslationSpeed != want.Camera.TranslationSpeed {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := LogConfig{Level: tt.level}.SlogLevel()
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v", err)
			}
			if got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}
