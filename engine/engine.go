package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/Carmen-Shannon/oxy-lite/engine/camera"
	"github.com/Carmen-Shannon/oxy-lite/engine/config"
	"github.com/Carmen-Shannon/oxy-lite/engine/device"
	"github.com/Carmen-Shannon/oxy-lite/engine/input"
	"github.com/Carmen-Shannon/oxy-lite/engine/loop"
	"github.com/Carmen-Shannon/oxy-lite/engine/overlay"
	"github.com/Carmen-Shannon/oxy-lite/engine/profiler"
	"github.com/Carmen-Shannon/oxy-lite/engine/renderer"
	"github.com/Carmen-Shannon/oxy-lite/engine/scene"
	"github.com/Carmen-Shannon/oxy-lite/engine/window"
)

// engine implements the Engine interface.
// Every field is owned by the OS thread NewEngine locked.
type engine struct {
	cfg config.Config

	sceneOptions    []scene.SceneBuilderOption
	rendererOptions []renderer.RendererBuilderOption
	profilerOptions []profiler.ProfilerBuilderOption

	window   window.Window
	context  device.Context
	scene    scene.Scene
	overlay  overlay.Overlay
	renderer renderer.Renderer
	loop     loop.Loop
}

// Engine is the main entry point for the engine.
// It ties the window's event pump to the frame loop on a single OS thread.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Context returns the device context.
	Context() device.Context

	// Renderer returns the frame orchestrator.
	Renderer() renderer.Renderer

	// Loop returns the frame loop, which owns the camera and input state.
	Loop() loop.Loop

	// Run pumps window events into the loop until the window closes, the surface is lost,
	// ctx is cancelled or a fatal render error occurs. It must be called from the goroutine
	// that called NewEngine.
	//
	// Parameters:
	//   - ctx: cancels the loop between frames
	//
	// Returns:
	//   - error: nil on a normal exit, ctx.Err() on cancellation, or an error wrapping
	//     renderer.ErrOutOfMemory
	Run(ctx context.Context) error

	// Close releases every GPU resource and destroys the window.
	Close()
}

var _ Engine = &engine{}

// NewEngine locks the calling goroutine to its OS thread, opens the window and builds the
// device, scene, overlay, renderer and loop from cfg.
//
// Parameters:
//   - cfg: the normalized configuration
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the ready engine
//   - error: an error if any startup step fails; partially created resources are released
func NewEngine(cfg config.Config, options ...EngineBuilderOption) (_ Engine, err error) {
	// GLFW and the surface must stay on the thread that created them.
	runtime.LockOSThread()

	e := &engine{cfg: cfg}
	for _, opt := range options {
		opt(e)
	}
	defer func() {
		if err != nil {
			e.Close()
		}
	}()

	if device.ConfigureLogLevel(cfg.Log.WGPULevel) {
		slog.Debug("wgpu log level set", "level", cfg.Log.WGPULevel)
	}

	e.window, err = window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return nil, err
	}

	e.context, err = device.NewContext(e.window.SurfaceDescriptor(), e.window.Width(), e.window.Height(),
		device.WithPresentMode(device.ParsePresentMode(cfg.Renderer.PresentMode)),
		device.WithForceFallbackAdapter(cfg.Renderer.ForceFallbackAdapter),
	)
	if err != nil {
		return nil, err
	}

	e.scene, err = scene.NewScene(e.context.Device(), e.context.Format(), e.sceneOptions...)
	if err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}

	overlayEnabled := cfg.Overlay.Enabled == nil || *cfg.Overlay.Enabled
	rendererOptions := e.rendererOptions
	if overlayEnabled {
		e.overlay, err = overlay.NewStatsOverlay(e.context.Device(), e.context.Queue(), e.context.Format(),
			overlay.WithScale(cfg.Overlay.Scale),
		)
		if err != nil {
			return nil, fmt.Errorf("create overlay: %w", err)
		}
		rendererOptions = append([]renderer.RendererBuilderOption{renderer.WithOverlay(e.overlay)}, rendererOptions...)
	}
	e.renderer = renderer.NewRenderer(renderer.NewWGPURendererBackend(e.context), rendererOptions...)

	renormalize := cfg.Camera.Renormalize == nil || *cfg.Camera.Renormalize
	cam := camera.NewCamera(
		camera.WithTranslationSpeed(cfg.Camera.TranslationSpeed),
		camera.WithRotationSpeed(cfg.Camera.RotationSpeed),
		camera.WithRenormalize(renormalize),
	)

	loopOptions := []loop.LoopBuilderOption{
		loop.WithCamera(cam),
		loop.WithAggregator(input.NewAggregator(input.WithScreenSize(cfg.Window.Width, cfg.Window.Height))),
		loop.WithFrametimeLabel(overlayEnabled),
		loop.WithPixelsPerPoint(e.window.ContentScale()),
	}
	if cfg.Profiler.Enabled {
		loopOptions = append(loopOptions, loop.WithProfiler(profiler.NewProfiler(e.profilerOptions...)))
	}
	e.loop = loop.NewLoop(e.renderer, e.scene, e.window.Width(), e.window.Height(), loopOptions...)

	slog.Info("engine ready",
		"width", e.window.Width(),
		"height", e.window.Height(),
		"format", e.context.Format(),
		"present_mode", cfg.Renderer.PresentMode,
		"overlay", overlayEnabled,
	)
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Context() device.Context {
	return e.context
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Loop() loop.Loop {
	return e.loop
}

func (e *engine) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		running, err := e.loop.Step(e.window.PollEvents())
		if err != nil {
			return err
		}
		if !running {
			stats := e.renderer.Stats()
			slog.Info("engine stopped", "frames", stats.Frames, "skipped", stats.Skipped)
			return nil
		}
	}
}

func (e *engine) Close() {
	if e.overlay != nil {
		e.overlay.Release()
		e.overlay = nil
	}
	if e.scene != nil {
		e.scene.Release()
		e.scene = nil
	}
	if e.context != nil {
		e.context.Release()
		e.context = nil
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			slog.Warn("close window", "error", err)
		}
		e.window = nil
	}
}
