package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-lite/engine/overlay"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrSurfaceLost means the surface can no longer be presented to. The frame loop ends.
	ErrSurfaceLost = errors.New("surface lost")

	// ErrOutOfMemory means the device ran out of memory acquiring a frame. The process exits.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrSurfaceTimeout means no surface image became available in time. The frame is skipped.
	ErrSurfaceTimeout = errors.New("surface timeout")

	// ErrSurfaceOutdated means the surface no longer matches its configuration. The frame is
	// skipped and the surface reconfigured before the next acquire.
	ErrSurfaceOutdated = errors.New("surface outdated")
)

// Frame is everything one RenderFrame call draws.
type Frame struct {
	// Uploads are written before any pass is encoded.
	Uploads []Upload
	// Geometry is drawn by the geometry pass.
	Geometry Geometry
	// UI builds the overlay panel. Nil skips the overlay pass.
	UI func(overlay.UI)
	// PixelsPerPoint is the window content scale handed to the overlay; 0 means 1.
	PixelsPerPoint float32
}

// Stats counts what RenderFrame has done since construction.
type Stats struct {
	// Frames is the number of frames presented.
	Frames uint64
	// Submits is the number of command buffers submitted.
	Submits uint64
	// Skipped is the number of frames dropped for a recoverable error.
	Skipped uint64
}

type size struct {
	width, height int
}

type renderer struct {
	mu *sync.Mutex

	backend RendererBackend
	overlay overlay.Overlay

	clearColor    wgpu.Color
	pendingResize *size
	stats         Stats
}

// Renderer orchestrates one frame: acquire, upload, geometry pass, overlay pass, one submit
// and present.
type Renderer interface {
	// RenderFrame draws frame. Recoverable acquisition failures are logged and the frame is
	// skipped with a nil return.
	//
	// Parameters:
	//   - frame: the uploads, geometry and overlay callback for this frame
	//
	// Returns:
	//   - error: an error wrapping ErrSurfaceLost or ErrOutOfMemory, or nil
	RenderFrame(frame Frame) error

	// Resize queues a surface resize that is applied before the next acquire.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// Stats returns the frame counters.
	Stats() Stats

	// Backend returns the backend in use.
	Backend() RendererBackend
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer driving backend. The clear color defaults to opaque black.
//
// Parameters:
//   - backend: the GPU backend
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(backend RendererBackend, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:         &sync.Mutex{},
		backend:    backend,
		clearColor: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingResize = &size{width: width, height: height}
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Backend() RendererBackend {
	return r.backend
}

func (r *renderer) RenderFrame(frame Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pendingResize != nil {
		if r.backend.Resize(r.pendingResize.width, r.pendingResize.height) {
			slog.Debug("surface resized", "width", r.pendingResize.width, "height", r.pendingResize.height)
		}
		r.pendingResize = nil
	}

	if err := r.backend.BeginFrame(); err != nil {
		return r.handleAcquireError(classifySurfaceError(err))
	}

	for _, u := range frame.Uploads {
		if err := r.backend.WriteBuffer(u.Buffer, u.Data); err != nil {
			return r.skip("upload uniform", err)
		}
	}

	r.backend.EncodeGeometry(r.clearColor, frame.Geometry)

	if r.overlay != nil && frame.UI != nil {
		target := r.backend.OverlayTarget()
		target.PixelsPerPoint = frame.PixelsPerPoint
		if target.PixelsPerPoint <= 0 {
			target.PixelsPerPoint = 1
		}
		// the geometry pass is still worth presenting without the panel
		if err := r.overlay.Draw(target, frame.UI); err != nil {
			slog.Error("overlay draw failed", "error", err)
		}
	}

	if err := r.backend.Submit(); err != nil {
		return r.skip("submit", err)
	}
	r.stats.Submits++

	r.backend.Present()
	r.stats.Frames++
	return nil
}

// handleAcquireError applies the acquisition error policy to an already classified error.
// Caller holds the mutex.
func (r *renderer) handleAcquireError(err error) error {
	switch {
	case errors.Is(err, ErrSurfaceLost), errors.Is(err, ErrOutOfMemory):
		r.backend.DiscardFrame()
		return err
	case errors.Is(err, ErrSurfaceOutdated):
		w, h := r.backend.SurfaceSize()
		r.pendingResize = &size{width: int(w), height: int(h)}
	}
	return r.skip("acquire surface texture", err)
}

// skip logs err, releases the partial frame and counts it as skipped. Caller holds the mutex.
func (r *renderer) skip(stage string, err error) error {
	slog.Error("frame skipped", "stage", stage, "error", err)
	r.backend.DiscardFrame()
	r.stats.Skipped++
	return nil
}

// classifySurfaceError maps a surface acquisition error onto the package sentinels.
// The backend turns a null surface texture into ErrSurfaceOutdated itself; any other
// acquisition error is matched by message.
//
// Parameters:
//   - err: the error returned while acquiring the surface texture
//
// Returns:
//   - error: err wrapped with the matching sentinel, or err unchanged when none matches
func classifySurfaceError(err error) error {
	for _, sentinel := range []error{ErrSurfaceLost, ErrOutOfMemory, ErrSurfaceTimeout, ErrSurfaceOutdated} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	case strings.Contains(msg, "memory"):
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %w", ErrSurfaceTimeout, err)
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %w", ErrSurfaceOutdated, err)
	}
	return err
}
