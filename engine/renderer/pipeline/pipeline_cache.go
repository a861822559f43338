package pipeline

import (
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheKey identifies a built pipeline. A swapchain format change yields a new key.
type CacheKey struct {
	Label  string
	Format wgpu.TextureFormat
}

// Cache keeps built pipelines keyed by label and color format, releasing evicted ones.
type Cache struct {
	device  Device
	cache   *lru.Cache[CacheKey, *wgpu.RenderPipeline]
	release func(*wgpu.RenderPipeline)
}

// NewCache creates a pipeline cache holding at most size pipelines.
//
// Parameters:
//   - device: the device used to build missing pipelines
//   - size: the maximum number of cached pipelines
//
// Returns:
//   - *Cache: the cache
//   - error: an error if size is not positive
func NewCache(device Device, size int) (*Cache, error) {
	c := &Cache{
		device:  device,
		release: (*wgpu.RenderPipeline).Release,
	}
	cache, err := lru.NewWithEvict[CacheKey, *wgpu.RenderPipeline](size, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.cache = cache
	return c, nil
}

func (c *Cache) onEvict(key CacheKey, p *wgpu.RenderPipeline) {
	slog.Debug("releasing render pipeline", "label", key.Label, "format", key.Format)
	if p != nil && c.release != nil {
		c.release(p)
	}
}

// Get returns the pipeline for cfg, building it on a miss. Pipelines cached under the same
// label with a different format are discarded first, since they can no longer target the surface.
//
// Parameters:
//   - cfg: the pipeline configuration
//
// Returns:
//   - *wgpu.RenderPipeline: the cached or newly built pipeline
//   - error: an error if the build fails
func (c *Cache) Get(cfg Config) (*wgpu.RenderPipeline, error) {
	key := CacheKey{Label: cfg.Label, Format: cfg.Format}
	if p, ok := c.cache.Get(key); ok {
		return p, nil
	}

	for _, k := range c.cache.Keys() {
		if k.Label == key.Label {
			c.cache.Remove(k)
		}
	}

	p, err := Build(c.device, cfg)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, p)
	slog.Debug("built render pipeline", "label", key.Label, "format", key.Format)
	return p, nil
}

// Len returns the number of cached pipelines.
func (c *Cache) Len() int {
	return c.cache.Len()
}

// Purge releases every cached pipeline.
func (c *Cache) Purge() {
	c.cache.Purge()
}
